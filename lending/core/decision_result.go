package core

import "github.com/shopspring/decimal"

// DecisionResult is the outcome of a Decide function: what the handler has to write.
//
// Construct it only with the factory functions below.
type DecisionResult struct {
	Outcome DecisionOutcome
	Loan    IssuedBook
	Fine    decimal.Decimal
	Err     error
}

type DecisionOutcome string

const (
	// DecisionIssueBook means: insert Loan.
	DecisionIssueBook DecisionOutcome = "issue_book"

	// DecisionReturnOnTime means: delete Loan.
	DecisionReturnOnTime DecisionOutcome = "return_on_time"

	// DecisionChargeFine means: overwrite the fine of Loan with Fine, keep the loan.
	DecisionChargeFine DecisionOutcome = "charge_fine"

	// DecisionRejected means: write nothing, Err says why.
	DecisionRejected DecisionOutcome = "rejected"
)

func IssueBookDecision(loan IssuedBook) DecisionResult {
	return DecisionResult{Outcome: DecisionIssueBook, Loan: loan, Fine: decimal.Zero}
}

func ReturnOnTimeDecision(loan IssuedBook) DecisionResult {
	return DecisionResult{Outcome: DecisionReturnOnTime, Loan: loan, Fine: decimal.Zero}
}

func ChargeFineDecision(loan IssuedBook, fine decimal.Decimal) DecisionResult {
	loan.Fine = fine

	return DecisionResult{Outcome: DecisionChargeFine, Loan: loan, Fine: fine}
}

func RejectedDecision(err error) DecisionResult {
	return DecisionResult{Outcome: DecisionRejected, Fine: decimal.Zero, Err: err}
}

// HasError returns the rejection reason, nil for any other outcome.
func (r DecisionResult) HasError() error {
	if r.Outcome == DecisionRejected {
		return r.Err
	}

	return nil
}
