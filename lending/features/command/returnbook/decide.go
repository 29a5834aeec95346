package returnbook

import (
	"github.com/AntonStoeckl/intellib/lending/core"
)

// Decide determines what a return does to the loan.
//
// Business Rules:
//
//	GIVEN: a loan of the book to the student
//	WHEN: ReturnBook command is received on or before the return date
//	THEN: the loan is deleted, no fine
//	WHEN: ReturnBook command is received after the return date
//	THEN: the fine is set to late days * 0.50 replacing any earlier fine, the loan is kept
//	ERROR: "book not issued to this student" if there is no such loan
func Decide(loan core.IssuedBook, loanFound bool, command Command) core.DecisionResult {
	if !loanFound {
		return core.RejectedDecision(core.ErrLoanNotFound)
	}

	today := core.DateOf(command.ReturnedAt)

	lateDays := core.LateDays(today, loan.ReturnDate)
	if lateDays == 0 {
		return core.ReturnOnTimeDecision(loan)
	}

	return core.ChargeFineDecision(loan, core.FineFor(lateDays))
}
