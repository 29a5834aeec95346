package desk

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/intellib/lending/core"
	"github.com/AntonStoeckl/intellib/lending/shell"
)

// Level tells a front-end how to present a Notice.
type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

const (
	TitleError             = "Error"
	TitleBooksIssued       = "Books Issued"
	TitleNoBooksIssued     = "No Books Issued"
	TitleDeadlinesPassed   = "Deadlines Passed"
	TitleNoDeadlinesPassed = "No Deadlines Passed"
	TitleFine              = "Fine"
	TitleNoFine            = "No Fine"
	TitleSuccess           = "Success"

	MsgBackendUnavailable = "Database connection not available."
	MsgMissingInput       = "Please enter enrollment number."
	MsgNoBooksIssued      = "No books issued on your name."
	MsgNoDeadlinesPassed  = "No deadlines passed for any books."
	MsgNoFine             = "No fine to pay."
	MsgBookIssued         = "Book issued successfully."
	MsgStudentNotFound    = "Student record not found."
	MsgBookReturned       = "Book returned successfully."
	MsgLoanNotFound       = "Book not issued to this student."

	headerBooksIssued     = "Books issued on your name:\n"
	headerDeadlinesPassed = "Deadlines passed for:\n"
	formatIssuedBookLine  = "%s - Issue Date: %s, Return Date: %s, Fine: %s"
	formatDeadlineLine    = "%s - Deadline: %s"
	formatTotalFine       = "Total fine to pay: %s"
	formatReturnedLate    = "Book returned with a fine of $%s"
	formatOperationFailed = "Operation failed: %s"
)

// Notice is the answer to one desk action.
type Notice struct {
	Level   Level
	Title   string
	Message string
	Outcome shell.Outcome
}

// IsError reports whether the notice is an error notice.
func (n Notice) IsError() bool {
	return n.Level == LevelError
}

func (n Notice) String() string {
	return n.Title + ": " + n.Message
}

func infoNotice(title string, message string) Notice {
	return Notice{Level: LevelInfo, Title: title, Message: message, Outcome: shell.OutcomeSuccess}
}

func errorNotice(outcome shell.Outcome, message string) Notice {
	return Notice{Level: LevelError, Title: TitleError, Message: message, Outcome: outcome}
}

// FailureNotice maps a handler error to its error notice.
func FailureNotice(err error) Notice {
	switch {
	case errors.Is(err, shell.ErrMissingInput):
		return errorNotice(shell.OutcomeRejected, MsgMissingInput)
	case errors.Is(err, shell.ErrStudentNotFound):
		return errorNotice(shell.OutcomeRejected, MsgStudentNotFound)
	case errors.Is(err, shell.ErrLoanNotFound):
		return errorNotice(shell.OutcomeRejected, MsgLoanNotFound)
	case errors.Is(shell.ClassifyError(err), shell.ErrBackendUnavailable):
		return errorNotice(shell.OutcomeBackendUnavailable, MsgBackendUnavailable)
	default:
		return errorNotice(shell.OutcomeFailed, fmt.Sprintf(formatOperationFailed, err.Error()))
	}
}

// formatAmount renders money with two decimals.
func formatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

func issuedBookLine(bookID core.BookIDString, issueDate, returnDate core.Date, fine decimal.Decimal) string {
	return fmt.Sprintf(formatIssuedBookLine, bookID, issueDate, returnDate, formatAmount(fine))
}

func deadlineLine(bookID core.BookIDString, returnDate core.Date) string {
	return fmt.Sprintf(formatDeadlineLine, bookID, returnDate)
}

func listMessage(header string, lines []string) string {
	return header + strings.Join(lines, "\n")
}
