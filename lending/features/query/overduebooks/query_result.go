package overduebooks

import (
	"github.com/AntonStoeckl/intellib/lending/core"
	"github.com/AntonStoeckl/intellib/lending/shell"
)

// OverdueInfo is one line of the deadlines list.
type OverdueInfo struct {
	BookID     core.BookIDString
	ReturnDate core.Date
}

// OverdueBooks represents the query result.
// LoanCount counts all loans of the student, overdue or not.
type OverdueBooks struct {
	shell.HandlerResult
	EnrollmentNo core.EnrollmentNoString
	Books        []OverdueInfo
	Count        int
	LoanCount    int
}
