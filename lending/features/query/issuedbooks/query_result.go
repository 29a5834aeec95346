package issuedbooks

import (
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/intellib/lending/core"
	"github.com/AntonStoeckl/intellib/lending/shell"
)

// LoanInfo is one line of the issued books list.
type LoanInfo struct {
	BookID     core.BookIDString
	IssueDate  core.Date
	ReturnDate core.Date
	Fine       decimal.Decimal
}

// IssuedBooks represents the query result. An empty Books list is a valid result.
type IssuedBooks struct {
	shell.HandlerResult
	EnrollmentNo core.EnrollmentNoString
	Books        []LoanInfo
	Count        int
}
