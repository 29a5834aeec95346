package core

import "github.com/shopspring/decimal"

// LoanStatusIssued is the only status a stored loan ever has.
const LoanStatusIssued = "issued"

// IssuedBook is one outstanding loan. It is deleted when returned on time
// and kept with its fine when returned late.
type IssuedBook struct {
	EnrollmentNo    EnrollmentNoString
	BookID          BookIDString
	IssueDate       Date
	ReturnDate      Date
	Status          string
	Fine            decimal.Decimal
	IssuerFirstName string
	IssuerLastName  string
	IssuerSemester  string
}

// NewLoan builds the loan of a book to a student, issued today and due after the loan period.
func NewLoan(student StudentRecord, bookID BookIDString, today Date) IssuedBook {
	return IssuedBook{
		EnrollmentNo:    student.EnrollmentNo,
		BookID:          bookID,
		IssueDate:       today,
		ReturnDate:      DueDate(today),
		Status:          LoanStatusIssued,
		Fine:            decimal.Zero,
		IssuerFirstName: student.FirstName,
		IssuerLastName:  student.LastName,
		IssuerSemester:  student.Semester,
	}
}

// IsOverdue reports whether the return date has passed. A loan due today is not overdue.
func (b IssuedBook) IsOverdue(today Date) bool {
	return b.ReturnDate.Before(today)
}

// IssuedBooks is a list of loans in insertion order.
type IssuedBooks = []IssuedBook
