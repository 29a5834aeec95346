package issuedbooks

import (
	"github.com/AntonStoeckl/intellib/lending/core"
	"github.com/AntonStoeckl/intellib/lending/shell"
)

// ProjectIssuedBooks turns the stored loans of a student into the issued books list, keeping their order.
//
// Query Logic:
//
//	GIVEN: the loans stored for a student
//	WHEN: IssuedBooks query is executed
//	THEN: every loan is listed with book, issue date, return date and fine
//	INCLUDES: late returns that still carry a fine
func ProjectIssuedBooks(loans core.IssuedBooks, query Query) IssuedBooks {
	books := make([]LoanInfo, 0, len(loans))

	for _, loan := range loans {
		if loan.EnrollmentNo != query.EnrollmentNo {
			continue
		}

		books = append(books, LoanInfo{
			BookID:     loan.BookID,
			IssueDate:  loan.IssueDate,
			ReturnDate: loan.ReturnDate,
			Fine:       loan.Fine,
		})
	}

	return IssuedBooks{
		HandlerResult: shell.NewSuccessResult(),
		EnrollmentNo:  query.EnrollmentNo,
		Books:         books,
		Count:         len(books),
	}
}
