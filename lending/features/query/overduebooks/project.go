package overduebooks

import (
	"github.com/AntonStoeckl/intellib/lending/core"
	"github.com/AntonStoeckl/intellib/lending/shell"
)

// ProjectOverdueBooks filters the loans of a student to those past their return date.
//
// Query Logic:
//
//	GIVEN: the loans stored for a student
//	WHEN: OverdueBooks query is executed for a day
//	THEN: every loan with return date before that day is listed with its return date
//	EXCLUDES: loans due on that day or later
func ProjectOverdueBooks(loans core.IssuedBooks, query Query) OverdueBooks {
	result := OverdueBooks{
		HandlerResult: shell.NewSuccessResult(),
		EnrollmentNo:  query.EnrollmentNo,
		Books:         make([]OverdueInfo, 0),
	}

	for _, loan := range loans {
		if loan.EnrollmentNo != query.EnrollmentNo {
			continue
		}

		result.LoanCount++

		if !loan.IsOverdue(query.Today) {
			continue
		}

		result.Books = append(result.Books, OverdueInfo{
			BookID:     loan.BookID,
			ReturnDate: loan.ReturnDate,
		})
	}

	result.Count = len(result.Books)

	return result
}
