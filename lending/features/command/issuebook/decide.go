package issuebook

import (
	"github.com/AntonStoeckl/intellib/lending/core"
)

// Decide determines whether a book can be issued and builds the new loan.
//
// Business Rules:
//
//	GIVEN: a student record for the enrollment number
//	WHEN: IssueBook command is received
//	THEN: a loan is created, issued today, due in seven days, without fine
//	ERROR: "student record not found" if there is no student record
func Decide(student core.StudentRecord, studentFound bool, command Command) core.DecisionResult {
	if !studentFound {
		return core.RejectedDecision(core.ErrStudentNotFound)
	}

	return core.IssueBookDecision(
		core.NewLoan(student, command.BookID, core.DateOf(command.IssuedAt)),
	)
}
