package issuebook_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/intellib/lending/core"
	"github.com/AntonStoeckl/intellib/lending/features/command/issuebook"
)

func Test_Decide_IssuesLoan_WhenStudentExists(t *testing.T) {
	// arrange
	student := core.StudentRecord{EnrollmentNo: "E001", FirstName: "Ada", LastName: "Lovelace", Semester: "3"}
	command := issuebook.BuildCommand("E001", "B1", time.Date(2025, 3, 1, 16, 30, 0, 0, time.UTC))

	// act
	result := issuebook.Decide(student, true, command)

	// assert
	assert.NoError(t, result.HasError())
	assert.Equal(t, core.DecisionIssueBook, result.Outcome)
	assert.Equal(t, "B1", result.Loan.BookID)
	assert.Equal(t, "2025-03-01", result.Loan.IssueDate.String())
	assert.Equal(t, "2025-03-08", result.Loan.ReturnDate.String())
	assert.Equal(t, core.LoanStatusIssued, result.Loan.Status)
	assert.True(t, result.Loan.Fine.IsZero())
	assert.Equal(t, "Ada", result.Loan.IssuerFirstName)
	assert.Equal(t, "Lovelace", result.Loan.IssuerLastName)
	assert.Equal(t, "3", result.Loan.IssuerSemester)
}

func Test_Decide_Rejects_WhenStudentMissing(t *testing.T) {
	// arrange
	command := issuebook.BuildCommand("E404", "B1", time.Now())

	// act
	result := issuebook.Decide(core.StudentRecord{}, false, command)

	// assert
	assert.Equal(t, core.DecisionRejected, result.Outcome)
	assert.ErrorIs(t, result.HasError(), core.ErrStudentNotFound)
}
