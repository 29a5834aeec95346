package core_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/intellib/lending/core"
)

func Test_LateDays_IsNeverNegative(t *testing.T) {
	returnDate := core.MustParseDate("2024-03-07")

	assert.Equal(t, 0, core.LateDays(core.MustParseDate("2024-03-01"), returnDate))
	assert.Equal(t, 0, core.LateDays(returnDate, returnDate))
	assert.Equal(t, 3, core.LateDays(core.MustParseDate("2024-03-10"), returnDate))
}

func Test_FineFor(t *testing.T) {
	testCases := []struct {
		lateDays int
		expected string
	}{
		{lateDays: -1, expected: "0"},
		{lateDays: 0, expected: "0"},
		{lateDays: 1, expected: "0.5"},
		{lateDays: 3, expected: "1.5"},
		{lateDays: 5, expected: "2.5"},
	}

	for _, tc := range testCases {
		assert.True(
			t,
			decimal.RequireFromString(tc.expected).Equal(core.FineFor(tc.lateDays)),
			"fine for %d late days should be %s", tc.lateDays, tc.expected,
		)
	}
}

func Test_NewLoan_IsDueAfterTheLoanPeriod(t *testing.T) {
	// arrange
	student := core.StudentRecord{EnrollmentNo: "E001", FirstName: "Asha", LastName: "Rao", Semester: "4"}
	today := core.MustParseDate("2024-12-28")

	// act
	loan := core.NewLoan(student, "B1", today)

	// assert
	assert.Equal(t, "2025-01-04", loan.ReturnDate.String())
	assert.Equal(t, core.LoanPeriodDays, loan.ReturnDate.DaysAfter(loan.IssueDate))
	assert.Equal(t, core.LoanStatusIssued, loan.Status)
	assert.True(t, loan.Fine.IsZero())
	assert.Equal(t, "Asha", loan.IssuerFirstName)
	assert.Equal(t, "Rao", loan.IssuerLastName)
	assert.Equal(t, "4", loan.IssuerSemester)
}

func Test_IssuedBook_IsOverdue(t *testing.T) {
	loan := core.IssuedBook{ReturnDate: core.MustParseDate("2024-03-07")}

	assert.False(t, loan.IsOverdue(core.MustParseDate("2024-03-06")))
	assert.False(t, loan.IsOverdue(core.MustParseDate("2024-03-07")))
	assert.True(t, loan.IsOverdue(core.MustParseDate("2024-03-08")))
}
