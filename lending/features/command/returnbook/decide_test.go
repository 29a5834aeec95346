package returnbook_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/intellib/lending/core"
	"github.com/AntonStoeckl/intellib/lending/features/command/returnbook"
)

func givenLoanIssuedOn(issueDate string) core.IssuedBook {
	return core.NewLoan(
		core.StudentRecord{EnrollmentNo: "E001", FirstName: "Ada", LastName: "Lovelace", Semester: "3"},
		"B1",
		core.MustParseDate(issueDate),
	)
}

// returnOn builds a return in the evening of date, local time.
func returnOn(date string) returnbook.Command {
	day, err := time.ParseInLocation(time.DateOnly, date, time.Local)
	if err != nil {
		panic(err)
	}

	return returnbook.BuildCommand("E001", "B1", day.Add(18*time.Hour))
}

func Test_Decide_OnTime_DeletesLoan(t *testing.T) {
	// arrange
	loan := givenLoanIssuedOn("2025-01-01")

	// act
	onDueDate := returnbook.Decide(loan, true, returnOn("2025-01-08"))
	early := returnbook.Decide(loan, true, returnOn("2025-01-02"))

	// assert
	assert.Equal(t, core.DecisionReturnOnTime, onDueDate.Outcome)
	assert.Equal(t, core.DecisionReturnOnTime, early.Outcome)
	assert.True(t, onDueDate.Fine.IsZero())
}

func Test_Decide_Late_ChargesHalfPerDay(t *testing.T) {
	// arrange
	loan := givenLoanIssuedOn("2025-01-01")

	// act
	result := returnbook.Decide(loan, true, returnOn("2025-01-11"))

	// assert
	assert.Equal(t, core.DecisionChargeFine, result.Outcome)
	assert.True(t, decimal.RequireFromString("1.5").Equal(result.Fine), "got %s", result.Fine)
	assert.True(t, result.Fine.Equal(result.Loan.Fine))
}

func Test_Decide_SecondLateReturn_RecomputesFromOriginalReturnDate(t *testing.T) {
	// arrange
	loan := givenLoanIssuedOn("2025-01-01")
	loan.Fine = decimal.RequireFromString("1.5")

	// act
	result := returnbook.Decide(loan, true, returnOn("2025-01-13"))

	// assert
	assert.True(t, decimal.RequireFromString("2.5").Equal(result.Fine), "got %s", result.Fine)
}

func Test_Decide_Rejects_WhenLoanMissing(t *testing.T) {
	// act
	result := returnbook.Decide(core.IssuedBook{}, false, returnOn("2025-01-08"))

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrLoanNotFound)
}
