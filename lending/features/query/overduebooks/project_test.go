package overduebooks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/intellib/lending/core"
	"github.com/AntonStoeckl/intellib/lending/features/query/overduebooks"
)

func loanDue(bookID string, returnDate string) core.IssuedBook {
	return core.IssuedBook{
		EnrollmentNo: "E001",
		BookID:       bookID,
		ReturnDate:   core.MustParseDate(returnDate),
		Status:       core.LoanStatusIssued,
	}
}

func Test_ProjectOverdueBooks_OnlyStrictlyPastReturnDate(t *testing.T) {
	// arrange
	loans := core.IssuedBooks{
		loanDue("B1", "2025-01-08"),
		loanDue("B2", "2025-01-10"),
		loanDue("B3", "2025-01-11"),
	}
	query := overduebooks.Query{EnrollmentNo: "E001", Today: core.MustParseDate("2025-01-10")}

	// act
	result := overduebooks.ProjectOverdueBooks(loans, query)

	// assert
	require.Equal(t, 1, result.Count)
	assert.Equal(t, "B1", result.Books[0].BookID)
	assert.Equal(t, "2025-01-08", result.Books[0].ReturnDate.String())
	assert.Equal(t, 3, result.LoanCount)
}

func Test_ProjectOverdueBooks_NoLoans(t *testing.T) {
	// act
	result := overduebooks.ProjectOverdueBooks(nil, overduebooks.Query{EnrollmentNo: "E001", Today: core.MustParseDate("2025-01-10")})

	// assert
	assert.Zero(t, result.Count)
	assert.Zero(t, result.LoanCount)
	assert.NotNil(t, result.Books)
}
