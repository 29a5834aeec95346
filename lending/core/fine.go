package core

import "github.com/shopspring/decimal"

// LoanPeriodDays is the number of days between issue and return date.
const LoanPeriodDays = 7

// FinePerLateDay is charged for every day a book is returned after its return date.
var FinePerLateDay = decimal.RequireFromString("0.5")

// DueDate returns the return date of a book issued on issueDate.
func DueDate(issueDate Date) Date {
	return issueDate.AddDays(LoanPeriodDays)
}

// LateDays returns the number of whole days today lies after the return date, never negative.
func LateDays(today Date, returnDate Date) int {
	return max(0, today.DaysAfter(returnDate))
}

// FineFor returns the fine for the given number of late days.
func FineFor(lateDays int) decimal.Decimal {
	if lateDays <= 0 {
		return decimal.Zero
	}

	return FinePerLateDay.Mul(decimal.NewFromInt(int64(lateDays)))
}
