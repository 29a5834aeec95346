package totalfine

import (
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/intellib/lending/shell"
)

// ProjectTotalFine turns the aggregated fine sum into the query result.
func ProjectTotalFine(sum decimal.Decimal, query Query) TotalFine {
	total := sum.Round(2)

	return TotalFine{
		HandlerResult: shell.NewSuccessResult(),
		EnrollmentNo:  query.EnrollmentNo,
		Total:         total,
		FineDue:       total.IsPositive(),
	}
}
