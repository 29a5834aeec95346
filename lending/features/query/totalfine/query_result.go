package totalfine

import (
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/intellib/lending/core"
	"github.com/AntonStoeckl/intellib/lending/shell"
)

// TotalFine represents the query result. Total is rounded to cents.
type TotalFine struct {
	shell.HandlerResult
	EnrollmentNo core.EnrollmentNoString
	Total        decimal.Decimal
	FineDue      bool
}
