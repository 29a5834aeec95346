// Package returnbook implements the Return Book use case.
//
// The first loan matching enrollment number and book is looked up. Returned on or before
// its return date, the loan is deleted. Returned late, its fine is overwritten with
// 0.50 per late day and the loan stays, so a later return recomputes the fine from the
// same return date.
package returnbook
