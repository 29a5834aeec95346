package totalfine

import (
	"github.com/AntonStoeckl/intellib/lending/core"
)

const (
	queryType = "TotalFine"
)

// Query represents the intent to learn the total fine a student has to pay.
type Query struct {
	EnrollmentNo core.EnrollmentNoString
}

func BuildQuery(enrollmentNo core.EnrollmentNoString) Query {
	return Query{EnrollmentNo: enrollmentNo}
}

func (q Query) QueryType() string {
	return queryType
}
