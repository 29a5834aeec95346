package issuedbooks

import (
	"github.com/AntonStoeckl/intellib/lending/core"
)

const (
	queryType = "IssuedBooks"
)

// Query represents the intent to list the books issued to a student.
type Query struct {
	EnrollmentNo core.EnrollmentNoString
}

func BuildQuery(enrollmentNo core.EnrollmentNoString) Query {
	return Query{EnrollmentNo: enrollmentNo}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
