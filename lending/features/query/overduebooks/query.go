package overduebooks

import (
	"time"

	"github.com/AntonStoeckl/intellib/lending/core"
)

const (
	queryType = "OverdueBooks"
)

// Query represents the intent to list the overdue books of a student as of a given day.
type Query struct {
	EnrollmentNo core.EnrollmentNoString
	Today        core.Date
}

// BuildQuery creates a Query for the calendar day of now.
func BuildQuery(enrollmentNo core.EnrollmentNoString, now time.Time) Query {
	return Query{
		EnrollmentNo: enrollmentNo,
		Today:        core.DateOf(now),
	}
}

func (q Query) QueryType() string {
	return queryType
}
