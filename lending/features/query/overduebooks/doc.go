// Package overduebooks implements the Overdue Books query: the loans of a student whose
// return date lies before today. A loan due today is not overdue.
//
// The result also counts all loans of the student, so callers can tell a student
// without loans from one whose loans are all still within their period.
package overduebooks
