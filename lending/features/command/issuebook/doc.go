// Package issuebook implements the Issue Book use case.
//
// A book is issued to a student who has a record in the student_record collection.
// The handler follows the Query-Decide-Write pattern: it reads the student record,
// lets the pure Decide function build the loan, and inserts it into book_issue.
//
// There are deliberately no duplicate-loan, outstanding-fine, or loan-limit checks.
package issuebook
