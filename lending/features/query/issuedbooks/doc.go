// Package issuedbooks implements the Issued Books query: all outstanding loans of a student
// in the order they were issued, including loans kept because of a late-return fine.
package issuedbooks
