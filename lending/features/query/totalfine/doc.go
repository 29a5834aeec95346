// Package totalfine implements the Total Fine query: the sum of the fines of all loans
// of a student, computed by the record store. No loans and a zero sum both mean no fine is due.
package totalfine
