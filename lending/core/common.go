package core

import "errors"

// Instead of implementing full value objects, I'm using some alias types here ...

// EnrollmentNoString identifies a student.
type EnrollmentNoString = string

// BookIDString is the opaque identifier of a book copy, usually its barcode.
type BookIDString = string

var (
	// ErrStudentNotFound is returned when no student record exists for an enrollment number.
	ErrStudentNotFound = errors.New("student record not found")

	// ErrLoanNotFound is returned when the book is not issued to the student.
	ErrLoanNotFound = errors.New("book not issued to this student")
)
