package issuebook

import (
	"time"

	"github.com/AntonStoeckl/intellib/lending/core"
)

const (
	commandType = "IssueBook"
)

// Command represents the intent to issue a book to a student.
type Command struct {
	EnrollmentNo core.EnrollmentNoString
	BookID       core.BookIDString
	IssuedAt     time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(enrollmentNo core.EnrollmentNoString, bookID core.BookIDString, issuedAt time.Time) Command {
	return Command{
		EnrollmentNo: enrollmentNo,
		BookID:       bookID,
		IssuedAt:     issuedAt,
	}
}
