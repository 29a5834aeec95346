package returnbook

import (
	"time"

	"github.com/AntonStoeckl/intellib/lending/core"
)

const (
	commandType = "ReturnBook"
)

// Command represents the intent to return a book issued to a student.
type Command struct {
	EnrollmentNo core.EnrollmentNoString
	BookID       core.BookIDString
	ReturnedAt   time.Time
}

func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(enrollmentNo core.EnrollmentNoString, bookID core.BookIDString, returnedAt time.Time) Command {
	return Command{
		EnrollmentNo: enrollmentNo,
		BookID:       bookID,
		ReturnedAt:   returnedAt,
	}
}
