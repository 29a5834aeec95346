package shell

import "time"

// Clock supplies the current instant; tests substitute a fixed one.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in the local time zone,
// so that "today" is the calendar date at the desk.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
