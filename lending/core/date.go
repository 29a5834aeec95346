package core

import (
	"errors"
	"time"
)

// DateLayout is the encoding of calendar dates in documents: YYYY-MM-DD.
const DateLayout = time.DateOnly

var ErrInvalidDate = errors.New("invalid calendar date")

// Date is a calendar date without time of day and time zone.
// The zero Date is not a valid loan date.
type Date struct {
	midnight time.Time // always 00:00 UTC of the date
}

// DateOf returns the calendar date of t as seen in t's own location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()

	return Date{midnight: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, errors.Join(ErrInvalidDate, err)
	}

	return Date{midnight: t}, nil
}

// MustParseDate is ParseDate for constants in tests and fixtures; it panics on invalid input.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}

	return d
}

func (d Date) String() string {
	return d.midnight.Format(DateLayout)
}

func (d Date) IsZero() bool {
	return d.midnight.IsZero()
}

// AddDays returns the date n calendar days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{midnight: d.midnight.AddDate(0, 0, n)}
}

// DaysAfter returns how many whole days d lies after other, negative if it lies before.
func (d Date) DaysAfter(other Date) int {
	return int(d.midnight.Sub(other.midnight).Hours() / 24)
}

func (d Date) Before(other Date) bool {
	return d.midnight.Before(other.midnight)
}

func (d Date) After(other Date) bool {
	return d.midnight.After(other.midnight)
}

func (d Date) Equal(other Date) bool {
	return d.midnight.Equal(other.midnight)
}
