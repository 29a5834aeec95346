package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/intellib/lending/core"
)

func Test_DateOf_UsesCalendarDateOfTheLocation(t *testing.T) {
	// arrange
	kolkata := time.FixedZone("IST", 5*3600+1800)
	lateEvening := time.Date(2024, time.March, 9, 23, 30, 0, 0, kolkata)

	// act
	d := core.DateOf(lateEvening)

	// assert
	assert.Equal(t, "2024-03-09", d.String())
}

func Test_ParseDate(t *testing.T) {
	d, err := core.ParseDate("2024-02-28")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-06", d.AddDays(7).String())

	_, err = core.ParseDate("28.02.2024")
	assert.ErrorIs(t, err, core.ErrInvalidDate)
}

func Test_Date_DaysAfter(t *testing.T) {
	dueDate := core.MustParseDate("2024-03-07")

	assert.Equal(t, 3, core.MustParseDate("2024-03-10").DaysAfter(dueDate))
	assert.Equal(t, 0, dueDate.DaysAfter(dueDate))
	assert.Equal(t, -2, core.MustParseDate("2024-03-05").DaysAfter(dueDate))
	assert.Equal(t, 366, core.MustParseDate("2025-03-07").DaysAfter(core.MustParseDate("2024-03-07")))
}

func Test_Date_Comparisons(t *testing.T) {
	earlier := core.MustParseDate("2024-03-07")
	later := core.MustParseDate("2024-03-08")

	assert.True(t, earlier.Before(later))
	assert.True(t, later.After(earlier))
	assert.True(t, earlier.Equal(core.MustParseDate("2024-03-07")))
	assert.True(t, core.Date{}.IsZero())
	assert.False(t, earlier.IsZero())
}
