package muni

import (
	"sort"
	"testing"
	"time"

	"github.com/cicconee/ztl-maps/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateEaster(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		day   int
	}{
		{year: 2000, month: time.April, day: 23},
		{year: 2008, month: time.March, day: 23},
		{year: 2024, month: time.March, day: 31},
		{year: 2025, month: time.April, day: 20},
		{year: 2038, month: time.April, day: 25},
	}

	for _, tt := range tests {
		got := calculateEaster(tt.year)
		assert.Equal(t, tt.year, got.Year())
		assert.Equal(t, tt.month, got.Month())
		assert.Equal(t, tt.day, got.Day())
	}
}

func TestHolidays(t *testing.T) {
	want := []string{
		"2024-01-01",
		"2024-01-06",
		"2024-03-31",
		"2024-04-01",
		"2024-04-25",
		"2024-05-01",
		"2024-06-02",
		"2024-08-15",
		"2024-11-01",
		"2024-12-08",
		"2024-12-25",
		"2024-12-26",
	}

	got := Holidays(2024)
	assert.Equal(t, want, got)
	assert.True(t, sort.StringsAreSorted(got))
}

func TestHolidaysEasterMovesByYear(t *testing.T) {
	got := Holidays(2025)
	assert.Contains(t, got, "2025-04-20")
	assert.Contains(t, got, "2025-04-21")
	assert.NotContains(t, got, "2025-03-31")
}

func TestHolidaySuspensions(t *testing.T) {
	got := HolidaySuspensions(2024, 2025)
	require.Len(t, got, 24)

	for _, e := range got {
		assert.Empty(t, e.End)
		assert.False(t, e.Force)
	}
	assert.Equal(t, "2024-01-01", got[0].Start)
	assert.Equal(t, "2025-01-01", got[12].Start)
}

func TestHolidayYears(t *testing.T) {
	now := time.Date(2024, time.December, 30, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, []int{2024, 2025}, holidayYears(now))
}

func TestSuspendOnHolidays(t *testing.T) {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	weekday := Zone{
		Name: "Area B",
		Windows: []schedule.RawWindow{
			{Days: []string{"Monday-Friday"}, Start: "07:30", End: "19:30"},
		},
	}
	weekend := Zone{
		Name: "Marechiaro",
		Windows: []schedule.RawWindow{
			{Days: []string{"Saturday", "Sunday"}, Start: "08:00", End: "19:00"},
		},
	}
	daily := Zone{
		Name: "Valentino",
		Windows: []schedule.RawWindow{
			{Days: []string{"daily"}, Start: "00:00", End: "23:59"},
		},
	}
	garbled := Zone{
		Name: "Garbled",
		Windows: []schedule.RawWindow{
			{Days: []string{"Fundays"}, Start: "07:00", End: "19:00"},
		},
	}
	empty := Zone{Name: "Empty"}

	zones := suspendOnHolidays([]Zone{weekday, weekend, daily, garbled, empty}, now)

	// Two years of twelve holidays each.
	assert.Len(t, zones[0].Exceptions, 24)
	assert.Empty(t, zones[1].Exceptions)
	assert.Empty(t, zones[2].Exceptions)
	assert.Empty(t, zones[3].Exceptions)
	assert.Empty(t, zones[4].Exceptions)
}

func TestSuspendOnHolidaysKeepsExistingExceptions(t *testing.T) {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	zones := []Zone{{
		Name: "Centro",
		Windows: []schedule.RawWindow{
			{Days: []string{"weekdays"}, Start: "07:00", End: "19:00"},
		},
		Exceptions: []schedule.RawException{
			{Start: "2024-07-10", End: "2024-07-12", Force: true},
		},
	}}

	zones = suspendOnHolidays(zones, now)

	require.Len(t, zones[0].Exceptions, 25)
	assert.Equal(t, "2024-07-10", zones[0].Exceptions[0].Start)
	assert.True(t, zones[0].Exceptions[0].Force)
}

func TestSuspendedZoneIsInactiveOnHoliday(t *testing.T) {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	zones := suspendOnHolidays([]Zone{{
		Name: "Area C",
		Windows: []schedule.RawWindow{
			{Days: []string{"Monday-Friday"}, Start: "07:30", End: "19:30"},
		},
	}}, now)

	s, err := schedule.Normalize(zones[0].Windows, zones[0].Exceptions)
	require.NoError(t, err)

	// Ferragosto 2024 falls on a Thursday.
	ferragosto := time.Date(2024, time.August, 15, 10, 0, 0, 0, time.UTC)
	assert.False(t, s.IsActive(ferragosto))
	assert.True(t, s.IsActive(ferragosto.AddDate(0, 0, 1)))
}
