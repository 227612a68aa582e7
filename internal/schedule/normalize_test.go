package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	got, err := Normalize(
		[]RawWindow{
			{Days: []string{"Saturday"}, Start: "10:00", End: "18:00"},
			{Days: []string{"Mon-Fri"}, Start: "7:30", End: "19.30"},
			{Days: []string{"weekdays"}, Start: "07:30", End: "19:30"},
			{Days: []string{"Monday"}, Start: "22:00", End: "02:00"},
		},
		[]RawException{
			{Start: "2024-12-25"},
			{Start: "2024-08-01", End: "2024-08-31"},
			{Start: "2024-12-25", End: "2024-12-25"},
			{Start: "2024-02-20", Force: true},
		},
	)
	require.NoError(t, err)

	weekdays := Weekdays(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)
	assert.Equal(t, []RestrictionWindow{
		{Days: weekdays, Hours: TimeRange{Start: 7*60 + 30, End: 19*60 + 30}},
		{Days: Weekdays(time.Monday), Hours: TimeRange{Start: 22 * 60, End: 2 * 60}},
		{Days: Weekdays(time.Saturday), Hours: TimeRange{Start: 10 * 60, End: 18 * 60}},
	}, got.Windows)

	assert.Equal(t, []Exception{
		{Start: Date{2024, time.February, 20}, End: Date{2024, time.February, 20}, Kind: ForcedActive},
		{Start: Date{2024, time.August, 1}, End: Date{2024, time.August, 31}, Kind: Suspended},
		{Start: Date{2024, time.December, 25}, End: Date{2024, time.December, 25}, Kind: Suspended},
	}, got.Exceptions)
}

func TestNormalizeSortsDeterministically(t *testing.T) {
	raw := []RawWindow{
		{Days: []string{"Sunday"}, Start: "09:00", End: "12:00"},
		{Days: []string{"Monday"}, Start: "15:00", End: "18:00"},
		{Days: []string{"Monday"}, Start: "08:00", End: "12:00"},
		{Days: []string{"Monday"}, Start: "08:00", End: "10:00"},
	}

	got, err := Normalize(raw, nil)
	require.NoError(t, err)

	assert.Equal(t, []RestrictionWindow{
		{Days: Weekdays(time.Monday), Hours: TimeRange{Start: 8 * 60, End: 10 * 60}},
		{Days: Weekdays(time.Monday), Hours: TimeRange{Start: 8 * 60, End: 12 * 60}},
		{Days: Weekdays(time.Monday), Hours: TimeRange{Start: 15 * 60, End: 18 * 60}},
		{Days: Weekdays(time.Sunday), Hours: TimeRange{Start: 9 * 60, End: 12 * 60}},
	}, got.Windows)
}

func TestNormalizeKeepsMidnightSpanWhole(t *testing.T) {
	got, err := Normalize([]RawWindow{
		{Days: []string{"Friday", "Saturday"}, Start: "23:00", End: "04:00"},
	}, nil)
	require.NoError(t, err)

	require.Len(t, got.Windows, 1)
	w := got.Windows[0]
	assert.True(t, w.Hours.SpansMidnight())
	assert.Equal(t, "23:00", w.Hours.Start.String())
	assert.Equal(t, "04:00", w.Hours.End.String())
}

func TestNormalizeIdempotent(t *testing.T) {
	first, err := Normalize(
		[]RawWindow{
			{Days: []string{"Mon-Fri"}, Start: "7:30", End: "19:30"},
			{Days: []string{"Sat"}, Start: "22:00", End: "02:00"},
		},
		[]RawException{
			{Start: "2024-12-25"},
			{Start: "2024-02-20", End: "2024-02-22", Force: true},
		},
	)
	require.NoError(t, err)

	// Render the canonical schedule back into raw records and run it
	// through again.
	var windows []RawWindow
	for _, w := range first.Windows {
		var days []string
		for _, d := range w.Days.Days() {
			days = append(days, d.String())
		}

		windows = append(windows, RawWindow{
			Days:  days,
			Start: w.Hours.Start.String(),
			End:   w.Hours.End.String(),
		})
	}

	var exceptions []RawException
	for _, e := range first.Exceptions {
		exceptions = append(exceptions, RawException{
			Start: e.Start.String(),
			End:   e.End.String(),
			Force: e.Kind == ForcedActive,
		})
	}

	second, err := Normalize(windows, exceptions)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.True(t, first.Equal(second))
}

func TestNormalizeMalformed(t *testing.T) {
	valid := []RawWindow{{Days: []string{"Monday"}, Start: "08:00", End: "20:00"}}

	tests := []struct {
		name       string
		windows    []RawWindow
		exceptions []RawException
		field      string
	}{
		{
			name:    "unknown weekday",
			windows: []RawWindow{{Days: []string{"Funday"}, Start: "08:00", End: "20:00"}},
			field:   "weekday",
		},
		{
			name:    "no weekdays",
			windows: []RawWindow{{Days: nil, Start: "08:00", End: "20:00"}},
			field:   "weekday",
		},
		{
			name:    "hour out of range",
			windows: []RawWindow{{Days: []string{"Monday"}, Start: "25:00", End: "26:00"}},
			field:   "time",
		},
		{
			name:    "bad end time",
			windows: []RawWindow{{Days: []string{"Monday"}, Start: "08:00", End: "8pm"}},
			field:   "time",
		},
		{
			name:    "empty range",
			windows: []RawWindow{{Days: []string{"Monday"}, Start: "08:00", End: "08:00"}},
			field:   "time range",
		},
		{
			name:       "bad exception date",
			windows:    valid,
			exceptions: []RawException{{Start: "25-12-2024"}},
			field:      "date",
		},
		{
			name:       "inverted exception range",
			windows:    valid,
			exceptions: []RawException{{Start: "2024-05-10", End: "2024-05-01"}},
			field:      "date range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.windows, tt.exceptions)

			var malformed *MalformedScheduleError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, tt.field, malformed.Field)
		})
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	got, err := Normalize(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, got.Windows)
	assert.Empty(t, got.Exceptions)
}
