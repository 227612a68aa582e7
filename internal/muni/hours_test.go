package muni

import (
	"testing"

	"github.com/cicconee/ztl-maps/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHours(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []schedule.RawWindow
	}{
		{
			name: "single range",
			in:   "Monday-Friday 7:30-19:30",
			want: []schedule.RawWindow{
				{Days: []string{"Monday-Friday"}, Start: "7:30", End: "19:30"},
			},
		},
		{
			name: "prefixed",
			in:   "Operating Hours: Monday-Friday 7:30-19:30",
			want: []schedule.RawWindow{
				{Days: []string{"Monday-Friday"}, Start: "7:30", End: "19:30"},
			},
		},
		{
			name: "italian prefix",
			in:   "Orari: every day 7:00-20:00",
			want: []schedule.RawWindow{
				{Days: []string{"every day"}, Start: "7:00", End: "20:00"},
			},
		},
		{
			name: "two segments",
			in:   "Monday-Friday 07:00-19:00, Saturday-Sunday 10:00-14:00",
			want: []schedule.RawWindow{
				{Days: []string{"Monday-Friday"}, Start: "07:00", End: "19:00"},
				{Days: []string{"Saturday-Sunday"}, Start: "10:00", End: "14:00"},
			},
		},
		{
			name: "days joined with and",
			in:   "Saturday and Sunday 10:00-14:00",
			want: []schedule.RawWindow{
				{Days: []string{"Saturday", "Sunday"}, Start: "10:00", End: "14:00"},
			},
		},
		{
			name: "trailing colon after days",
			in:   "Monday-Friday: 7:30-19:30",
			want: []schedule.RawWindow{
				{Days: []string{"Monday-Friday"}, Start: "7:30", End: "19:30"},
			},
		},
		{
			name: "no day part means daily",
			in:   "7:30-19:30",
			want: []schedule.RawWindow{
				{Days: []string{"daily"}, Start: "7:30", End: "19:30"},
			},
		},
		{
			name: "24 hours alone",
			in:   "24 hours",
			want: []schedule.RawWindow{
				{Days: []string{"daily"}, Start: "00:00", End: "23:59"},
			},
		},
		{
			name: "24 hours as end",
			in:   "every day 00:00-24 hours",
			want: []schedule.RawWindow{
				{Days: []string{"every day"}, Start: "00:00", End: "23:59"},
			},
		},
		{
			name: "night range",
			in:   "every day 21:00-07:30",
			want: []schedule.RawWindow{
				{Days: []string{"every day"}, Start: "21:00", End: "07:30"},
			},
		},
		{
			name: "dotted times",
			in:   "Monday-Saturday 7.30-20.00",
			want: []schedule.RawWindow{
				{Days: []string{"Monday-Saturday"}, Start: "7.30", End: "20.00"},
			},
		},
		{
			name: "spaces around dash",
			in:   "weekdays 8:00 - 18:00",
			want: []schedule.RawWindow{
				{Days: []string{"weekdays"}, Start: "8:00", End: "18:00"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHours(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseHoursFeedsNormalize(t *testing.T) {
	windows, err := ParseHours("Monday-Friday 07:00-19:00, Saturday and Sunday 10:00-14:00")
	require.NoError(t, err)

	s, err := schedule.Normalize(windows, nil)
	require.NoError(t, err)
	assert.Len(t, s.Windows, 2)
}

func TestParseHoursErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "empty", in: ""},
		{name: "prefix only", in: "Operating Hours:"},
		{name: "no time range", in: "closed to traffic"},
		{name: "segment without time", in: "Monday-Friday 7:30-19:30, ask the office"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHours(tt.in)
			assert.Error(t, err)
		})
	}
}
