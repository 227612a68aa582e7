package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandWeekdays(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   []time.Weekday
	}{
		{
			name:   "full names",
			tokens: []string{"Monday", "Wednesday"},
			want:   []time.Weekday{time.Monday, time.Wednesday},
		},
		{
			name:   "abbreviations",
			tokens: []string{"mon", "Fri"},
			want:   []time.Weekday{time.Monday, time.Friday},
		},
		{
			name:   "mixed case with spaces",
			tokens: []string{" SATURDAY ", "sunday"},
			want:   []time.Weekday{time.Saturday, time.Sunday},
		},
		{
			name:   "range",
			tokens: []string{"Mon-Fri"},
			want:   []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		},
		{
			name:   "range of full names",
			tokens: []string{"Saturday-Sunday"},
			want:   []time.Weekday{time.Saturday, time.Sunday},
		},
		{
			name:   "range wrapping the week",
			tokens: []string{"Fri-Mon"},
			want:   []time.Weekday{time.Monday, time.Friday, time.Saturday, time.Sunday},
		},
		{
			name:   "weekdays group",
			tokens: []string{"weekdays"},
			want:   []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		},
		{
			name:   "weekends group",
			tokens: []string{"Weekends"},
			want:   []time.Weekday{time.Saturday, time.Sunday},
		},
		{
			name:   "daily group",
			tokens: []string{"daily"},
			want:   []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday},
		},
		{
			name:   "every day group",
			tokens: []string{"every day"},
			want:   []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday},
		},
		{
			name:   "tokens union",
			tokens: []string{"weekends", "Mon"},
			want:   []time.Weekday{time.Monday, time.Saturday, time.Sunday},
		},
		{
			name:   "duplicate tokens collapse",
			tokens: []string{"Monday", "mon", "Mon-Tue"},
			want:   []time.Weekday{time.Monday, time.Tuesday},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandWeekdays(tt.tokens)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Days())
		})
	}
}

func TestExpandWeekdaysMalformed(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		value  string
	}{
		{name: "unknown day", tokens: []string{"Funday"}, value: "Funday"},
		{name: "unknown day in list", tokens: []string{"Monday", "Funday"}, value: "Funday"},
		{name: "range with unknown end", tokens: []string{"Mon-Funday"}, value: "Mon-Funday"},
		{name: "range with unknown start", tokens: []string{"Funday-Fri"}, value: "Funday-Fri"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExpandWeekdays(tt.tokens)

			var malformed *MalformedScheduleError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, "weekday", malformed.Field)
			assert.Equal(t, tt.value, malformed.Value)
		})
	}
}

func TestWeekdaySetOrdersMondayFirst(t *testing.T) {
	s := Weekdays(time.Sunday, time.Monday, time.Saturday)

	assert.Equal(t, []time.Weekday{time.Monday, time.Saturday, time.Sunday}, s.Days())
	assert.Equal(t, time.Monday, s.First())
	assert.Equal(t, "Monday,Saturday,Sunday", s.String())
}

func TestWeekdaySetContains(t *testing.T) {
	s := Weekdays(time.Monday, time.Friday)

	assert.True(t, s.Contains(time.Monday))
	assert.True(t, s.Contains(time.Friday))
	assert.False(t, s.Contains(time.Sunday))
	assert.False(t, WeekdaySet(0).Contains(time.Monday))
	assert.True(t, WeekdaySet(0).IsEmpty())
}
