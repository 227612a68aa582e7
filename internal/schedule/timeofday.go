package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a clock time expressed as whole minutes since midnight.
// Valid values range from 0 (00:00) through 1439 (23:59). Comparing two
// values with < and <= orders them within a single day.
type TimeOfDay int

// minutesPerDay is the number of minutes in a civil day.
const minutesPerDay = 24 * 60

// ParseTimeOfDay parses a clock time string into a TimeOfDay. The hour
// and minute must be separated by ":" or ".", the hour must be 0-23,
// and the minute must be 0-59. Single digit hours are accepted, so
// "7:30", "07:30", and "07.30" all parse to the same value.
//
// If s does not describe a valid clock time, a *MalformedScheduleError
// is returned.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	sep := ":"
	if !strings.Contains(s, sep) {
		sep = "."
	}

	parts := strings.Split(strings.TrimSpace(s), sep)
	if len(parts) != 2 {
		return 0, &MalformedScheduleError{Field: "time", Value: s}
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, &MalformedScheduleError{Field: "time", Value: s}
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 || minute < 0 || minute > 59 {
		return 0, &MalformedScheduleError{Field: "time", Value: s}
	}

	return TimeOfDay(hour*60 + minute), nil
}

// TimeOfDayFromMinutes converts a minutes-since-midnight count into a
// TimeOfDay. It validates that m falls within a single day and returns
// a *MalformedScheduleError when it does not. It is used when reading
// stored schedules, which persist clock times as minute counts.
func TimeOfDayFromMinutes(m int) (TimeOfDay, error) {
	if m < 0 || m >= minutesPerDay {
		return 0, &MalformedScheduleError{Field: "time", Value: strconv.Itoa(m)}
	}

	return TimeOfDay(m), nil
}

// TimeOfDayOf extracts the clock time from t, truncating seconds and
// any finer precision.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

// Hour returns the hour component, 0 through 23.
func (t TimeOfDay) Hour() int { return int(t) / 60 }

// Minute returns the minute component, 0 through 59.
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// Minutes returns t as whole minutes since midnight.
func (t TimeOfDay) Minutes() int { return int(t) }

// String formats t as a zero padded 24 hour clock time such as "07:30".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}
