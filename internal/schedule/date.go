package schedule

import (
	"fmt"
	"time"
)

// Date is a civil calendar date with no time of day or location
// attached. Exceptions are anchored to dates so that a suspension of
// "2024-12-25" applies to the whole of that day wherever the zone is.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses an ISO 8601 calendar date such as "2024-12-25". A
// string that does not describe a real date produces a
// *MalformedScheduleError.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, &MalformedScheduleError{Field: "date", Value: s}
	}

	return DateOf(t), nil
}

// DateOf extracts the calendar date from t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Before reports whether d falls earlier on the calendar than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}

	return d.Day < other.Day
}

// After reports whether d falls later on the calendar than other.
func (d Date) After(other Date) bool { return other.Before(d) }

// AddDays returns the date n days after d. Negative n steps backward.
func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC))
}

// Weekday returns the day of the week d falls on.
func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

// Time returns the instant at clock time tod on d in loc.
func (d Date) Time(tod TimeOfDay, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, tod.Hour(), tod.Minute(), 0, 0, loc)
}

// String formats d as an ISO 8601 date such as "2024-12-25".
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}
