package schedule

import (
	"strings"
	"time"
)

// WeekdaySet is a set of weekdays packed into a single byte. The bit
// for a day is 1 << time.Weekday, so the zero value is the empty set.
type WeekdaySet uint8

// weekOrder lists the days of the week starting on Monday. Set
// operations that produce ordered output walk this slice so that
// "Mon,Tue" sorts ahead of "Sat,Sun" even though time.Weekday counts
// from Sunday.
var weekOrder = [7]time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// Weekdays builds a WeekdaySet containing each listed day.
func Weekdays(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s = s.With(d)
	}

	return s
}

// With returns a copy of s that also contains d.
func (s WeekdaySet) With(d time.Weekday) WeekdaySet {
	return s | 1<<uint(d)
}

// Contains reports whether d is in the set.
func (s WeekdaySet) Contains(d time.Weekday) bool {
	return s&(1<<uint(d)) != 0
}

// IsEmpty reports whether the set contains no days.
func (s WeekdaySet) IsEmpty() bool { return s == 0 }

// Days returns the members of the set ordered Monday first.
func (s WeekdaySet) Days() []time.Weekday {
	days := make([]time.Weekday, 0, 7)
	for _, d := range weekOrder {
		if s.Contains(d) {
			days = append(days, d)
		}
	}

	return days
}

// First returns the earliest member of the set in Monday first order.
// It must not be called on an empty set.
func (s WeekdaySet) First() time.Weekday {
	for _, d := range weekOrder {
		if s.Contains(d) {
			return d
		}
	}

	return time.Monday
}

// String joins the member day names Monday first, such as
// "Monday,Tuesday,Friday".
func (s WeekdaySet) String() string {
	names := make([]string, 0, 7)
	for _, d := range s.Days() {
		names = append(names, d.String())
	}

	return strings.Join(names, ",")
}

// weekIndex returns the position of d in Monday first order, 0 for
// Monday through 6 for Sunday. Normalized windows sort by this index.
func weekIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// prevWeekday returns the day before d, wrapping Sunday behind Monday.
func prevWeekday(d time.Weekday) time.Weekday {
	return time.Weekday((int(d) + 6) % 7)
}

// dayNames maps lowercased day tokens, full names and three letter
// abbreviations, to their weekday.
var dayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"mon":       time.Monday,
	"tuesday":   time.Tuesday,
	"tue":       time.Tuesday,
	"wednesday": time.Wednesday,
	"wed":       time.Wednesday,
	"thursday":  time.Thursday,
	"thu":       time.Thursday,
	"friday":    time.Friday,
	"fri":       time.Friday,
	"saturday":  time.Saturday,
	"sat":       time.Saturday,
	"sunday":    time.Sunday,
	"sun":       time.Sunday,
}

// dayGroups maps lowercased collective tokens to the set they stand
// for.
var dayGroups = map[string]WeekdaySet{
	"weekdays":  Weekdays(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday),
	"weekends":  Weekdays(time.Saturday, time.Sunday),
	"all days":  Weekdays(weekOrder[:]...),
	"daily":     Weekdays(weekOrder[:]...),
	"everyday":  Weekdays(weekOrder[:]...),
	"every day": Weekdays(weekOrder[:]...),
}

// parseWeekday resolves a single day token such as "Monday" or "fri".
func parseWeekday(token string) (time.Weekday, error) {
	d, ok := dayNames[strings.ToLower(strings.TrimSpace(token))]
	if !ok {
		return 0, &MalformedScheduleError{Field: "weekday", Value: token}
	}

	return d, nil
}

// ExpandWeekdays resolves a list of raw day tokens into a WeekdaySet.
// Each token may be a single day ("Monday", "fri"), an inclusive range
// ("Mon-Fri", "Saturday-Sunday"), or a collective name ("weekdays",
// "weekends", "daily"). Ranges wrap past the end of the week, so
// "Fri-Mon" covers Friday, Saturday, Sunday, and Monday.
//
// An unrecognized token produces a *MalformedScheduleError carrying
// that token.
func ExpandWeekdays(tokens []string) (WeekdaySet, error) {
	var s WeekdaySet
	for _, token := range tokens {
		normalized := strings.ToLower(strings.TrimSpace(token))

		if group, ok := dayGroups[normalized]; ok {
			s |= group
			continue
		}

		if from, to, ok := strings.Cut(normalized, "-"); ok {
			start, err := parseWeekday(from)
			if err != nil {
				return 0, &MalformedScheduleError{Field: "weekday", Value: token}
			}

			end, err := parseWeekday(to)
			if err != nil {
				return 0, &MalformedScheduleError{Field: "weekday", Value: token}
			}

			for d := start; ; d = time.Weekday((int(d) + 1) % 7) {
				s = s.With(d)
				if d == end {
					break
				}
			}
			continue
		}

		d, err := parseWeekday(token)
		if err != nil {
			return 0, err
		}

		s = s.With(d)
	}

	return s, nil
}
