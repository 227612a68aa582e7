package schedule

import (
	"sort"
	"time"
)

// transitionHorizon bounds how far ahead NextTransition searches for a
// status change. Weekly rules repeat after seven days, so a schedule
// with no boundary inside the horizon only changes through exceptions
// further out.
const transitionHorizon = 7 * 24 * time.Hour

// IsActive reports whether the restriction is in force at the instant
// at, evaluated in at's location. Seconds are truncated, so activity is
// decided at whole minute precision.
//
// Exceptions covering at's date are consulted before the weekly
// windows. A Suspended exception forces the answer to false and wins
// over a ForcedActive exception covering the same date. With no
// exception in play, the restriction is active when any window covers
// the weekday and clock time, counting early morning spillover from a
// midnight spanning window anchored on the previous day.
func (s Schedule) IsActive(at time.Time) bool {
	d := DateOf(at)

	for _, e := range s.Exceptions {
		if e.Kind == Suspended && e.Covers(d) {
			return false
		}
	}

	for _, e := range s.Exceptions {
		if e.Kind == ForcedActive && e.Covers(d) {
			return true
		}
	}

	day := at.Weekday()
	tod := TimeOfDayOf(at)
	for _, w := range s.Windows {
		if w.appliesAt(day, tod) {
			return true
		}
	}

	return false
}

// NextTransition returns the earliest scheduled boundary strictly
// after from at which the activity actually changes, looking ahead
// seven days in from's location. A boundary is a window's start
// minute, a window's final included minute, or the midnight edge of an
// exception taking or leaving effect. Boundaries swallowed by an
// exception or by an overlapping window are skipped.
//
// The second return is false when the schedule is empty or its
// activity never changes inside the horizon, as with a rule covering
// every day around the clock.
func (s Schedule) NextTransition(from time.Time) (time.Time, bool) {
	if len(s.Windows) == 0 && len(s.Exceptions) == 0 {
		return time.Time{}, false
	}

	loc := from.Location()
	from = from.Truncate(time.Minute)
	horizon := from.Add(transitionHorizon)

	var candidates []time.Time

	first := DateOf(from)
	for off := 0; off <= 8; off++ {
		d := first.AddDays(off)
		wd := d.Weekday()

		for _, w := range s.Windows {
			if !w.Days.Contains(wd) {
				continue
			}

			candidates = append(candidates, d.Time(w.Hours.Start, loc))
			if w.Hours.SpansMidnight() {
				candidates = append(candidates, d.AddDays(1).Time(w.Hours.End, loc))
			} else {
				candidates = append(candidates, d.Time(w.Hours.End, loc))
			}
		}
	}

	for _, e := range s.Exceptions {
		candidates = append(candidates, e.Start.Time(0, loc))
		candidates = append(candidates, e.End.AddDays(1).Time(0, loc))
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Before(candidates[j])
	})

	for _, c := range candidates {
		if !c.After(from) || c.After(horizon) {
			continue
		}

		at := s.IsActive(c)
		if s.IsActive(c.Add(-time.Minute)) != at || at != s.IsActive(c.Add(time.Minute)) {
			return c, true
		}
	}

	return time.Time{}, false
}
