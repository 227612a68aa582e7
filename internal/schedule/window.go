package schedule

import (
	"fmt"
	"time"
)

// TimeRange is a daily interval between two clock times. Both the
// Start and End minutes are inside the range, so a camera enforcing
// 07:30-19:30 still fines at exactly 19:30.
//
// When End is earlier than Start the range runs through midnight into
// the following day. Start and End are never equal in a normalized
// schedule.
type TimeRange struct {
	Start TimeOfDay
	End   TimeOfDay
}

// SpansMidnight reports whether the range crosses into the next day,
// as in 22:00-02:00.
func (r TimeRange) SpansMidnight() bool {
	return r.End < r.Start
}

// Contains reports whether clock time t falls inside the range when
// the range begins on the day t belongs to. For a midnight spanning
// range this covers only the evening side. Use RestrictionWindow to
// resolve the early morning spillover onto the following day.
func (r TimeRange) Contains(t TimeOfDay) bool {
	if r.SpansMidnight() {
		return t >= r.Start || t <= r.End
	}

	return t >= r.Start && t <= r.End
}

// String formats the range as "07:30-19:30".
func (r TimeRange) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// RestrictionWindow is one weekly rule of a schedule. The restriction
// applies on every day in Days between Hours.Start and Hours.End. A
// midnight spanning window anchored on Monday runs from Monday evening
// into the early hours of Tuesday, whether or not Tuesday is in Days.
type RestrictionWindow struct {
	Days  WeekdaySet
	Hours TimeRange
}

// appliesAt reports whether the window covers clock time tod on
// weekday day. Midnight spanning windows match twice, on the anchor
// day at or after Start and on the following day at or before End.
func (w RestrictionWindow) appliesAt(day time.Weekday, tod TimeOfDay) bool {
	if !w.Hours.SpansMidnight() {
		return w.Days.Contains(day) && w.Hours.Contains(tod)
	}

	if w.Days.Contains(day) && tod >= w.Hours.Start {
		return true
	}

	return w.Days.Contains(prevWeekday(day)) && tod <= w.Hours.End
}

// String formats the window as "Monday,Tuesday 07:30-19:30".
func (w RestrictionWindow) String() string {
	return fmt.Sprintf("%s %s", w.Days, w.Hours)
}
