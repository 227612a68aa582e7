package schedule

// ExceptionKind states which way an Exception overrides the weekly
// windows of a schedule.
type ExceptionKind int

const (
	// Suspended lifts the restriction for the covered dates even if a
	// weekly window would normally apply. Holidays are the common case.
	Suspended ExceptionKind = iota

	// ForcedActive keeps the restriction on for the covered dates even
	// outside every weekly window, as during smog emergency blocks.
	ForcedActive
)

// String returns the stable textual form of k, used when persisting
// exceptions and in API payloads.
func (k ExceptionKind) String() string {
	if k == ForcedActive {
		return "forced-active"
	}

	return "suspended"
}

// ParseExceptionKind resolves the textual form written by String. Any
// other input produces a *MalformedScheduleError.
func ParseExceptionKind(s string) (ExceptionKind, error) {
	switch s {
	case "suspended":
		return Suspended, nil
	case "forced-active":
		return ForcedActive, nil
	}

	return 0, &MalformedScheduleError{Field: "exception kind", Value: s}
}

// Exception overrides the weekly windows for an inclusive range of
// calendar dates. Start and End may name the same date for a single
// day override. A normalized schedule never holds an Exception whose
// End precedes its Start.
//
// When exceptions of both kinds cover the same date, suspension wins.
type Exception struct {
	Start Date
	End   Date
	Kind  ExceptionKind
}

// Covers reports whether d falls inside the exception's date range.
// Both endpoint dates are included.
func (e Exception) Covers(d Date) bool {
	return !d.Before(e.Start) && !d.After(e.End)
}
