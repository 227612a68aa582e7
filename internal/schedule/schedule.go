package schedule

// Schedule is the canonical timetable of a single zone's restriction.
// Windows hold the weekly rules and Exceptions hold dated overrides.
// Both slices are sorted and free of exact duplicates when produced by
// Normalize, and evaluation assumes nothing beyond that, so overlapping
// windows are tolerated and simply OR together.
//
// The zero value is a schedule that is never active.
type Schedule struct {
	Windows    []RestrictionWindow
	Exceptions []Exception
}

// Equal reports whether s and other hold identical windows and
// exceptions in identical order. Two normalized schedules built from
// the same rules compare equal even if the raw inputs spelled the days
// differently.
func (s Schedule) Equal(other Schedule) bool {
	if len(s.Windows) != len(other.Windows) || len(s.Exceptions) != len(other.Exceptions) {
		return false
	}

	for i, w := range s.Windows {
		if w != other.Windows[i] {
			return false
		}
	}

	for i, e := range s.Exceptions {
		if e != other.Exceptions[i] {
			return false
		}
	}

	return true
}
