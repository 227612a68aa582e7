package schedule

import (
	"sort"
	"strings"
)

// RawWindow is one weekly rule as it arrives from a municipality page
// or a seed file, before any validation. Days holds free form day
// tokens ("Monday", "Mon-Fri", "weekdays") and Start and End hold
// clock times ("7:30", "19.30").
type RawWindow struct {
	Days  []string `json:"days"`
	Start string   `json:"start"`
	End   string   `json:"end"`
}

// RawException is one date override as it arrives from upstream.
// End may be empty to cover only the Start date. Force marks the
// range as forced active rather than suspended.
type RawException struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
	Force bool   `json:"force,omitempty"`
}

// Normalize validates raw windows and exceptions and assembles them
// into a canonical Schedule. Day tokens are expanded into weekday
// sets, clock times and dates are parsed, exact duplicates are
// dropped, and the results are sorted into a stable order. Midnight
// spanning windows are kept whole rather than split at 00:00, so the
// evaluated activity is identical before and after normalizing.
//
// Normalizing the textual rendering of an already normalized schedule
// yields an equal Schedule. Any invalid token causes a
// *MalformedScheduleError and no partial result.
func Normalize(windows []RawWindow, exceptions []RawException) (Schedule, error) {
	ws, err := normalizeWindows(windows)
	if err != nil {
		return Schedule{}, err
	}

	exs, err := normalizeExceptions(exceptions)
	if err != nil {
		return Schedule{}, err
	}

	return Schedule{Windows: ws, Exceptions: exs}, nil
}

func normalizeWindows(raw []RawWindow) ([]RestrictionWindow, error) {
	seen := map[RestrictionWindow]bool{}
	windows := make([]RestrictionWindow, 0, len(raw))

	for _, r := range raw {
		days, err := ExpandWeekdays(r.Days)
		if err != nil {
			return nil, err
		}
		if days.IsEmpty() {
			return nil, &MalformedScheduleError{Field: "weekday", Value: strings.Join(r.Days, ",")}
		}

		start, err := ParseTimeOfDay(r.Start)
		if err != nil {
			return nil, err
		}

		end, err := ParseTimeOfDay(r.End)
		if err != nil {
			return nil, err
		}

		if start == end {
			return nil, &MalformedScheduleError{Field: "time range", Value: r.Start + "-" + r.End}
		}

		w := RestrictionWindow{Days: days, Hours: TimeRange{Start: start, End: end}}
		if seen[w] {
			continue
		}

		seen[w] = true
		windows = append(windows, w)
	}

	sort.Slice(windows, func(i, j int) bool {
		a, b := windows[i], windows[j]
		if ai, bi := weekIndex(a.Days.First()), weekIndex(b.Days.First()); ai != bi {
			return ai < bi
		}
		if a.Hours.Start != b.Hours.Start {
			return a.Hours.Start < b.Hours.Start
		}
		if a.Hours.End != b.Hours.End {
			return a.Hours.End < b.Hours.End
		}

		return a.Days < b.Days
	})

	return windows, nil
}

func normalizeExceptions(raw []RawException) ([]Exception, error) {
	seen := map[Exception]bool{}
	exceptions := make([]Exception, 0, len(raw))

	for _, r := range raw {
		start, err := ParseDate(r.Start)
		if err != nil {
			return nil, err
		}

		end := start
		if r.End != "" {
			if end, err = ParseDate(r.End); err != nil {
				return nil, err
			}
		}

		if end.Before(start) {
			return nil, &MalformedScheduleError{Field: "date range", Value: r.Start + ".." + r.End}
		}

		kind := Suspended
		if r.Force {
			kind = ForcedActive
		}

		e := Exception{Start: start, End: end, Kind: kind}
		if seen[e] {
			continue
		}

		seen[e] = true
		exceptions = append(exceptions, e)
	}

	sort.Slice(exceptions, func(i, j int) bool {
		a, b := exceptions[i], exceptions[j]
		if a.Start != b.Start {
			return a.Start.Before(b.Start)
		}
		if a.End != b.End {
			return a.End.Before(b.End)
		}

		return a.Kind < b.Kind
	})

	return exceptions, nil
}
