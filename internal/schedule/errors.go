package schedule

import "fmt"

// MalformedScheduleError is returned when a raw schedule value cannot
// be normalized. The Field describes which part of the input failed
// ("weekday", "time", "time range", or "date") and Value holds the
// offending token exactly as it was received.
//
// It is only produced while normalizing raw input. Evaluating an
// already normalized Schedule never fails.
type MalformedScheduleError struct {
	Field string
	Value string
}

func (e *MalformedScheduleError) Error() string {
	return fmt.Sprintf("malformed schedule %s %q", e.Field, e.Value)
}
