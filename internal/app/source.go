package app

import "fmt"

// SourceStatusCodeError is an error that occurs when a municipality
// website returns an unexpected status code for a request.
//
// Municipality pages serve HTML, not a structured error body, so the
// error only carries the status code and the page URL it came from.
// Callers match it with errors.As to tell an unreachable source apart
// from a page that changed shape.
type SourceStatusCodeError struct {
	StatusCode int
	URL        string
}

func (s *SourceStatusCodeError) Error() string {
	return fmt.Sprintf("statusCode=%d, url=%s", s.StatusCode, s.URL)
}
