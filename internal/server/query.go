package server

import (
	"fmt"
	"net/http"
	"time"
)

// queryTimeLayout is the short local form the at parameter accepts
// alongside RFC 3339.
const queryTimeLayout = "2006-01-02T15:04"

type QueryParameterError struct {
	Msg string
	error
}

func (p *QueryParameterError) ServerErrorResponse() (int, string) {
	return http.StatusBadRequest, p.Msg
}

// QueryTime resolves the optional at query parameter to the moment a
// request asks about. A missing parameter means now. RFC 3339 values
// carry their own offset; the short form is read in loc, the zone the
// municipalities publish their hours in.
//
// If parsing fails an error is returned as a QueryParameterError.
func QueryTime(r *http.Request, loc *time.Location) (time.Time, error) {
	raw := r.URL.Query().Get("at")
	if raw == "" {
		return time.Now().In(loc), nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(loc), nil
	}

	t, err := time.ParseInLocation(queryTimeLayout, raw, loc)
	if err != nil {
		return time.Time{}, &QueryParameterError{
			Msg:   fmt.Sprintf("Invalid at time %q, want RFC 3339 or %s", raw, queryTimeLayout),
			error: fmt.Errorf("failed to parse at: %w", err),
		}
	}

	return t, nil
}
