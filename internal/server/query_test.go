package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithAt(at string) *http.Request {
	target := "/cities/milano"
	if at != "" {
		target += "?at=" + at
	}

	return httptest.NewRequest(http.MethodGet, target, nil)
}

func TestQueryTimeDefaultsToNow(t *testing.T) {
	got, err := QueryTime(requestWithAt(""), time.UTC)
	require.NoError(t, err)

	assert.WithinDuration(t, time.Now(), got, 2*time.Second)
	assert.Equal(t, time.UTC, got.Location())
}

func TestQueryTimeRFC3339(t *testing.T) {
	got, err := QueryTime(requestWithAt("2024-01-03T12:00:00%2B01:00"), time.UTC)
	require.NoError(t, err)

	want := time.Date(2024, time.January, 3, 11, 0, 0, 0, time.UTC)
	assert.True(t, got.Equal(want), "got %v", got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestQueryTimeShortFormUsesLocation(t *testing.T) {
	cet := time.FixedZone("CET", 3600)

	got, err := QueryTime(requestWithAt("2024-01-03T12:00"), cet)
	require.NoError(t, err)

	want := time.Date(2024, time.January, 3, 11, 0, 0, 0, time.UTC)
	assert.True(t, got.Equal(want), "got %v", got)
	assert.Equal(t, cet, got.Location())
}

func TestQueryTimeErrors(t *testing.T) {
	tests := []struct {
		name string
		at   string
	}{
		{name: "word", at: "noon"},
		{name: "date only", at: "2024-01-03"},
		{name: "out of range", at: "2024-13-40T99:99"},
		{name: "slashes", at: "03%2F01%2F2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := QueryTime(requestWithAt(tt.at), time.UTC)
			require.Error(t, err)

			var queryErr *QueryParameterError
			require.ErrorAs(t, err, &queryErr)

			status, msg := queryErr.ServerErrorResponse()
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Contains(t, msg, "Invalid at time")
		})
	}
}
