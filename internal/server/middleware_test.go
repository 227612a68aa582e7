package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postAdmin(t *testing.T, srv *httptest.Server, path string, cookie *http.Cookie) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, srv.URL+path, nil)
	require.NoError(t, err)
	if cookie != nil {
		req.AddCookie(cookie)
	}

	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })

	return res
}

func TestAdminValidaterRejectsUnauthenticated(t *testing.T) {
	tests := []struct {
		name   string
		cookie *http.Cookie
	}{
		{
			name:   "no cookie",
			cookie: nil,
		},
		{
			name:   "garbage token",
			cookie: &http.Cookie{Name: adminTokenCookieKey, Value: "not.a.token"},
		},
	}

	paths := []string{"/admins/cities?q=milano", "/admins/cities/sync?q=milano"}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := testServer(t)

			for _, path := range paths {
				res := postAdmin(t, srv, path, tt.cookie)
				require.Equal(t, http.StatusUnauthorized, res.StatusCode, "path %s", path)
				assert.Equal(t, "Please login", errorMsg(t, res))
			}
		})
	}
}

func TestRequestMetricsRoutePattern(t *testing.T) {
	srv, s := testServer(t)

	get(t, srv, "/cities/milano")
	get(t, srv, "/cities/torino")
	get(t, srv, "/cities/atlantis")

	ok := testutil.ToFloat64(s.Metrics.Requests.WithLabelValues("/cities/{city}", "200"))
	notFound := testutil.ToFloat64(s.Metrics.Requests.WithLabelValues("/cities/{city}", "404"))

	assert.Equal(t, 1.0, ok)
	assert.Equal(t, 2.0, notFound)
}
