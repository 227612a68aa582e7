package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/cicconee/ztl-maps/internal/admin"
	"github.com/cicconee/ztl-maps/internal/app"
	"github.com/cicconee/ztl-maps/internal/metrics"
	"github.com/go-chi/chi/v5"
)

const adminTokenCookieKey = "admin_token"

type ctxKey string

// AdminIDKey holds the validated admin id in the request context
// passed to wrapped handlers.
const AdminIDKey ctxKey = "admin_id"

// AdminValidater wraps the admin paths. Any request that requires a
// valid admin goes through Validate.
type AdminValidater struct {
	admins *admin.Service
	logger *log.Logger
}

// Validate verifies the caller holds a valid admin token cookie and
// the account behind it is approved, then runs next with the admin id
// on the request context.
func (v *AdminValidater) Validate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lw := NewLogWriter(v.logger, w, r)

		cookie, err := r.Cookie(adminTokenCookieKey)
		if err != nil {
			appErr := &app.ServerResponseError{
				Err:        fmt.Errorf("getting %s cookie: %v", adminTokenCookieKey, err),
				Msg:        "Please login",
				StatusCode: http.StatusUnauthorized,
			}
			v.logAbort(r, appErr)
			lw.WriteError(appErr)
			return
		}

		account, err := v.admins.Validate(r.Context(), cookie.Value)
		if err != nil {
			err = fmt.Errorf("validating token: %w", err)
			v.logAbort(r, err)
			lw.WriteError(err)
			return
		}

		if !account.IsApproved() {
			appErr := &app.ServerResponseError{
				Err:        fmt.Errorf("admin not approved (id=%d)", account.ID),
				Msg:        "Your admin access has not been approved yet",
				StatusCode: http.StatusUnauthorized,
			}
			v.logAbort(r, appErr)
			lw.WriteError(appErr)
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), AdminIDKey, account.ID)))
	}
}

func (v *AdminValidater) logAbort(r *http.Request, err error) {
	v.logger.Printf("%s %s AdminValidater.Validate: aborting admin request: %v\n", r.Method, r.URL.Path, err)
}

// RequestMetrics counts and times every request by the chi route
// pattern that matched it. Reading the pattern after next returns is
// what makes the label stable across path parameters.
func RequestMetrics(m *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = r.URL.Path
			}

			m.Requests.WithLabelValues(route, strconv.Itoa(sw.status)).Inc()
			m.RequestDuration.Observe(time.Since(start).Seconds())
		})
	}
}

// statusWriter remembers the status code a handler wrote.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
