package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// HTTPRecorder receives per-request measurements
type HTTPRecorder interface {
	ObserveHTTPRequest(method, path, status string, duration time.Duration)
}

// Metrics records request counts and durations. The chi route pattern is
// used as the path label to keep cardinality bounded.
func Metrics(recorder HTTPRecorder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			path := chi.RouteContext(r.Context()).RoutePattern()
			if path == "" {
				path = "unmatched"
			}
			recorder.ObserveHTTPRequest(r.Method, path, strconv.Itoa(ww.Status()), time.Since(start))
		})
	}
}
