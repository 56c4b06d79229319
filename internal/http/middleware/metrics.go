package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/isanahealth/practice-api/internal/observability/metrics"
)

// Metrics records request counts and latency per route pattern. The chi route
// pattern is used as the path label so IDs do not blow up cardinality.
func Metrics(m *metrics.StoreMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			path := chi.RouteContext(r.Context()).RoutePattern()
			if path == "" {
				path = r.URL.Path
			}
			m.ObserveRequest(r.Method, path, strconv.Itoa(ww.Status()))
			m.ObserveRequestDuration(r.Method, path, time.Since(start).Seconds())
		})
	}
}
