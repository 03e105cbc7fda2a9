package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"udcf/internal/platform/metrics"
)

// EndpointLatency records per-endpoint request duration. The chi route
// pattern ("/consent/{ownerId}", not the raw path) is the histogram label,
// keeping cardinality bounded; it is only known after routing, so the
// observation happens on the way out.
func EndpointLatency(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)

			endpoint := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					endpoint = pattern
				}
			}
			m.ObserveEndpointLatency(endpoint, time.Since(start).Seconds())
		})
	}
}
