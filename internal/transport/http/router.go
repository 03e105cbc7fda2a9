package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	auditHandler "udcf/internal/audit/handler"
	consentHandler "udcf/internal/consent/handler"
	decisionHandler "udcf/internal/decision/handler"
	"udcf/internal/platform/health"
	"udcf/internal/platform/metrics"
	"udcf/internal/platform/middleware"
	statsHandler "udcf/internal/stats/handler"
)

// Handlers groups the module handlers the router mounts. Transport stays a
// thin layer: every route delegates to a domain service.
type Handlers struct {
	Decision *decisionHandler.Handler
	Consent  *consentHandler.Handler
	Audit    *auditHandler.Handler
	Stats    *statsHandler.Handler
	Health   *health.Handler
}

// NewRouter wires all public endpoints with the middleware stack.
func NewRouter(h Handlers, logger *slog.Logger, m *metrics.Metrics, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Logger(logger))
	if m != nil {
		r.Use(middleware.EndpointLatency(m))
	}
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.ContentTypeJSON)

	h.Decision.Register(r)
	h.Consent.Register(r)
	h.Audit.Register(r)
	h.Stats.Register(r)
	h.Health.Register(r)

	r.Handle("/metrics", promhttp.Handler())

	return r
}
