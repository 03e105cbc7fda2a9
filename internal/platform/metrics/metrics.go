package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	AccessChecks       *prometheus.CounterVec
	AccessCheckLatency prometheus.Histogram

	ConsentReplacements prometheus.Counter
	ConsentReads        prometheus.Counter

	AuditEntriesAppended prometheus.Counter
	AuditAppendFailures  prometheus.Counter

	EndpointLatency *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		AccessChecks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "udcf_access_checks_total",
			Help: "Total number of access checks evaluated, labeled by decision and purpose",
		}, []string{"decision", "purpose"}),
		AccessCheckLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "udcf_access_check_latency_seconds",
			Help:    "Latency of access check evaluations in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		ConsentReplacements: promauto.NewCounter(prometheus.CounterOpts{
			Name: "udcf_consent_replacements_total",
			Help: "Total number of consent record replacements",
		}),
		ConsentReads: promauto.NewCounter(prometheus.CounterOpts{
			Name: "udcf_consent_reads_total",
			Help: "Total number of consent record reads",
		}),
		AuditEntriesAppended: promauto.NewCounter(prometheus.CounterOpts{
			Name: "udcf_audit_entries_appended_total",
			Help: "Total number of audit entries appended",
		}),
		AuditAppendFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "udcf_audit_append_failures_total",
			Help: "Total number of audit append failures",
		}),
		EndpointLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "udcf_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}

// IncrementAccessChecks increments the access check counter with decision and purpose labels
func (m *Metrics) IncrementAccessChecks(decision, purpose string) {
	m.AccessChecks.WithLabelValues(decision, purpose).Inc()
}

// ObserveAccessCheckLatency records the latency of an access check evaluation
func (m *Metrics) ObserveAccessCheckLatency(durationSeconds float64) {
	m.AccessCheckLatency.Observe(durationSeconds)
}

func (m *Metrics) IncrementConsentReplacements() {
	m.ConsentReplacements.Inc()
}

func (m *Metrics) IncrementConsentReads() {
	m.ConsentReads.Inc()
}

func (m *Metrics) IncrementAuditEntriesAppended() {
	m.AuditEntriesAppended.Inc()
}

func (m *Metrics) IncrementAuditAppendFailures() {
	m.AuditAppendFailures.Inc()
}

// ObserveEndpointLatency records the latency for a given endpoint
func (m *Metrics) ObserveEndpointLatency(endpoint string, durationSeconds float64) {
	m.EndpointLatency.WithLabelValues(endpoint).Observe(durationSeconds)
}
