package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Registry holds the admin-core Prometheus collectors.
	Registry = prometheus.NewRegistry()

	apiRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marine_axis",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of admin API requests issued.",
		},
		[]string{"resource", "operation", "outcome"},
	)

	apiDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "marine_axis",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Duration of admin API requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"resource", "operation"},
	)

	gateDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marine_axis",
			Subsystem: "access",
			Name:      "gate_decisions_total",
			Help:      "Total number of access gate evaluations.",
		},
		[]string{"gate", "outcome"},
	)
)

func init() {
	Registry.MustRegister(apiRequests, apiDuration, gateDecisions)
}

// ObserveRequest records one admin API request.
func ObserveRequest(resource, operation, outcome string, d time.Duration) {
	apiRequests.WithLabelValues(resource, operation, outcome).Inc()
	apiDuration.WithLabelValues(resource, operation).Observe(d.Seconds())
}

// ObserveGateDecision records one access gate evaluation.
func ObserveGateDecision(gate, outcome string) {
	gateDecisions.WithLabelValues(gate, outcome).Inc()
}
