// Package metrics exposes the process-wide Prometheus collectors, in the
// same promauto style as the teacher's internal/metrics/metrics.go.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dcodex_executions_total",
			Help: "Total number of sandboxed code executions",
		},
		[]string{"language", "status"},
	)

	ExecutionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dcodex_execution_duration_ms",
			Help:    "Execution duration in milliseconds",
			Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000},
		},
		[]string{"language", "phase"}, // phase: "compile", "run"
	)

	ActiveSandboxes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dcodex_active_sandboxes",
			Help: "Number of sandboxed jobs currently admitted and running",
		},
	)

	AdmissionRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dcodex_admission_rejected_total",
			Help: "Total number of requests rejected by the admission gate",
		},
	)

	RateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dcodex_rate_limit_hits_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	StreamChunksSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dcodex_stream_chunks_sent_total",
			Help: "Total number of ExecutionLog chunks sent to clients",
		},
		[]string{"language"},
	)
)
