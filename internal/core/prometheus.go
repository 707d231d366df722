package core

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PromMetricsRecorder exports service operation metrics through a dedicated
// Prometheus registry, for deployments scraped by an external collector.
type PromMetricsRecorder struct {
	registry *prometheus.Registry
	results  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewPromMetricsRecorder builds a recorder with its own registry.
func NewPromMetricsRecorder() *PromMetricsRecorder {
	rec := &PromMetricsRecorder{
		registry: prometheus.NewRegistry(),
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fleetcore",
			Subsystem: "service",
			Name:      "operations_total",
			Help:      "Service operations by outcome.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fleetcore",
			Subsystem: "service",
			Name:      "operation_duration_seconds",
			Help:      "Service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	rec.registry.MustRegister(rec.results, rec.duration)
	return rec
}

// Registry exposes the recorder's registry for promhttp handlers.
func (r *PromMetricsRecorder) Registry() *prometheus.Registry {
	return r.registry
}

// Observe records a service operation outcome.
func (r *PromMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	status := "error"
	if success {
		status = "success"
	}
	r.results.WithLabelValues(operation, status).Inc()
	r.duration.WithLabelValues(operation).Observe(duration.Seconds())
}
