// Package metrics provides the operation metrics recorded by service
// wrappers, backed by prometheus in production and a no-op in tests.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OperationMetrics is what service wrappers record per operation.
type OperationMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, module string)
	RecordOperationSuccess(ctx context.Context, operation, module string)
	RecordOperationFailure(ctx context.Context, operation, module string)
	RecordOperationDuration(ctx context.Context, operation, module string, duration time.Duration)
}

// PrometheusMetrics implements OperationMetrics on a prometheus registry.
type PrometheusMetrics struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

var _ OperationMetrics = (*PrometheusMetrics)(nil)

// NewPrometheusMetrics registers the operation metric vectors on the given
// registry. Call once per process; prometheus panics on double registration.
func NewPrometheusMetrics(registry prometheus.Registerer) *PrometheusMetrics {
	m := &PrometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tarok_operation_attempts_total",
			Help: "Number of service operation attempts.",
		}, []string{"operation", "module"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tarok_operation_successes_total",
			Help: "Number of service operations that completed successfully.",
		}, []string{"operation", "module"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tarok_operation_failures_total",
			Help: "Number of service operations that failed.",
		}, []string{"operation", "module"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tarok_operation_duration_seconds",
			Help:    "Service operation duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation", "module"}),
	}

	registry.MustRegister(m.attempts, m.successes, m.failures, m.durations)
	return m
}

func (m *PrometheusMetrics) RecordOperationAttempt(_ context.Context, operation, module string) {
	m.attempts.WithLabelValues(operation, module).Inc()
}

func (m *PrometheusMetrics) RecordOperationSuccess(_ context.Context, operation, module string) {
	m.successes.WithLabelValues(operation, module).Inc()
}

func (m *PrometheusMetrics) RecordOperationFailure(_ context.Context, operation, module string) {
	m.failures.WithLabelValues(operation, module).Inc()
}

func (m *PrometheusMetrics) RecordOperationDuration(_ context.Context, operation, module string, duration time.Duration) {
	m.durations.WithLabelValues(operation, module).Observe(duration.Seconds())
}

// NoOpMetrics discards everything. Used in unit tests.
type NoOpMetrics struct{}

var _ OperationMetrics = (*NoOpMetrics)(nil)

func (NoOpMetrics) RecordOperationAttempt(context.Context, string, string)                 {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string, string)                 {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string, string)                 {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {}
