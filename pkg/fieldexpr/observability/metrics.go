package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records evaluation metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordEvaluation records one full expression evaluation with its
	// root node kind, duration, and error status.
	RecordEvaluation(ctx context.Context, rootKind string, duration time.Duration, err error)

	// RecordDispatch records one operation dispatch by name.
	RecordDispatch(ctx context.Context, op string)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	evaluations metric.Int64Counter
	evalLatency metric.Float64Histogram
	evalErrors  metric.Int64Counter
	dispatches  metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("fieldexpr")

	evaluations, err := meter.Int64Counter("fieldexpr.evaluations",
		metric.WithDescription("Number of expression evaluations"),
	)
	if err != nil {
		return nil, err
	}

	evalLatency, err := meter.Float64Histogram("fieldexpr.evaluation.latency_ms",
		metric.WithDescription("Expression evaluation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	evalErrors, err := meter.Int64Counter("fieldexpr.evaluation.errors",
		metric.WithDescription("Number of failed expression evaluations"),
	)
	if err != nil {
		return nil, err
	}

	dispatches, err := meter.Int64Counter("fieldexpr.operation.dispatches",
		metric.WithDescription("Number of operation dispatches by name"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		evaluations: evaluations,
		evalLatency: evalLatency,
		evalErrors:  evalErrors,
		dispatches:  dispatches,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordEvaluation records one expression evaluation.
func (m *otelMetrics) RecordEvaluation(ctx context.Context, rootKind string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("root_kind", rootKind),
	}

	m.evaluations.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.evalLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.evalErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordDispatch records one operation dispatch.
func (m *otelMetrics) RecordDispatch(ctx context.Context, op string) {
	m.dispatches.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
	))
}
