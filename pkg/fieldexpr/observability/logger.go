// Package observability provides structured logging, metrics, and
// distributed tracing for expression evaluation.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds evaluation context to a logger.
// Returns a new logger with eval_id and root node kind fields.
func EnrichLogger(logger *slog.Logger, evalID, rootKind string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("eval_id", evalID),
		slog.String("root_kind", rootKind),
	)
}

// LogEvalStart logs the start of an evaluation.
func LogEvalStart(logger *slog.Logger, evalID, rootKind string) {
	if logger == nil {
		return
	}
	logger.Debug("evaluation starting",
		slog.String("eval_id", evalID),
		slog.String("root_kind", rootKind),
	)
}

// LogEvalComplete logs a successful evaluation.
func LogEvalComplete(logger *slog.Logger, evalID string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("evaluation completed",
		slog.String("eval_id", evalID),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogEvalError logs evaluation failure.
func LogEvalError(logger *slog.Logger, evalID string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("evaluation failed",
		slog.String("eval_id", evalID),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
