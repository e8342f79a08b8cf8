package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestNoopMetrics_RecordEvaluation(t *testing.T) {
	m := NoopMetrics{}

	t.Run("does not panic with valid args", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordEvaluation(context.Background(), "operation", 100*time.Millisecond, nil)
		})
	})

	t.Run("does not panic with error", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordEvaluation(context.Background(), "operation", 100*time.Millisecond, errors.New("test"))
		})
	})

	t.Run("does not panic with nil context", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordEvaluation(nil, "operation", 0, nil)
		})
	})

	t.Run("does not panic with empty root kind", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordEvaluation(context.Background(), "", 0, nil)
		})
	})
}

func TestNoopMetrics_RecordDispatch(t *testing.T) {
	m := NoopMetrics{}

	t.Run("does not panic with valid args", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordDispatch(context.Background(), "add")
		})
	})

	t.Run("does not panic with nil context", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordDispatch(nil, "")
		})
	})
}

func TestNoopSpanManager_StartEvalSpan(t *testing.T) {
	sm := NoopSpanManager{}

	t.Run("returns same context", func(t *testing.T) {
		ctx := context.Background()
		newCtx, span := sm.StartEvalSpan(ctx, "operation", "eval-1")

		assert.Equal(t, ctx, newCtx, "Context should be unchanged")
		assert.NotNil(t, span, "Span should not be nil")
	})

	t.Run("span is valid noop span", func(t *testing.T) {
		ctx := context.Background()
		_, span := sm.StartEvalSpan(ctx, "operation", "eval-1")

		// Noop spans are not recording
		assert.False(t, span.IsRecording())
	})

	t.Run("does not panic with empty args", func(t *testing.T) {
		assert.NotPanics(t, func() {
			sm.StartEvalSpan(context.Background(), "", "")
		})
	})
}

func TestNoopSpanManager_EndSpanWithError(t *testing.T) {
	sm := NoopSpanManager{}

	t.Run("does not panic with nil span", func(t *testing.T) {
		assert.NotPanics(t, func() {
			sm.EndSpanWithError(nil, nil)
		})
	})

	t.Run("does not panic with nil error", func(t *testing.T) {
		_, span := sm.StartEvalSpan(context.Background(), "operation", "eval-1")
		assert.NotPanics(t, func() {
			sm.EndSpanWithError(span, nil)
		})
	})

	t.Run("does not panic with error", func(t *testing.T) {
		_, span := sm.StartEvalSpan(context.Background(), "operation", "eval-1")
		assert.NotPanics(t, func() {
			sm.EndSpanWithError(span, errors.New("test error"))
		})
	})
}

func TestNoopSpanManager_AddSpanEvent(t *testing.T) {
	sm := NoopSpanManager{}

	t.Run("does not panic with valid args", func(t *testing.T) {
		ctx := context.Background()
		assert.NotPanics(t, func() {
			sm.AddSpanEvent(ctx, "test_event", attribute.String("key", "value"))
		})
	})

	t.Run("does not panic with no attributes", func(t *testing.T) {
		ctx := context.Background()
		assert.NotPanics(t, func() {
			sm.AddSpanEvent(ctx, "test_event")
		})
	})

	t.Run("does not panic with nil context", func(t *testing.T) {
		assert.NotPanics(t, func() {
			sm.AddSpanEvent(nil, "test_event")
		})
	})
}

func TestNoopImplementations_NoSideEffects(t *testing.T) {
	// This test verifies that noop implementations can be used
	// in a realistic scenario without any side effects

	metrics := NoopMetrics{}
	spans := NoopSpanManager{}

	ctx := context.Background()

	// Simulate a batch of evaluations
	for i, rootKind := range []string{"literal", "operation", "condition"} {
		ctx, span := spans.StartEvalSpan(ctx, rootKind, "eval-1")

		start := time.Now()
		// Simulate work
		time.Sleep(1 * time.Millisecond)
		duration := time.Since(start)

		var err error
		if i == 1 {
			err = errors.New("simulated error")
		}

		metrics.RecordEvaluation(ctx, rootKind, duration, err)
		metrics.RecordDispatch(ctx, "add")

		spans.AddSpanEvent(ctx, "operation_dispatched", attribute.String("op", "add"))
		spans.EndSpanWithError(span, err)
	}

	// If we get here without panicking, the test passes
}
