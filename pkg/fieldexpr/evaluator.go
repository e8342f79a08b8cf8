package fieldexpr

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/nick227/ssot-codegen-sub019/pkg/fieldexpr/observability"
	"github.com/nick227/ssot-codegen-sub019/pkg/fieldexpr/registry"
)

// Evaluator walks expression trees and produces values. The operation
// table is built once at construction and only changes through
// RegisterOperation, so a single Evaluator is safe for arbitrarily many
// concurrent Evaluate calls as long as each call's context is not mutated
// by its owner mid-flight.
type Evaluator struct {
	ops     *registry.Registry[string, Operation]
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithOperation registers a host-specific operation. Registering a builtin
// name shadows the builtin for this evaluator only.
func WithOperation(name string, fn Operation) Option {
	return func(e *Evaluator) {
		e.ops.Register(name, fn)
	}
}

// WithRegistry replaces the whole operation table. The registry is used
// as-is, not copied; hosts that share one across evaluators own its
// lifecycle.
func WithRegistry(r *registry.Registry[string, Operation]) Option {
	return func(e *Evaluator) {
		e.ops = r
	}
}

// WithLogger attaches a structured logger. Evaluations log at debug on
// success and at error level on failure; nil disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// WithMetrics attaches a metrics recorder for evaluation counts, latency,
// and per-operation dispatches.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(e *Evaluator) {
		e.metrics = m
	}
}

// WithTracing attaches a span manager; EvaluateContext opens one span per
// evaluation.
func WithTracing(s observability.SpanManager) Option {
	return func(e *Evaluator) {
		e.spans = s
	}
}

// New creates an Evaluator with the builtin operation groups plus the
// given options.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{ops: Builtins()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RegisterOperation adds (or replaces) an operation at runtime. This is
// the extension hook for host applications; it never touches the builtin
// tables of other evaluators.
func (e *Evaluator) RegisterOperation(name string, fn Operation) {
	e.ops.Register(name, fn)
}

// Operations exposes the evaluator's operation table, mainly for
// load-time validation.
func (e *Evaluator) Operations() *registry.Registry[string, Operation] {
	return e.ops
}

// Evaluate evaluates an expression tree against a context and returns the
// resulting value. The whole call either fully succeeds or fully fails;
// there is no partial-result state and no retry.
func (e *Evaluator) Evaluate(expr *Expression, ec *EvalContext) (any, error) {
	return e.EvaluateContext(context.Background(), expr, ec)
}

// EvaluateContext is Evaluate with a context.Context for tracing and
// metrics. Evaluation itself has no suspension points; the context is
// only threaded into the observability hooks.
func (e *Evaluator) EvaluateContext(ctx context.Context, expr *Expression, ec *EvalContext) (any, error) {
	if expr == nil {
		return nil, evalErr("", fmt.Errorf("%w: nil expression", ErrInvalidExpression))
	}

	if e.logger == nil && e.metrics == nil && e.spans == nil {
		return e.eval(ctx, expr, ec)
	}
	return e.evalInstrumented(ctx, expr, ec)
}

// evalInstrumented wraps one evaluation with logging, metrics, and a span.
func (e *Evaluator) evalInstrumented(ctx context.Context, expr *Expression, ec *EvalContext) (any, error) {
	evalID := uuid.NewString()
	start := time.Now()

	var span trace.Span
	if e.spans != nil {
		ctx, span = e.spans.StartEvalSpan(ctx, expr.Type, evalID)
	}

	observability.LogEvalStart(e.logger, evalID, expr.Type)
	val, err := e.eval(ctx, expr, ec)
	elapsed := time.Since(start)

	if e.metrics != nil {
		e.metrics.RecordEvaluation(ctx, expr.Type, elapsed, err)
	}
	if e.spans != nil {
		e.spans.EndSpanWithError(span, err)
	}
	if err != nil {
		observability.LogEvalError(e.logger, evalID, err, float64(elapsed.Milliseconds()))
		return nil, err
	}
	observability.LogEvalComplete(e.logger, evalID, float64(elapsed.Milliseconds()))
	return val, nil
}

// eval dispatches one node by kind.
func (e *Evaluator) eval(ctx context.Context, expr *Expression, ec *EvalContext) (any, error) {
	switch expr.Type {
	case TypeLiteral:
		return expr.Value, nil

	case TypeField:
		if ec == nil {
			return Undefined, nil
		}
		return ResolveField(ec.Data, expr.Path), nil

	case TypeOperation:
		return e.evalOperation(ctx, expr, ec)

	case TypeCondition:
		return e.evalCondition(ctx, expr, ec)

	case TypePermission:
		fn, ok := e.ops.Get(expr.Check)
		if !ok {
			return nil, evalErr(expr.Check, ErrUnknownPermissionCheck)
		}
		e.recordDispatch(ctx, expr.Check)
		val, err := fn(expr.RawArgs, ec)
		if err != nil {
			return nil, evalErr(expr.Check, err)
		}
		return val, nil

	default:
		return nil, evalErr("", fmt.Errorf("%w: unknown node type %q", ErrInvalidExpression, expr.Type))
	}
}

// evalOperation evaluates argument sub-expressions left to right and
// dispatches into the registry. and, or, and if short-circuit: untaken
// branches are never evaluated, so a divide-by-zero in a dead branch
// cannot fail the call.
func (e *Evaluator) evalOperation(ctx context.Context, expr *Expression, ec *EvalContext) (any, error) {
	switch expr.Op {
	case "and":
		for _, arg := range expr.Args {
			v, err := e.eval(ctx, arg, ec)
			if err != nil {
				return nil, evalErr(expr.Op, err)
			}
			if !IsTruthy(v) {
				return false, nil
			}
		}
		return true, nil

	case "or":
		for _, arg := range expr.Args {
			v, err := e.eval(ctx, arg, ec)
			if err != nil {
				return nil, evalErr(expr.Op, err)
			}
			if IsTruthy(v) {
				return true, nil
			}
		}
		return false, nil

	case "if":
		if len(expr.Args) < 2 || len(expr.Args) > 3 {
			return nil, evalErr(expr.Op, fmt.Errorf("%w: if expects 2 to 3 arguments, got %d", ErrInvalidArgument, len(expr.Args)))
		}
		cond, err := e.eval(ctx, expr.Args[0], ec)
		if err != nil {
			return nil, evalErr(expr.Op, err)
		}
		if IsTruthy(cond) {
			return e.eval(ctx, expr.Args[1], ec)
		}
		if len(expr.Args) == 3 {
			return e.eval(ctx, expr.Args[2], ec)
		}
		return nil, nil
	}

	fn, ok := e.ops.Get(expr.Op)
	if !ok {
		return nil, evalErr(expr.Op, ErrUnknownOperation)
	}

	args := make([]any, len(expr.Args))
	for i, arg := range expr.Args {
		v, err := e.eval(ctx, arg, ec)
		if err != nil {
			return nil, evalErr(expr.Op, err)
		}
		args[i] = v
	}

	e.recordDispatch(ctx, expr.Op)
	val, err := fn(args, ec)
	if err != nil {
		return nil, evalErr(expr.Op, err)
	}
	return val, nil
}

// evalCondition evaluates both operands and applies the named comparison.
func (e *Evaluator) evalCondition(ctx context.Context, expr *Expression, ec *EvalContext) (any, error) {
	if expr.Left == nil || expr.Right == nil {
		return nil, evalErr(expr.Op, fmt.Errorf("%w: condition requires left and right", ErrInvalidExpression))
	}
	left, err := e.eval(ctx, expr.Left, ec)
	if err != nil {
		return nil, evalErr(expr.Op, err)
	}
	right, err := e.eval(ctx, expr.Right, ec)
	if err != nil {
		return nil, evalErr(expr.Op, err)
	}

	fn, ok := e.ops.Get(expr.Op)
	if !ok {
		return nil, evalErr(expr.Op, ErrUnknownOperation)
	}
	e.recordDispatch(ctx, expr.Op)
	val, err := fn([]any{left, right}, ec)
	if err != nil {
		return nil, evalErr(expr.Op, err)
	}
	return val, nil
}

func (e *Evaluator) recordDispatch(ctx context.Context, op string) {
	if e.metrics != nil {
		e.metrics.RecordDispatch(ctx, op)
	}
}

var (
	defaultEvaluator     *Evaluator
	defaultEvaluatorOnce sync.Once
)

// Evaluate is a convenience function that evaluates an expression using a
// shared default evaluator with only the builtin operations.
func Evaluate(expr *Expression, ec *EvalContext) (any, error) {
	defaultEvaluatorOnce.Do(func() {
		defaultEvaluator = New()
	})
	return defaultEvaluator.Evaluate(expr, ec)
}
