package fieldexpr

import (
	"fmt"

	"github.com/nick227/ssot-codegen-sub019/pkg/fieldexpr/registry"
)

// Operation is a registered function the evaluator dispatches to by name.
// The evaluation context is always passed as the final parameter;
// operations that do not need it ignore it. Operations must be pure: no
// I/O, no mutation of the context, nothing observed outside the explicit
// parameters.
type Operation func(args []any, ctx *EvalContext) (any, error)

// Builtins returns a fresh registry populated with the seven builtin
// operation groups: math, string, date, logical, comparison, array, and
// permission.
func Builtins() *registry.Registry[string, Operation] {
	r := registry.New[string, Operation]()
	r.RegisterMany(mathOps())
	r.RegisterMany(stringOps())
	r.RegisterMany(dateOps())
	r.RegisterMany(logicalOps())
	r.RegisterMany(comparisonOps())
	r.RegisterMany(arrayOps())
	r.RegisterMany(permissionOps())
	return r
}

// exactArgs errors unless exactly n arguments were supplied.
func exactArgs(op string, args []any, n int) error {
	if len(args) != n {
		return fmt.Errorf("%w: %s expects %d arguments, got %d", ErrInvalidArgument, op, n, len(args))
	}
	return nil
}

// minArgs errors unless at least n arguments were supplied.
func minArgs(op string, args []any, n int) error {
	if len(args) < n {
		return fmt.Errorf("%w: %s expects at least %d arguments, got %d", ErrInvalidArgument, op, n, len(args))
	}
	return nil
}

// rangeArgs errors unless between lo and hi arguments were supplied.
func rangeArgs(op string, args []any, lo, hi int) error {
	if len(args) < lo || len(args) > hi {
		return fmt.Errorf("%w: %s expects %d to %d arguments, got %d", ErrInvalidArgument, op, lo, hi, len(args))
	}
	return nil
}
