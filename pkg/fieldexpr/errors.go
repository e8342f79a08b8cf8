package fieldexpr

import (
	"errors"
	"fmt"
)

// Sentinel errors for evaluation.
var (
	// ErrUnknownOperation indicates an operation name absent from the registry.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrUnknownPermissionCheck indicates a permission check name absent from the registry.
	ErrUnknownPermissionCheck = errors.New("unknown permission check")

	// ErrDivisionByZero is raised by divide and mod when the divisor is exactly zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrInvalidArgument indicates an operation received the wrong number
	// or an unusable kind of argument.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Sentinel errors for expression construction and validation.
var (
	// ErrInvalidExpression indicates a malformed expression node.
	ErrInvalidExpression = errors.New("invalid expression")
)

// EvalError wraps an error raised while evaluating a single node.
// It carries the operation or check name for diagnostics.
type EvalError struct {
	// Op is the operation, condition, or permission-check name that failed.
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("evaluate %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("evaluate: %v", e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *EvalError) Unwrap() error {
	return e.Err
}

// evalErr wraps err in an EvalError unless it already is one.
func evalErr(op string, err error) error {
	var ee *EvalError
	if errors.As(err, &ee) {
		return err
	}
	return &EvalError{Op: op, Err: err}
}
