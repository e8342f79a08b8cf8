package fieldexpr

import (
	"fmt"

	"github.com/nick227/ssot-codegen-sub019/pkg/fieldexpr/registry"
)

// Validate walks an expression tree and reports the first structural
// problem or unknown operation/check name against the given registry.
// Running it at document load time turns would-be evaluation failures
// into load-time errors.
func Validate(expr *Expression, ops *registry.Registry[string, Operation]) error {
	if expr == nil {
		return fmt.Errorf("%w: nil expression", ErrInvalidExpression)
	}

	switch expr.Type {
	case TypeLiteral:
		return nil

	case TypeField:
		if expr.Path == "" {
			return fmt.Errorf("%w: field node missing path", ErrInvalidExpression)
		}
		return nil

	case TypeOperation:
		if expr.Op == "" {
			return fmt.Errorf("%w: operation node missing op", ErrInvalidExpression)
		}
		if !ops.Has(expr.Op) {
			return fmt.Errorf("%w: %q", ErrUnknownOperation, expr.Op)
		}
		for _, arg := range expr.Args {
			if err := Validate(arg, ops); err != nil {
				return err
			}
		}
		return nil

	case TypeCondition:
		if !validConditionOp(expr.Op) {
			return fmt.Errorf("%w: invalid condition operator %q", ErrInvalidExpression, expr.Op)
		}
		if expr.Left == nil || expr.Right == nil {
			return fmt.Errorf("%w: condition node requires left and right", ErrInvalidExpression)
		}
		if err := Validate(expr.Left, ops); err != nil {
			return err
		}
		return Validate(expr.Right, ops)

	case TypePermission:
		if expr.Check == "" {
			return fmt.Errorf("%w: permission node missing check", ErrInvalidExpression)
		}
		if !ops.Has(expr.Check) {
			return fmt.Errorf("%w: %q", ErrUnknownPermissionCheck, expr.Check)
		}
		return nil

	default:
		return fmt.Errorf("%w: unknown node type %q", ErrInvalidExpression, expr.Type)
	}
}
