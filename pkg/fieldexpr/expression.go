package fieldexpr

import (
	"encoding/json"
	"fmt"
)

// Node kinds for Expression.Type.
const (
	TypeLiteral    = "literal"
	TypeField      = "field"
	TypeOperation  = "operation"
	TypeCondition  = "condition"
	TypePermission = "permission"
)

// Condition operators.
const (
	CondEq  = "eq"
	CondNe  = "ne"
	CondGt  = "gt"
	CondGte = "gte"
	CondLt  = "lt"
	CondLte = "lte"
	CondIn  = "in"
)

// Expression is one node of a JSON-encoded expression tree. Exactly one
// shape is populated depending on Type:
//
//	literal:    Value
//	field:      Path
//	operation:  Op, Args (sub-expressions, evaluated before dispatch)
//	condition:  Op (eq|ne|gt|gte|lt|lte|in), Left, Right
//	permission: Check, RawArgs (plain values, not sub-expressions)
//
// Expressions are immutable once constructed and contain no function
// values, which keeps them serializable and safe to store as
// configuration.
type Expression struct {
	Type string

	// Literal
	Value any

	// Field
	Path string

	// Operation / Condition
	Op   string
	Args []*Expression

	// Condition
	Left  *Expression
	Right *Expression

	// Permission
	Check   string
	RawArgs []any
}

// Convenience constructors, mainly for building trees in code and tests.

// Literal returns a constant expression.
func Literal(v any) *Expression {
	return &Expression{Type: TypeLiteral, Value: v}
}

// Field returns a field-access expression for a dot-separated path.
func Field(path string) *Expression {
	return &Expression{Type: TypeField, Path: path}
}

// Op returns an operation expression applying the named registry function.
func Op(name string, args ...*Expression) *Expression {
	return &Expression{Type: TypeOperation, Op: name, Args: args}
}

// Cond returns a binary comparison expression.
func Cond(op string, left, right *Expression) *Expression {
	return &Expression{Type: TypeCondition, Op: op, Left: left, Right: right}
}

// Permission returns a permission-check expression with raw value
// arguments. Prefer the operation form (Op) for new trees; this node is
// kept for documents authored against the older encoding.
func Permission(check string, args ...any) *Expression {
	return &Expression{Type: TypePermission, Check: check, RawArgs: args}
}

// exprJSON is the wire shape. Value uses a RawMessage so that literal
// false, 0, and null survive the round trip.
type exprJSON struct {
	Type  string           `json:"type"`
	Value *json.RawMessage `json:"value,omitempty"`
	Path  string           `json:"path,omitempty"`
	Op    string           `json:"op,omitempty"`
	Args  []*Expression    `json:"args,omitempty"`
	Left  *Expression      `json:"left,omitempty"`
	Right *Expression      `json:"right,omitempty"`
}

// permJSON carries the permission node's raw args, which share the "args"
// key with operation sub-expressions on the wire.
type permJSON struct {
	Type  string `json:"type"`
	Check string `json:"check"`
	Args  []any  `json:"args,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (e *Expression) MarshalJSON() ([]byte, error) {
	switch e.Type {
	case TypeLiteral:
		raw, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		rm := json.RawMessage(raw)
		return json.Marshal(exprJSON{Type: e.Type, Value: &rm})
	case TypeField:
		return json.Marshal(exprJSON{Type: e.Type, Path: e.Path})
	case TypeOperation:
		return json.Marshal(exprJSON{Type: e.Type, Op: e.Op, Args: e.Args})
	case TypeCondition:
		return json.Marshal(exprJSON{Type: e.Type, Op: e.Op, Left: e.Left, Right: e.Right})
	case TypePermission:
		return json.Marshal(permJSON{Type: e.Type, Check: e.Check, Args: e.RawArgs})
	default:
		return nil, fmt.Errorf("%w: unknown node type %q", ErrInvalidExpression, e.Type)
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Expression) UnmarshalJSON(data []byte) error {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	switch head.Type {
	case TypeLiteral:
		var node struct {
			Value any `json:"value"`
		}
		if err := json.Unmarshal(data, &node); err != nil {
			return err
		}
		*e = Expression{Type: TypeLiteral, Value: node.Value}
	case TypeField:
		var node struct {
			Path string `json:"path"`
		}
		if err := json.Unmarshal(data, &node); err != nil {
			return err
		}
		if node.Path == "" {
			return fmt.Errorf("%w: field node missing path", ErrInvalidExpression)
		}
		*e = Expression{Type: TypeField, Path: node.Path}
	case TypeOperation:
		var node struct {
			Op   string        `json:"op"`
			Args []*Expression `json:"args"`
		}
		if err := json.Unmarshal(data, &node); err != nil {
			return err
		}
		if node.Op == "" {
			return fmt.Errorf("%w: operation node missing op", ErrInvalidExpression)
		}
		*e = Expression{Type: TypeOperation, Op: node.Op, Args: node.Args}
	case TypeCondition:
		var node struct {
			Op    string      `json:"op"`
			Left  *Expression `json:"left"`
			Right *Expression `json:"right"`
		}
		if err := json.Unmarshal(data, &node); err != nil {
			return err
		}
		if !validConditionOp(node.Op) {
			return fmt.Errorf("%w: invalid condition operator %q", ErrInvalidExpression, node.Op)
		}
		if node.Left == nil || node.Right == nil {
			return fmt.Errorf("%w: condition node requires left and right", ErrInvalidExpression)
		}
		*e = Expression{Type: TypeCondition, Op: node.Op, Left: node.Left, Right: node.Right}
	case TypePermission:
		var node struct {
			Check string `json:"check"`
			Args  []any  `json:"args"`
		}
		if err := json.Unmarshal(data, &node); err != nil {
			return err
		}
		if node.Check == "" {
			return fmt.Errorf("%w: permission node missing check", ErrInvalidExpression)
		}
		*e = Expression{Type: TypePermission, Check: node.Check, RawArgs: node.Args}
	case "":
		return fmt.Errorf("%w: node missing type", ErrInvalidExpression)
	default:
		return fmt.Errorf("%w: unknown node type %q", ErrInvalidExpression, head.Type)
	}
	return nil
}

// Parse decodes a single expression tree from JSON.
func Parse(data []byte) (*Expression, error) {
	var e Expression
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func validConditionOp(op string) bool {
	switch op {
	case CondEq, CondNe, CondGt, CondGte, CondLt, CondLte, CondIn:
		return true
	default:
		return false
	}
}
