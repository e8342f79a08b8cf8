// Package rules binds stored expression trees to the entity fields they
// govern and provides document loading and persistence for them.
package rules

import (
	"errors"
	"fmt"

	"github.com/nick227/ssot-codegen-sub019/pkg/fieldexpr"
	"github.com/nick227/ssot-codegen-sub019/pkg/fieldexpr/registry"
)

// Rule kinds: what the host does with the evaluated value.
const (
	KindComputed   = "computed"   // derived field value
	KindVisibility = "visibility" // show or hide a UI element
	KindEnabled    = "enabled"    // enable or disable a UI element
	KindAccess     = "access"     // authorize field- or row-level access
)

// Rule binds one expression to an entity field for a purpose. Rules are
// plain data; the engine only ever reads them. YAML documents are decoded
// through the JSON codec, so only JSON tags appear here.
type Rule struct {
	ID       string                `json:"id,omitempty"`
	Entity   string                `json:"entity"`
	Field    string                `json:"field"`
	Kind     string                `json:"kind"`
	Priority int                   `json:"priority,omitempty"`
	Active   bool                  `json:"active"`
	Expr     *fieldexpr.Expression `json:"expression"`
}

// Sentinel errors for rule documents.
var (
	// ErrInvalidRule indicates a rule missing required fields.
	ErrInvalidRule = errors.New("invalid rule")
)

// validKind reports whether k names a known rule kind.
func validKind(k string) bool {
	switch k {
	case KindComputed, KindVisibility, KindEnabled, KindAccess:
		return true
	default:
		return false
	}
}

// Validate checks the rule's own fields and its expression tree against
// the given operation table.
func (r *Rule) Validate(ops *registry.Registry[string, fieldexpr.Operation]) error {
	if r.Entity == "" {
		return fmt.Errorf("%w: missing entity", ErrInvalidRule)
	}
	if r.Field == "" {
		return fmt.Errorf("%w: missing field (entity %s)", ErrInvalidRule, r.Entity)
	}
	if !validKind(r.Kind) {
		return fmt.Errorf("%w: unknown kind %q (entity %s, field %s)", ErrInvalidRule, r.Kind, r.Entity, r.Field)
	}
	if r.Expr == nil {
		return fmt.Errorf("%w: missing expression (entity %s, field %s)", ErrInvalidRule, r.Entity, r.Field)
	}
	if err := fieldexpr.Validate(r.Expr, ops); err != nil {
		return fmt.Errorf("rule %s.%s: %w", r.Entity, r.Field, err)
	}
	return nil
}
