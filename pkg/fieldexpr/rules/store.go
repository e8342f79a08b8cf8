package rules

import "errors"

// Store persists rules for hosts that keep them in a database rather than
// files. Implementations must be safe for concurrent use.
type Store interface {
	// Put stores a rule, assigning an ID if it has none.
	// Overwrites an existing rule with the same ID.
	Put(rule *Rule) error

	// Get retrieves a rule by ID.
	// Returns ErrNotFound if the rule doesn't exist.
	Get(id string) (*Rule, error)

	// ListByEntity returns all active rules for an entity, ordered by
	// priority (highest first), then field name.
	// Returns an empty slice (not an error) if the entity has no rules.
	ListByEntity(entity string) ([]*Rule, error)

	// Delete removes a rule.
	// Returns nil if the rule doesn't exist.
	Delete(id string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for rule stores.
var (
	// ErrNotFound indicates a rule doesn't exist.
	ErrNotFound = errors.New("rule not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("rule store closed")
)
