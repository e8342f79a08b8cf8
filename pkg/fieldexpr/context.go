package fieldexpr

import "time"

// User is the authenticated identity an expression is evaluated for.
// Identity and roles live only in the context, never in the tree.
type User struct {
	ID          string
	Roles       []string
	Permissions []string
}

// EvalContext bundles everything an expression may read: the current
// record's data, the authenticated user, route parameters, and global
// application state. It is constructed per evaluation by the host and is
// never mutated by the engine.
//
// Now is the clock date operations read from; leave nil for time.Now.
// Supplying a fixed clock keeps evaluation fully deterministic, which the
// tests rely on.
type EvalContext struct {
	Data    map[string]any
	User    *User
	Params  map[string]string
	Globals map[string]any

	Now func() time.Time
}

// now returns the context clock, falling back to the wall clock.
func (c *EvalContext) now() time.Time {
	if c != nil && c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// HasRole reports whether the context user carries the given role.
func (c *EvalContext) HasRole(role string) bool {
	if c == nil || c.User == nil {
		return false
	}
	for _, r := range c.User.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasPermission reports whether the context user carries the given
// permission string.
func (c *EvalContext) HasPermission(perm string) bool {
	if c == nil || c.User == nil {
		return false
	}
	for _, p := range c.User.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// Authenticated reports whether a user identity is present.
func (c *EvalContext) Authenticated() bool {
	return c != nil && c.User != nil && c.User.ID != ""
}
