package rules

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory rule store for testing and for hosts that
// load rules from files at startup. Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	byID   map[string]*Rule
	closed bool
}

// NewMemoryStore creates a new in-memory rule store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID: make(map[string]*Rule),
	}
}

// Put implements Store.
func (m *MemoryStore) Put(rule *Rule) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}

	// Store a copy so later caller mutation can't leak in
	stored := *rule
	m.byID[rule.ID] = &stored
	return nil
}

// Get implements Store.
func (m *MemoryStore) Get(id string) (*Rule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	r, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	result := *r
	return &result, nil
}

// ListByEntity implements Store.
func (m *MemoryStore) ListByEntity(entity string) ([]*Rule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	out := []*Rule{}
	for _, r := range m.byID {
		if r.Entity == entity && r.Active {
			result := *r
			out = append(out, &result)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].Field < out[j].Field
	})

	return out, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.byID, id)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.byID = nil
	return nil
}

// Len returns the number of stored rules. Useful for testing.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID)
}
