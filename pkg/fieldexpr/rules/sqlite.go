package rules

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists rules to SQLite.
// It is suitable for single-process production use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a new SQLite rule store.
// The path should be a file path (e.g., "./rules.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS rules (
			id TEXT PRIMARY KEY,
			entity TEXT NOT NULL,
			field TEXT NOT NULL,
			kind TEXT NOT NULL,
			priority INTEGER NOT NULL DEFAULT 0,
			active INTEGER NOT NULL DEFAULT 1,
			expression TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_rules_entity
		ON rules(entity)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Put implements Store.
func (s *SQLiteStore) Put(rule *Rule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}

	exprJSON, err := json.Marshal(rule.Expr)
	if err != nil {
		return fmt.Errorf("serialize expression: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO rules (id, entity, field, kind, priority, active, expression)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			entity = excluded.entity,
			field = excluded.field,
			kind = excluded.kind,
			priority = excluded.priority,
			active = excluded.active,
			expression = excluded.expression
	`, rule.ID, rule.Entity, rule.Field, rule.Kind, rule.Priority, boolToInt(rule.Active), string(exprJSON))

	if err != nil {
		return fmt.Errorf("save rule: %w", err)
	}
	return nil
}

// Get implements Store.
func (s *SQLiteStore) Get(id string) (*Rule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	row := s.db.QueryRow(`
		SELECT id, entity, field, kind, priority, active, expression
		FROM rules WHERE id = ?
	`, id)

	rule, err := scanRule(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load rule: %w", err)
	}
	return rule, nil
}

// ListByEntity implements Store.
func (s *SQLiteStore) ListByEntity(entity string) ([]*Rule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT id, entity, field, kind, priority, active, expression
		FROM rules
		WHERE entity = ? AND active = 1
		ORDER BY priority DESC, field
	`, entity)
	if err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}
	defer rows.Close()

	out := []*Rule{}
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		out = append(out, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rules: %w", err)
	}

	return out, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.Exec(`DELETE FROM rules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete rule: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRule(row scanner) (*Rule, error) {
	var rule Rule
	var active int
	var exprJSON string
	if err := row.Scan(&rule.ID, &rule.Entity, &rule.Field, &rule.Kind, &rule.Priority, &active, &exprJSON); err != nil {
		return nil, err
	}
	rule.Active = active != 0
	if err := json.Unmarshal([]byte(exprJSON), &rule.Expr); err != nil {
		return nil, fmt.Errorf("deserialize expression: %w", err)
	}
	return &rule, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
