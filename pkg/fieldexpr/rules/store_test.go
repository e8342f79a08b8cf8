package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nick227/ssot-codegen-sub019/pkg/fieldexpr"
	"github.com/nick227/ssot-codegen-sub019/pkg/fieldexpr/rules"
)

// storeFactory creates a store instance for testing.
type storeFactory func(t *testing.T) rules.Store

// testRule builds a minimal valid rule for store tests.
func testRule(id, entity, field, kind string, priority int) *rules.Rule {
	return &rules.Rule{
		ID:       id,
		Entity:   entity,
		Field:    field,
		Kind:     kind,
		Priority: priority,
		Active:   true,
		Expr: fieldexpr.Op("concat",
			fieldexpr.Field("firstName"),
			fieldexpr.Literal(" "),
			fieldexpr.Field("lastName"),
		),
	}
}

// storeContractTest runs contract tests against any Store implementation.
func storeContractTest(t *testing.T, name string, factory storeFactory) {
	t.Run(name+"/Put_and_Get", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		rule := testRule("rule-1", "user", "fullName", rules.KindComputed, 0)
		require.NoError(t, store.Put(rule))

		got, err := store.Get("rule-1")
		require.NoError(t, err)
		assert.Equal(t, "user", got.Entity)
		assert.Equal(t, "fullName", got.Field)
		assert.Equal(t, rules.KindComputed, got.Kind)
		assert.True(t, got.Active)
		require.NotNil(t, got.Expr)
		assert.Equal(t, "concat", got.Expr.Op)
	})

	t.Run(name+"/Get_NotFound", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		_, err := store.Get("nonexistent")
		assert.ErrorIs(t, err, rules.ErrNotFound)
	})

	t.Run(name+"/Put_AssignsID", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		rule := testRule("", "user", "fullName", rules.KindComputed, 0)
		require.NoError(t, store.Put(rule))

		assert.NotEmpty(t, rule.ID)

		got, err := store.Get(rule.ID)
		require.NoError(t, err)
		assert.Equal(t, rule.ID, got.ID)
	})

	t.Run(name+"/Put_Overwrite", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		first := testRule("rule-1", "user", "fullName", rules.KindComputed, 0)
		require.NoError(t, store.Put(first))

		second := testRule("rule-1", "user", "displayName", rules.KindVisibility, 5)
		require.NoError(t, store.Put(second))

		got, err := store.Get("rule-1")
		require.NoError(t, err)
		assert.Equal(t, "displayName", got.Field)
		assert.Equal(t, rules.KindVisibility, got.Kind)
		assert.Equal(t, 5, got.Priority)
	})

	t.Run(name+"/ListByEntity_Empty", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		list, err := store.ListByEntity("nonexistent")
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run(name+"/ListByEntity_Ordering", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		// Insert out of order
		require.NoError(t, store.Put(testRule("r1", "order", "total", rules.KindComputed, 0)))
		require.NoError(t, store.Put(testRule("r2", "order", "discount", rules.KindComputed, 10)))
		require.NoError(t, store.Put(testRule("r3", "order", "status", rules.KindVisibility, 10)))
		require.NoError(t, store.Put(testRule("r4", "invoice", "total", rules.KindComputed, 100)))

		list, err := store.ListByEntity("order")
		require.NoError(t, err)
		require.Len(t, list, 3)

		// Priority descending, then field name ascending
		assert.Equal(t, "discount", list[0].Field)
		assert.Equal(t, "status", list[1].Field)
		assert.Equal(t, "total", list[2].Field)
	})

	t.Run(name+"/ListByEntity_SkipsInactive", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		active := testRule("r1", "user", "fullName", rules.KindComputed, 0)
		inactive := testRule("r2", "user", "nickname", rules.KindComputed, 0)
		inactive.Active = false

		require.NoError(t, store.Put(active))
		require.NoError(t, store.Put(inactive))

		list, err := store.ListByEntity("user")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "fullName", list[0].Field)
	})

	t.Run(name+"/Delete", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.Put(testRule("rule-1", "user", "fullName", rules.KindComputed, 0)))
		require.NoError(t, store.Delete("rule-1"))

		_, err := store.Get("rule-1")
		assert.ErrorIs(t, err, rules.ErrNotFound)
	})

	t.Run(name+"/Delete_Nonexistent", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		assert.NoError(t, store.Delete("nonexistent"))
	})

	t.Run(name+"/ClosedStore", func(t *testing.T) {
		store := factory(t)
		require.NoError(t, store.Close())

		err := store.Put(testRule("rule-1", "user", "fullName", rules.KindComputed, 0))
		assert.ErrorIs(t, err, rules.ErrStoreClosed)

		_, err = store.Get("rule-1")
		assert.ErrorIs(t, err, rules.ErrStoreClosed)

		_, err = store.ListByEntity("user")
		assert.ErrorIs(t, err, rules.ErrStoreClosed)

		err = store.Delete("rule-1")
		assert.ErrorIs(t, err, rules.ErrStoreClosed)
	})
}

func TestMemoryStore(t *testing.T) {
	storeContractTest(t, "memory", func(t *testing.T) rules.Store {
		return rules.NewMemoryStore()
	})
}

func TestSQLiteStore(t *testing.T) {
	storeContractTest(t, "sqlite", func(t *testing.T) rules.Store {
		store, err := rules.NewSQLiteStore(":memory:")
		require.NoError(t, err)
		return store
	})
}
