package ports

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/aretw0/functree/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractFixture(value int) domain.Fixture {
	tree := domain.NewBinary(domain.OpAdd, domain.NewConst(value), domain.NewVariable("x"))
	statement := fmt.Sprintf(`new FunctionTree.Add(new FunctionTree.Const(%d), new FunctionTree.Variable("x"));`, value)
	return domain.NewFixture("general", uint64(value), tree, statement)
}

// RunCorpusStoreContract runs a suite of tests to verify that a CorpusStore implementation
// adheres to the defined interface contract. The store must start empty.
func RunCorpusStoreContract(t *testing.T, store CorpusStore) {
	ctx := context.Background()

	t.Run("Save and Load", func(t *testing.T) {
		fx := contractFixture(1)

		created, err := store.Save(ctx, fx)
		require.NoError(t, err, "Save should not return error")
		assert.True(t, created)

		loaded, err := store.Load(ctx, fx.ID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, fx.ID, loaded.ID)
		assert.Equal(t, fx.Statement, loaded.Statement)
		assert.Equal(t, fx.Preset, loaded.Preset)
		assert.Equal(t, fx.Stats, loaded.Stats)
		require.NotNil(t, loaded.Tree)
		assert.True(t, fx.Tree.Equal(loaded.Tree), "tree survives the round trip")
	})

	t.Run("Duplicate Keeps First", func(t *testing.T) {
		first := contractFixture(2)
		_, err := store.Save(ctx, first)
		require.NoError(t, err)

		again := first
		again.Preset = "binaryOnly"
		created, err := store.Save(ctx, again)
		require.NoError(t, err)
		assert.False(t, created, "same statement means same fixture")

		loaded, err := store.Load(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "general", loaded.Preset)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "0000000000000000")
		assert.ErrorIs(t, err, domain.ErrFixtureNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		fx := contractFixture(3)
		_, err := store.Save(ctx, fx)
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, fx.ID), "Delete should not return error")

		_, err = store.Load(ctx, fx.ID)
		assert.ErrorIs(t, err, domain.ErrFixtureNotFound, "Load after Delete should return ErrFixtureNotFound")
		assert.NoError(t, store.Delete(ctx, fx.ID), "deleting twice is fine")

		created, err := store.Save(ctx, fx)
		require.NoError(t, err)
		assert.True(t, created, "a deleted fixture can be stored again")
	})

	t.Run("List", func(t *testing.T) {
		a, b := contractFixture(4), contractFixture(5)
		_, _ = store.Save(ctx, a)
		_, _ = store.Save(ctx, b)

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, a.ID)
		assert.Contains(t, ids, b.ID)

		seen := make(map[string]bool)
		for _, id := range ids {
			assert.False(t, seen[id], "List returns each ID once")
			seen[id] = true
		}
	})

	t.Run("Concurrent Saves Create Once", func(t *testing.T) {
		fx := contractFixture(6)
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			created int
		)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ok, err := store.Save(ctx, fx)
				assert.NoError(t, err)
				if ok {
					mu.Lock()
					created++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, created)
	})
}
