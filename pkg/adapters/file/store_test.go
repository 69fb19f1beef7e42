package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/functree/pkg/adapters/file"
	"github.com/aretw0/functree/pkg/domain"
	"github.com/aretw0/functree/pkg/ports"
	"github.com/aretw0/functree/pkg/serializer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Store implements CorpusStore
var _ ports.CorpusStore = (*file.Store)(nil)

func TestStore_Contract(t *testing.T) {
	ports.RunCorpusStoreContract(t, file.NewStore(t.TempDir()))
}

func TestStore_Layout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "fixtures")
	store := file.NewStore(dir)
	ctx := context.Background()

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids, "missing directory lists nothing")

	tree := domain.NewUnary(domain.OpTanh, domain.NewVariable("z"))
	fx := domain.NewFixture("general", 5, tree, serializer.Statement(tree))
	created, err := store.Save(ctx, fx)
	require.NoError(t, err)
	assert.True(t, created)

	data, err := os.ReadFile(filepath.Join(dir, fx.ID+".json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"statement"`)
	assert.Contains(t, string(data), `"tree"`)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")

	// Files that are not fixtures are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644))
	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{fx.ID}, ids)
}

func TestStore_InvalidIDs(t *testing.T) {
	store := file.NewStore(t.TempDir())
	ctx := context.Background()

	for _, id := range []string{"", "../escape", "a/b", ".hidden"} {
		_, err := store.Load(ctx, id)
		assert.Error(t, err, id)
		assert.NotErrorIs(t, err, domain.ErrFixtureNotFound, id)
		assert.Error(t, store.Delete(ctx, id), id)
	}
}

func TestStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deadbeefdeadbeef.json"), []byte("{"), 0o644))

	_, err := file.NewStore(dir).Load(context.Background(), "deadbeefdeadbeef")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrFixtureNotFound)
}

func TestNewStore_Default(t *testing.T) {
	assert.Equal(t, file.DefaultDir, file.NewStore("").BasePath)
}
