package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
)

func TestBlobStore(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")
	store, err := NewBlobStore(dir)
	require.NoError(t, err)
	assert.DirExists(t, dir)
	assert.Equal(t, dir, store.Dir())

	_, err = store.Get(ctx, "qda-state")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.Put(ctx, "qda-state", []byte(`{"a":1}`)))
	require.NoError(t, store.Put(ctx, "qda-state", []byte(`{"b":2}`)))
	require.NoError(t, store.Put(ctx, "other", []byte("x")))

	got, err := store.Get(ctx, "qda-state")
	require.NoError(t, err)
	assert.Equal(t, `{"b":2}`, string(got))

	info, err := os.Stat(filepath.Join(dir, "qda-state.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0600))
	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"other", "qda-state"}, keys)

	require.NoError(t, store.Delete(ctx, "other"))
	require.NoError(t, store.Delete(ctx, "other"))
	keys, err = store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"qda-state"}, keys)
}

func TestBlobStore_InvalidKeys(t *testing.T) {
	ctx := context.Background()
	store, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../escape", `a\b`, ".hidden"} {
		t.Run(key, func(t *testing.T) {
			assert.ErrorIs(t, store.Put(ctx, key, nil), domain.ErrInvalidInput)
			_, err := store.Get(ctx, key)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestBlobStore_CancelledContext(t *testing.T) {
	store, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Put(ctx, "qda-state", []byte("{}")), context.Canceled)
}
