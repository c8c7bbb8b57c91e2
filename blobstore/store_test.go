package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	vfs "github.com/hupe1980/elbow/internal/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStoreLifecycle(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	data := []byte("sample\tg1\nA\t1\n")
	require.NoError(t, store.Put(ctx, "runs/a.json", data))
	require.NoError(t, store.Put(ctx, "runs/b.json", []byte("{}")))
	require.NoError(t, store.Put(ctx, "matrix.tsv", data))

	blob, err := store.Open(ctx, "matrix.tsv")
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), blob.Size())
	got, err := io.ReadAll(blob)
	require.NoError(t, err)
	require.NoError(t, blob.Close())
	assert.Equal(t, data, got)

	names, err := store.List(ctx, "runs/")
	require.NoError(t, err)
	assert.Equal(t, []string{"runs/a.json", "runs/b.json"}, names)

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// Overwrite.
	require.NoError(t, store.Put(ctx, "runs/a.json", []byte("[]")))
	blob, err = store.Open(ctx, "runs/a.json")
	require.NoError(t, err)
	got, err = io.ReadAll(blob)
	require.NoError(t, err)
	require.NoError(t, blob.Close())
	assert.Equal(t, "[]", string(got))

	require.NoError(t, store.Delete(ctx, "runs/a.json"))
	require.NoError(t, store.Delete(ctx, "runs/a.json"))
	_, err = store.Open(ctx, "runs/a.json")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_PutFailureLeavesNothing(t *testing.T) {
	ctx := context.Background()

	faults := []vfs.Fault{
		{FailAfterBytes: 2},
		{FailAfterBytes: -1, FailOnSync: true},
		{FailAfterBytes: -1, FailOnClose: true},
		{FailAfterBytes: -1, FailOnRename: true},
	}

	for _, fault := range faults {
		dir := t.TempDir()
		ffs := vfs.NewFaultyFS(nil)
		ffs.AddRule(".tmp-", fault)
		store := NewLocalStore(dir, WithFileSystem(ffs))

		err := store.Put(ctx, "reports/a.elbr", []byte("payload"))
		require.ErrorIs(t, err, vfs.ErrInjected)

		_, err = store.Open(ctx, "reports/a.elbr")
		assert.ErrorIs(t, err, ErrNotFound)

		entries, err := os.ReadDir(filepath.Join(dir, "reports"))
		require.NoError(t, err)
		assert.Empty(t, entries)
	}
}

func TestLocalStore(t *testing.T) {
	dir := t.TempDir()
	testStoreLifecycle(t, NewLocalStore(dir))

	_, err := os.Stat(filepath.Join(dir, "runs", "b.json"))
	assert.NoError(t, err)
}

func TestLocalStore_MissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "absent"))
	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestMemoryStore(t *testing.T) {
	testStoreLifecycle(t, NewMemoryStore())
}

func TestMemoryStore_CopiesInput(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte("abc")
	require.NoError(t, store.Put(ctx, "x", data))
	data[0] = 'z'

	blob, err := store.Open(ctx, "x")
	require.NoError(t, err)
	got, _ := io.ReadAll(blob)
	assert.Equal(t, "abc", string(got))
}
