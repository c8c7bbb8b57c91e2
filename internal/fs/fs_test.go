package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS(t *testing.T) {
	tmp := t.TempDir()
	lfs := LocalFS{}

	dir := filepath.Join(tmp, "subdir")
	require.NoError(t, lfs.MkdirAll(dir, 0o755))

	fpath := filepath.Join(dir, "test.txt")
	f, err := lfs.OpenFile(fpath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	require.NoError(t, err)
	assert.Equal(t, fpath, f.Name())

	_, err = f.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, f.Sync())
	require.NoError(t, f.Close())

	newPath := filepath.Join(dir, "renamed.txt")
	require.NoError(t, lfs.Rename(fpath, newPath))

	data, err := os.ReadFile(newPath)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, lfs.Remove(newPath))
	_, err = os.Stat(newPath)
	assert.True(t, os.IsNotExist(err))
}

func TestFaultyFS(t *testing.T) {
	tmp := t.TempDir()
	boom := errors.New("disk full")

	ffs := NewFaultyFS(nil)
	ffs.AddRule("limited", Fault{FailAfterBytes: 4, Err: boom})
	ffs.AddRule("nosync", Fault{FailAfterBytes: -1, FailOnSync: true})
	ffs.AddRule("noclose", Fault{FailAfterBytes: -1, FailOnClose: true})
	ffs.AddRule("norename", Fault{FailAfterBytes: -1, FailOnRename: true})

	open := func(name string) File {
		f, err := ffs.OpenFile(filepath.Join(tmp, name), os.O_CREATE|os.O_WRONLY, 0o644)
		require.NoError(t, err)
		return f
	}

	t.Run("WriteLimit", func(t *testing.T) {
		f := open("limited.bin")
		_, err := f.Write([]byte("abc"))
		require.NoError(t, err)
		_, err = f.Write([]byte("de"))
		assert.ErrorIs(t, err, boom)
		require.NoError(t, f.Close())
	})

	t.Run("Sync", func(t *testing.T) {
		f := open("nosync.bin")
		assert.ErrorIs(t, f.Sync(), ErrInjected)
		require.NoError(t, f.Close())
	})

	t.Run("Close", func(t *testing.T) {
		f := open("noclose.bin")
		assert.ErrorIs(t, f.Close(), ErrInjected)
	})

	t.Run("Rename", func(t *testing.T) {
		f := open("norename.bin")
		require.NoError(t, f.Close())
		err := ffs.Rename(filepath.Join(tmp, "norename.bin"), filepath.Join(tmp, "x.bin"))
		assert.ErrorIs(t, err, ErrInjected)
	})

	t.Run("NoRule", func(t *testing.T) {
		f := open("plain.bin")
		_, err := f.Write([]byte("hello world"))
		require.NoError(t, err)
		require.NoError(t, f.Sync())
		require.NoError(t, f.Close())
		require.NoError(t, ffs.Rename(filepath.Join(tmp, "plain.bin"), filepath.Join(tmp, "moved.bin")))
	})
}
