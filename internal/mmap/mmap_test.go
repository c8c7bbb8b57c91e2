package mmap

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "matrix.tsv")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func TestMmap_OpenReadClose(t *testing.T) {
	content := []byte("sample\tg1\nA\t1\n")
	m, err := Open(writeTemp(t, content))
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, int64(len(content)), m.Size())
	assert.Equal(t, content, m.Bytes())

	all, err := io.ReadAll(m.Reader())
	require.NoError(t, err)
	assert.Equal(t, content, all)

	buf := make([]byte, 2)
	n, err := m.ReadAt(buf, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "g1", string(buf))

	n, err = m.ReadAt(make([]byte, 10), 100)
	assert.Zero(t, n)
	assert.Equal(t, io.EOF, err)

	partial := make([]byte, 10)
	n, err = m.ReadAt(partial, int64(len(content)-2))
	assert.Equal(t, 2, n)
	assert.Equal(t, io.EOF, err)

	_, err = m.ReadAt(buf, -1)
	assert.Equal(t, ErrInvalidOffset, err)
}

func TestMmap_EmptyFile(t *testing.T) {
	m, err := Open(writeTemp(t, nil))
	require.NoError(t, err)

	assert.Zero(t, m.Size())
	assert.Nil(t, m.Bytes())
	assert.NoError(t, m.Close())
	assert.NoError(t, m.Close())
}

func TestMmap_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
