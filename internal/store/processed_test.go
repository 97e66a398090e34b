package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAllMissingFile(t *testing.T) {
	s := NewProcessedStore(filepath.Join(t.TempDir(), "processed.txt"))

	ids, err := s.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestMarkAndReadAll(t *testing.T) {
	s := NewProcessedStore(filepath.Join(t.TempDir(), "processed.txt"))

	require.NoError(t, s.Mark("1"))
	require.NoError(t, s.Mark("42"))

	ids, err := s.ReadAll()
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.Contains(t, ids, "1")
	assert.Contains(t, ids, "42")
}

func TestDuplicateAppendsDedupeOnRead(t *testing.T) {
	s := NewProcessedStore(filepath.Join(t.TempDir(), "processed.txt"))

	require.NoError(t, s.Mark("7"))
	require.NoError(t, s.Mark("7"))
	require.NoError(t, s.Mark("7"))

	ids, err := s.ReadAll()
	require.NoError(t, err)
	assert.Len(t, ids, 1)
	assert.Contains(t, ids, "7")
}

func TestReadAllSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed.txt")
	require.NoError(t, os.WriteFile(path, []byte("1\n\n  \n2\n"), 0644))

	s := NewProcessedStore(path)
	ids, err := s.ReadAll()
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.Contains(t, ids, "1")
	assert.Contains(t, ids, "2")
}

func TestMarkAppendsWithoutRewriting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed.txt")
	s := NewProcessedStore(path)

	require.NoError(t, s.Mark("1"))
	require.NoError(t, s.Mark("2"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n", string(data))
}
