package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ejb-jar.yaml")
	require.NoError(t, os.WriteFile(path, []byte("module: a\n"), 0644))

	cache := NewFileCache[string]()
	_, ok := cache.Get(path)
	assert.False(t, ok)

	require.NoError(t, cache.Set(path, "a"))
	value, ok := cache.Get(path)
	require.True(t, ok)
	assert.Equal(t, "a", value)

	// a rewrite with a new size and mod time invalidates the entry
	require.NoError(t, os.WriteFile(path, []byte("module: changed\n"), 0644))
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, later, later))

	_, ok = cache.Get(path)
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Size())
}

func TestFileCacheMissingFile(t *testing.T) {
	cache := NewFileCache[int]()
	assert.Error(t, cache.Set(filepath.Join(t.TempDir(), "missing.yaml"), 1))

	path := filepath.Join(t.TempDir(), "gone.yaml")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	require.NoError(t, cache.Set(path, 1))
	require.NoError(t, os.Remove(path))

	_, ok := cache.Get(path)
	assert.False(t, ok)
}
