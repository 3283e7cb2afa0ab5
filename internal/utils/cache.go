package utils

import (
	"os"
	"sync"
	"time"
)

// fileStamp identifies one version of a file
type fileStamp struct {
	modTime time.Time
	size    int64
}

type fileEntry[V any] struct {
	value V
	stamp fileStamp
}

// FileCache caches values derived from files. An entry is valid while the
// file keeps the modification time and size it had when the entry was stored.
type FileCache[V any] struct {
	items map[string]fileEntry[V]
	mutex sync.RWMutex
}

// NewFileCache creates an empty file cache
func NewFileCache[V any]() *FileCache[V] {
	return &FileCache[V]{
		items: make(map[string]fileEntry[V]),
	}
}

// Get returns the cached value for path. A changed or unreadable file
// evicts the entry.
func (c *FileCache[V]) Get(path string) (V, bool) {
	c.mutex.RLock()
	item, exists := c.items[path]
	c.mutex.RUnlock()

	var zero V
	if !exists {
		return zero, false
	}

	if stat, err := os.Stat(path); err == nil {
		if stat.ModTime().Equal(item.stamp.modTime) && stat.Size() == item.stamp.size {
			return item.value, true
		}
	}

	c.mutex.Lock()
	delete(c.items, path)
	c.mutex.Unlock()
	return zero, false
}

// Set stores value for the current version of path
func (c *FileCache[V]) Set(path string, value V) error {
	stat, err := os.Stat(path)
	if err != nil {
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items[path] = fileEntry[V]{
		value: value,
		stamp: fileStamp{modTime: stat.ModTime(), size: stat.Size()},
	}
	return nil
}

// Delete removes an entry
func (c *FileCache[V]) Delete(path string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.items, path)
}

// Size returns the number of entries
func (c *FileCache[V]) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.items)
}
