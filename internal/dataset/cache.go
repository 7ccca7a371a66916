package dataset

import (
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache holds one loaded Dataset per source for the life of the process.
// Concurrent first requests for a source share a single load.
type Cache struct {
	load func(string) (*Dataset, error)

	mu      sync.RWMutex
	entries map[string]*Dataset
	group   singleflight.Group
}

// NewCache returns a cache that fills misses with load.
func NewCache(load func(source string) (*Dataset, error)) *Cache {
	return &Cache{load: load, entries: make(map[string]*Dataset)}
}

// Default is the process-wide cache backed by LoadFile.
var Default = NewCache(LoadFile)

// Get returns the cached dataset for source, loading it on first use. Failed
// loads are not cached.
func (c *Cache) Get(source string) (*Dataset, error) {
	key := source
	if abs, err := filepath.Abs(source); err == nil {
		key = abs
	}

	c.mu.RLock()
	ds, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return ds, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		c.mu.RLock()
		ds, ok := c.entries[key]
		c.mu.RUnlock()
		if ok {
			return ds, nil
		}
		ds, err := c.load(source)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = ds
		c.mu.Unlock()
		return ds, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Dataset), nil
}

// Len returns the number of cached sources.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
