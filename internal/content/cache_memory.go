// internal/content/cache_memory.go
package content

import (
	"context"
	"sync"
)

// MemoryCache is the in-process device cache used when Redis is not
// configured, and by tests.
type MemoryCache struct {
	mtx     sync.RWMutex
	entries map[string]string
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]string)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	value, ok := c.entries[key]
	return value, ok
}

func (c *MemoryCache) Set(_ context.Context, key, value string) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.entries[key] = value
}
