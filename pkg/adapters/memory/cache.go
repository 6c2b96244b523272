package memory

import (
	"context"
	"sync"

	"github.com/danilucaci/stylemap/pkg/ports"
)

// Cache implements ports.ValueCache in memory.
// Safe for concurrent use.
type Cache struct {
	data map[string]any
	mu   sync.RWMutex
}

// NewCache creates a new in-memory value cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]any),
	}
}

// Get retrieves a cached value.
func (c *Cache) Get(ctx context.Context, key string) (any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, ok := c.data[key]
	if !ok {
		return nil, ports.ErrCacheMiss
	}
	return value, nil
}

// Set stores a resolved value.
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

// Delete removes a single entry.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// Flush removes every entry.
func (c *Cache) Flush(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]any)
	return nil
}
