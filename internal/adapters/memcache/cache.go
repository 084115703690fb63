// Package memcache implements the workflow cache in process memory.
// It serves installs without Redis and all tests; the contract is the
// same best-effort, reconstructible-from-source one the Redis adapter
// honors.
package memcache

import (
	"context"
	"path"
	"sync"
	"time"

	"github.com/example/specmentor/internal/ports/secondary"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Cache implements secondary.WorkflowCache with an in-memory map.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// New creates an in-memory workflow cache.
func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get retrieves the value for a key; expired entries are a miss.
func (c *Cache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().After(e.expiresAt) {
		return nil, nil
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

// Set stores a value with a time-to-live.
func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	c.mu.Lock()
	c.entries[key] = entry{value: stored, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

// DeletePattern removes all keys matching a glob-style pattern.
func (c *Cache) DeletePattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if ok, _ := path.Match(pattern, key); ok {
			delete(c.entries, key)
		}
	}
	return nil
}

// Ensure Cache implements the interface
var _ secondary.WorkflowCache = (*Cache)(nil)
