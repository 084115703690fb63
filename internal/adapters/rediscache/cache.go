// Package rediscache implements the workflow cache on Redis.
// The cache is a secondary, lossy store: reads degrade to a miss on any
// failure, and the source of truth can always rebuild what was lost.
package rediscache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/example/specmentor/internal/ports/secondary"
)

// Cache implements secondary.WorkflowCache backed by Redis.
type Cache struct {
	client *redis.Client
}

// New creates a Redis-backed workflow cache.
func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Get retrieves the value for a key. Misses and errors both return
// (nil, nil): a failing cache must never fail the read path.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, nil
	}
	return val, nil
}

// Set stores a value with a time-to-live.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// DeletePattern removes all keys matching a glob-style pattern.
func (c *Cache) DeletePattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Ensure Cache implements the interface
var _ secondary.WorkflowCache = (*Cache)(nil)
