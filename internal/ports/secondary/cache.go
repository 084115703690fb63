package secondary

import (
	"context"
	"time"
)

// WorkflowCache defines the secondary port for the derived workflow
// state cache. The cache is best-effort: implementations may silently
// lose data, and callers must treat any error or absence as a miss,
// never as a failure of the read path.
type WorkflowCache interface {
	// Get retrieves the value for a key. A miss returns (nil, nil).
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with a time-to-live.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// DeletePattern removes all keys matching a glob-style pattern.
	DeletePattern(ctx context.Context, pattern string) error
}
