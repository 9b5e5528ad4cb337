package ports

import (
	"context"
	"time"
)

// Cache abstracts the Redis-backed read cache and rate-limit counters.
// Get returns ("", nil) on a miss.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}
