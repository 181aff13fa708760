package cache

import (
	"context"
	"time"
)

// Store is the contract for the shared cache backend.
// Allows swapping implementations (Redis in production, in-memory for tests).
type Store interface {
	// Get reads data from the cache and unmarshals it into dest.
	// Returns: (found bool, error)
	// - found = true: cache hit, data unmarshaled into dest
	// - found = false: cache miss, dest untouched
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores data in the cache with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern.
	DeletePattern(ctx context.Context, pattern string) error

	// Increment atomically increments a counter key and returns the new value.
	// A missing key starts at 0. Used for tag generations and rate limiting.
	Increment(ctx context.Context, key string) (int64, error)

	// GetInt64 reads a counter key. Returns (0, false, nil) when the key
	// does not exist.
	GetInt64(ctx context.Context, key string) (int64, bool, error)

	Exists(ctx context.Context, key string) (bool, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)

	// Ping checks the connection.
	Ping(ctx context.Context) error
}
