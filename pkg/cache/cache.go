package cache

import (
	"context"
	"time"
)

// Cache is the contract for the read-through cache layer.
// Implementations marshal values themselves; callers pass Go values.
type Cache interface {
	// Get unmarshals the cached value into dest.
	// found is false on a miss, in which case dest is untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern such as "book:*".
	DeletePattern(ctx context.Context, pattern string) error

	Ping(ctx context.Context) error
}
