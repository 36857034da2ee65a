package store

import (
	"context"
	"time"
)

// Cache is a best-effort key/value cache. It backs the review queue
// snapshot and is never a correctness dependency: callers treat every
// error as a miss and fall back to the primary store.
//
// Implementations must honor the TTL passed to Set as an upper bound on
// staleness; explicit Delete is the primary invalidation mechanism.
type Cache interface {
	// Get returns the value stored under key.
	// Returns ErrCacheMiss if the key is absent or expired.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key with the given time-to-live.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
