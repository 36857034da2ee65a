package review

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lingoflow/lingoflow-api/internal/store"
)

// snapshotVersion tags the cached queue payload so a reader never
// misinterprets a snapshot written by an older shape of the struct.
const snapshotVersion = 1

// queueSnapshotV1 is the versioned envelope stored in the cache.
type queueSnapshotV1 struct {
	Version int         `json:"v"`
	Items   []QueueItem `json:"items"`
}

// queueCache wraps the raw key/value cache with the review queue's
// semantics: day-scoped keys, a TTL ceiling as defense against missed
// invalidations, never caching empty results, and treating every cache
// fault as a miss.
type queueCache struct {
	cache  store.Cache
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

func newQueueCache(cache store.Cache, ttl time.Duration, now func() time.Time, logger *slog.Logger) *queueCache {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &queueCache{
		cache:  cache,
		ttl:    ttl,
		now:    now,
		logger: logger.With(slog.String("component", "queue_cache")),
	}
}

// key incorporates the calendar day so a new day never serves yesterday's
// snapshot, even if invalidation was missed.
func (c *queueCache) key(userID uuid.UUID) string {
	day := c.now().UTC().Format("2006-01-02")
	return fmt.Sprintf("review:queue:%s:%s", userID, day)
}

// Get returns the cached snapshot for today, or ok=false on a miss.
// Read and deserialize faults are logged and reported as misses.
func (c *queueCache) Get(ctx context.Context, userID uuid.UUID) ([]QueueItem, bool) {
	key := c.key(userID)

	raw, err := c.cache.Get(ctx, key)
	if err != nil {
		if err != store.ErrCacheMiss {
			c.logger.WarnContext(ctx, "queue cache read failed, treating as miss",
				"error", err,
				"user_id", userID)
		}
		return nil, false
	}

	var snapshot queueSnapshotV1
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil || snapshot.Version != snapshotVersion {
		c.logger.WarnContext(ctx, "queue cache payload unreadable, treating as miss",
			"error", err,
			"version", snapshot.Version,
			"user_id", userID)
		return nil, false
	}

	return snapshot.Items, true
}

// Set stores today's snapshot. Empty queues are never cached so a
// transient "nothing due" result cannot be pinned until real due items
// appear. Write faults are logged and swallowed.
func (c *queueCache) Set(ctx context.Context, userID uuid.UUID, items []QueueItem) {
	if len(items) == 0 {
		return
	}

	payload, err := json.Marshal(queueSnapshotV1{Version: snapshotVersion, Items: items})
	if err != nil {
		c.logger.WarnContext(ctx, "failed to serialize queue snapshot",
			"error", err,
			"user_id", userID)
		return
	}

	if err := c.cache.Set(ctx, c.key(userID), string(payload), c.ttl); err != nil {
		c.logger.WarnContext(ctx, "queue cache write failed",
			"error", err,
			"user_id", userID)
	}
}

// Invalidate evicts today's snapshot. Must be called after the store
// write it corresponds to, never before. Faults are logged and swallowed;
// the TTL ceiling bounds the resulting staleness.
func (c *queueCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if err := c.cache.Delete(ctx, c.key(userID)); err != nil {
		c.logger.WarnContext(ctx, "queue cache invalidation failed",
			"error", err,
			"user_id", userID)
	}
}
