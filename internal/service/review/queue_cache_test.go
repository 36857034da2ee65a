package review

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueueCache(backing *fakeCache, now func() time.Time) *queueCache {
	return newQueueCache(backing, 24*time.Hour, now, nil)
}

func TestQueueCacheKeyIncludesCalendarDay(t *testing.T) {
	t.Parallel()

	backing := newFakeCache()
	day := time.Date(2026, 8, 30, 23, 0, 0, 0, time.UTC)
	cache := newTestQueueCache(backing, func() time.Time { return day })

	userID := uuid.New()
	items := []QueueItem{{EntryID: uuid.New(), Word: "ephemeral"}}
	cache.Set(context.Background(), userID, items)

	got, ok := cache.Get(context.Background(), userID)
	require.True(t, ok)
	assert.Equal(t, items, got)

	// The same snapshot is invisible the next day even without eviction.
	day = day.Add(2 * time.Hour)
	_, ok = cache.Get(context.Background(), userID)
	assert.False(t, ok, "yesterday's snapshot must not serve a new day")
}

func TestQueueCacheNeverStoresEmptySnapshots(t *testing.T) {
	t.Parallel()

	backing := newFakeCache()
	cache := newTestQueueCache(backing, time.Now)

	cache.Set(context.Background(), uuid.New(), nil)
	cache.Set(context.Background(), uuid.New(), []QueueItem{})
	assert.Zero(t, backing.sets)
}

func TestQueueCacheRejectsUnknownSnapshotVersions(t *testing.T) {
	t.Parallel()

	backing := newFakeCache()
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	cache := newTestQueueCache(backing, func() time.Time { return now })

	userID := uuid.New()
	backing.data[cache.key(userID)] = `{"v":99,"items":[{"word":"stale"}]}`

	_, ok := cache.Get(context.Background(), userID)
	assert.False(t, ok)
}

func TestQueueCacheTreatsGarbageAsMiss(t *testing.T) {
	t.Parallel()

	backing := newFakeCache()
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	cache := newTestQueueCache(backing, func() time.Time { return now })

	userID := uuid.New()
	backing.data[cache.key(userID)] = `not json`

	_, ok := cache.Get(context.Background(), userID)
	assert.False(t, ok)
}

func TestQueueCacheSwallowsBackingFaults(t *testing.T) {
	t.Parallel()

	backing := newFakeCache()
	backing.failReads = true
	backing.failWrites = true
	cache := newTestQueueCache(backing, time.Now)

	userID := uuid.New()

	_, ok := cache.Get(context.Background(), userID)
	assert.False(t, ok)

	// Neither write nor invalidate may panic or surface the fault.
	cache.Set(context.Background(), userID, []QueueItem{{Word: "ephemeral"}})
	cache.Invalidate(context.Background(), userID)
}

func TestQueueCacheInvalidate(t *testing.T) {
	t.Parallel()

	backing := newFakeCache()
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	cache := newTestQueueCache(backing, func() time.Time { return now })

	userID := uuid.New()
	cache.Set(context.Background(), userID, []QueueItem{{Word: "ephemeral"}})

	cache.Invalidate(context.Background(), userID)

	_, ok := cache.Get(context.Background(), userID)
	assert.False(t, ok)
}
