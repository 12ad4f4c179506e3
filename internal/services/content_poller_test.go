// internal/services/content_poller_test.go
package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elevendocs/elevendocs-backend/internal/content"
	"github.com/elevendocs/elevendocs-backend/internal/models"
)

func TestAwaitImmediateCacheHit(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	poller := NewContentPoller(store, cache)

	payload, _ := json.Marshal(content.CachedDocument{Title: "T", Content: "cached"})
	cache.Set(context.Background(), "p1", string(payload))

	start := time.Now()
	doc, err := poller.Await(context.Background(), "p1", 5, 50*time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, "cached", doc.Content)
	assert.Less(t, time.Since(start), 50*time.Millisecond, "first check happens before any wait")
}

func TestAwaitLegacyRawCacheEntry(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	poller := NewContentPoller(store, cache)

	cache.Set(context.Background(), "p1", "bare markdown body")

	doc, err := poller.Await(context.Background(), "p1", 1, time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, "bare markdown body", doc.Content)
	assert.Empty(t, doc.Title)
}

func TestAwaitStoreHitMirroredToCache(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	poller := NewContentPoller(store, cache)

	require.NoError(t, store.CreateOnly(context.Background(), &models.GeneratedDocument{
		ProductID: "p1",
		Title:     "T",
		Content:   "from store",
	}))

	doc, err := poller.Await(context.Background(), "p1", 3, time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, "from store", doc.Content)

	raw, hit := cache.Get(context.Background(), "p1")
	require.True(t, hit, "store hit is mirrored to the device cache")
	var cached content.CachedDocument
	require.NoError(t, json.Unmarshal([]byte(raw), &cached))
	assert.Equal(t, "from store", cached.Content)
}

func TestAwaitPicksUpLateArrival(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	poller := NewContentPoller(store, cache)

	go func() {
		time.Sleep(25 * time.Millisecond)
		store.CreateOnly(context.Background(), &models.GeneratedDocument{
			ProductID: "p1",
			Title:     "T",
			Content:   "late",
		})
	}()

	doc, err := poller.Await(context.Background(), "p1", 20, 10*time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, "late", doc.Content)
}

func TestAwaitTimesOutAfterAttemptBudget(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	poller := NewContentPoller(store, cache)

	start := time.Now()
	_, err := poller.Await(context.Background(), "missing", 3, 10*time.Millisecond)
	elapsed := time.Since(start)

	require.ErrorIs(t, err, ErrNotReady)
	// 3 attempts means 2 waits between them.
	assert.GreaterOrEqual(t, elapsed, 20*time.Millisecond)
	assert.Less(t, elapsed, 100*time.Millisecond)
}

func TestAwaitCancellation(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	poller := NewContentPoller(store, cache)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := poller.Await(ctx, "missing", 100, time.Second)

	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 500*time.Millisecond, "cancellation releases the wait immediately")
}

func TestAwaitTransientStoreErrorIsAMiss(t *testing.T) {
	store := newFakeStore()
	store.getErr = assert.AnError
	cache := newFakeCache()
	poller := NewContentPoller(store, cache)

	_, err := poller.Await(context.Background(), "p1", 2, time.Millisecond)

	assert.ErrorIs(t, err, ErrNotReady, "store trouble degrades to a miss, not a hard failure")
}
