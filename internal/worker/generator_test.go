// internal/worker/generator_test.go
package worker

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elevendocs/elevendocs-backend/internal/models"
)

type fakeCatalog struct {
	mtx      sync.Mutex
	products []*models.Product
	calls    int
	lastIDs  []string
}

func (c *fakeCatalog) NextEligible(ctx context.Context, generatedIDs []string) (*models.Product, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.calls++
	c.lastIDs = generatedIDs

	seen := make(map[string]bool, len(generatedIDs))
	for _, id := range generatedIDs {
		seen[id] = true
	}
	for _, p := range c.products {
		if !seen[p.ID] {
			return p, nil
		}
	}
	return nil, nil
}

type fakeOrchestrator struct {
	mtx      sync.Mutex
	succeed  bool
	attempts []string
	observe  func()
}

func (o *fakeOrchestrator) EnsureGenerated(ctx context.Context, product *models.Product) bool {
	o.mtx.Lock()
	defer o.mtx.Unlock()
	o.attempts = append(o.attempts, product.ID)
	if o.observe != nil {
		o.observe()
	}
	return o.succeed
}

type mapCache struct {
	mtx  sync.Mutex
	data map[string]string
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string]string)}
}

func (c *mapCache) Get(ctx context.Context, key string) (string, bool) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	v, ok := c.data[key]
	return v, ok
}

func (c *mapCache) Set(ctx context.Context, key, value string) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.data[key] = value
}

func testProducts(ids ...string) []*models.Product {
	products := make([]*models.Product, 0, len(ids))
	for i, id := range ids {
		products = append(products, &models.Product{
			ID:               id,
			Name:             id,
			HasStaticContent: true,
			Position:         i + 1,
		})
	}
	return products
}

func newTestGenerator(catalog *fakeCatalog, orchestrator *fakeOrchestrator, cache *mapCache, interval time.Duration) (*BackgroundGenerator, *time.Time) {
	g := NewBackgroundGenerator(catalog, orchestrator, cache, interval)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return now }
	return g, &now
}

func TestRunOnceFirstAttemptIsDue(t *testing.T) {
	catalog := &fakeCatalog{products: testProducts("a", "b")}
	orchestrator := &fakeOrchestrator{succeed: true}
	cache := newMapCache()
	g, _ := newTestGenerator(catalog, orchestrator, cache, 20*time.Minute)

	g.RunOnce(context.Background())

	require.Equal(t, []string{"a"}, orchestrator.attempts)

	raw, ok := cache.Get(context.Background(), generatedIDsKey)
	require.True(t, ok)
	var ids []string
	require.NoError(t, json.Unmarshal([]byte(raw), &ids))
	assert.Equal(t, []string{"a"}, ids, "successful attempt is recorded in the progress record")
}

func TestRunOnceThrottlesWithinInterval(t *testing.T) {
	catalog := &fakeCatalog{products: testProducts("a", "b")}
	orchestrator := &fakeOrchestrator{succeed: true}
	cache := newMapCache()
	g, now := newTestGenerator(catalog, orchestrator, cache, 20*time.Minute)

	g.RunOnce(context.Background())
	*now = now.Add(time.Minute)
	g.RunOnce(context.Background())

	assert.Len(t, orchestrator.attempts, 1, "two due-checks inside one interval make at most one attempt")

	*now = now.Add(20 * time.Minute)
	g.RunOnce(context.Background())

	assert.Equal(t, []string{"a", "b"}, orchestrator.attempts, "the next interval advances to the next product")
}

func TestRunOnceRecordsTimestampBeforeAttempt(t *testing.T) {
	catalog := &fakeCatalog{products: testProducts("a")}
	cache := newMapCache()
	orchestrator := &fakeOrchestrator{succeed: true}

	var timestampDuringAttempt bool
	orchestrator.observe = func() {
		_, timestampDuringAttempt = cache.Get(context.Background(), lastAttemptKey)
	}

	g, _ := newTestGenerator(catalog, orchestrator, cache, 20*time.Minute)
	g.RunOnce(context.Background())

	assert.True(t, timestampDuringAttempt,
		"the attempt timestamp must be written before generation starts")
}

func TestRunOnceFailureKeepsProductEligible(t *testing.T) {
	catalog := &fakeCatalog{products: testProducts("a")}
	orchestrator := &fakeOrchestrator{succeed: false}
	cache := newMapCache()
	g, now := newTestGenerator(catalog, orchestrator, cache, 20*time.Minute)

	g.RunOnce(context.Background())

	_, ok := cache.Get(context.Background(), generatedIDsKey)
	assert.False(t, ok, "failed attempts stay out of the progress record")

	// Still throttled until the interval passes, then retried.
	g.RunOnce(context.Background())
	assert.Len(t, orchestrator.attempts, 1)

	*now = now.Add(21 * time.Minute)
	g.RunOnce(context.Background())
	assert.Equal(t, []string{"a", "a"}, orchestrator.attempts)
}

func TestRunOnceIdlesWhenCatalogExhausted(t *testing.T) {
	catalog := &fakeCatalog{products: testProducts("a")}
	orchestrator := &fakeOrchestrator{succeed: true}
	cache := newMapCache()
	g, now := newTestGenerator(catalog, orchestrator, cache, 20*time.Minute)

	g.RunOnce(context.Background())
	*now = now.Add(21 * time.Minute)
	g.RunOnce(context.Background())

	assert.Len(t, orchestrator.attempts, 1, "nothing eligible means no attempt")

	_, ok := cache.Get(context.Background(), lastAttemptKey)
	assert.True(t, ok, "exhausted catalog still refreshes the timestamp to stay idle")
}

func TestRunOncePassesProgressToCatalog(t *testing.T) {
	catalog := &fakeCatalog{products: testProducts("a", "b", "c")}
	orchestrator := &fakeOrchestrator{succeed: true}
	cache := newMapCache()
	g, now := newTestGenerator(catalog, orchestrator, cache, 20*time.Minute)

	g.RunOnce(context.Background())
	*now = now.Add(21 * time.Minute)
	g.RunOnce(context.Background())

	assert.Equal(t, []string{"a"}, catalog.lastIDs,
		"the catalog scan excludes already-generated products")
}

func TestStartStopsOnCancel(t *testing.T) {
	catalog := &fakeCatalog{}
	orchestrator := &fakeOrchestrator{succeed: true}
	g, _ := newTestGenerator(catalog, orchestrator, newMapCache(), 20*time.Minute)
	g.checkEvery = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		g.Start(ctx)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start did not return after cancellation")
	}
}
