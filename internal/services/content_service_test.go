// internal/services/content_service_test.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elevendocs/elevendocs-backend/internal/ai"
	"github.com/elevendocs/elevendocs-backend/internal/content"
	"github.com/elevendocs/elevendocs-backend/internal/models"
)

func newTestContentService(store *fakeStore, cache *fakeCache, generator *fakeGenerator) *ContentService {
	return NewContentService(store, cache, generator, nil, true)
}

func TestEnsureGeneratedCacheShortCircuit(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	generator := &fakeGenerator{doc: completeDoc("Title", "Body")}
	svc := newTestContentService(store, cache, generator)

	payload, _ := json.Marshal(content.CachedDocument{Title: "Cached", Content: "cached body"})
	cache.Set(context.Background(), "p1", string(payload))

	ok := svc.EnsureGenerated(context.Background(), catalogProduct("p1"))

	assert.True(t, ok)
	assert.Zero(t, generator.callCount(), "cache hit must not trigger generation")
	assert.Zero(t, store.count())
}

func TestEnsureGeneratedStoreShortCircuit(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	generator := &fakeGenerator{doc: completeDoc("Title", "Body")}
	svc := newTestContentService(store, cache, generator)

	require.NoError(t, store.CreateOnly(context.Background(), &models.GeneratedDocument{
		ProductID: "p1",
		Title:     "Existing",
		Content:   "existing body",
	}))

	doc, err := svc.GenerateNow(context.Background(), catalogProduct("p1"))

	require.NoError(t, err)
	assert.Equal(t, "Existing", doc.Title)
	assert.Zero(t, generator.callCount(), "store hit must not trigger generation")

	// The store hit is mirrored into the device cache.
	raw, hit := cache.Get(context.Background(), "p1")
	require.True(t, hit)
	var cached content.CachedDocument
	require.NoError(t, json.Unmarshal([]byte(raw), &cached))
	assert.Equal(t, "existing body", cached.Content)
}

func TestGenerateNowPersistsAndCaches(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	generator := &fakeGenerator{doc: completeDoc("Generated Title", "# Heading\n\nBody")}
	svc := newTestContentService(store, cache, generator)

	doc, err := svc.GenerateNow(context.Background(), catalogProduct("p1"))

	require.NoError(t, err)
	// Catalog products keep their catalog name as the document title.
	assert.Equal(t, "Go Interview Preparation Guide", doc.Title)
	assert.Equal(t, "# Heading\n\nBody", doc.Content)
	assert.NotContains(t, doc.Content, ai.CompletionMarker)

	stored, err := store.Get(context.Background(), "p1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotContains(t, stored.Content, ai.CompletionMarker)

	_, hit := cache.Get(context.Background(), "p1")
	assert.True(t, hit)
}

func TestGenerateNowIdempotent(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	generator := &fakeGenerator{doc: completeDoc("Title", "Body")}
	svc := newTestContentService(store, cache, generator)

	first, err := svc.GenerateNow(context.Background(), catalogProduct("p1"))
	require.NoError(t, err)

	second, err := svc.GenerateNow(context.Background(), catalogProduct("p1"))
	require.NoError(t, err)

	assert.Equal(t, first.Content, second.Content)
	assert.Equal(t, 1, generator.callCount(), "repeat call must reuse the stored document")
	assert.Equal(t, 1, store.count())
}

func TestConcurrentGenerationSingleRecord(t *testing.T) {
	store := newFakeStore()
	generator := &fakeGenerator{doc: completeDoc("Title", "Body")}

	// Each caller gets its own device cache, as on separate devices, so the
	// store write is the only shared state.
	const callers = 8
	var wg sync.WaitGroup
	results := make([]bool, callers)

	for i := 0; i < callers; i++ {
		svc := newTestContentService(store, newFakeCache(), generator)
		wg.Add(1)
		go func(idx int, s *ContentService) {
			defer wg.Done()
			results[idx] = s.EnsureGenerated(context.Background(), catalogProduct("p1"))
		}(i, svc)
	}
	wg.Wait()

	for i, ok := range results {
		assert.True(t, ok, "caller %d should observe success", i)
	}
	assert.Equal(t, 1, store.count(), "exactly one record may exist")
	assert.Equal(t, 1, store.creates, "exactly one create may succeed")
}

func TestTruncatedOutputNotStored(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	generator := &fakeGenerator{doc: &ai.Document{Title: "Title", Content: "Body without the marker"}}
	svc := newTestContentService(store, cache, generator)

	_, err := svc.GenerateNow(context.Background(), catalogProduct("p1"))

	require.ErrorIs(t, err, ErrTruncatedOutput)
	assert.Zero(t, store.count(), "truncated output must not reach the store")
	_, hit := cache.Get(context.Background(), "p1")
	assert.False(t, hit, "truncated output must not reach the cache")
}

func TestEmptyOutputRejected(t *testing.T) {
	store := newFakeStore()
	generator := &fakeGenerator{doc: &ai.Document{Title: "Title", Content: "   "}}
	svc := newTestContentService(store, newFakeCache(), generator)

	_, err := svc.GenerateNow(context.Background(), catalogProduct("p1"))

	require.ErrorIs(t, err, ErrEmptyOutput)
	assert.Zero(t, store.count())
}

func TestGenerationErrorSurfaced(t *testing.T) {
	store := newFakeStore()
	generator := &fakeGenerator{err: errors.New("503 model is overloaded")}
	svc := newTestContentService(store, newFakeCache(), generator)

	_, err := svc.GenerateNow(context.Background(), catalogProduct("p1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overloaded")

	ok := svc.EnsureGenerated(context.Background(), catalogProduct("p1"))
	assert.False(t, ok, "background path absorbs the error into a failure signal")
	assert.Zero(t, store.count())
}

func TestAdHocCategorySkipsGeneration(t *testing.T) {
	store := newFakeStore()
	generator := &fakeGenerator{doc: completeDoc("Title", "Body")}
	svc := newTestContentService(store, newFakeCache(), generator)

	product := catalogProduct("ai-pdf-1700000000000")
	product.Category = models.CategoryAIServices

	ok := svc.EnsureGenerated(context.Background(), product)

	assert.True(t, ok)
	assert.Zero(t, generator.callCount(), "ad hoc documents are never regenerated from the catalog path")
	assert.Zero(t, store.count())
}

func TestGenerateAdHoc(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	generator := &fakeGenerator{doc: completeDoc("Sourdough Basics", "# Sourdough\n\nSteps.")}
	svc := newTestContentService(store, cache, generator)

	product, doc, err := svc.GenerateAdHoc(context.Background(), "Write a guide to sourdough baking")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(product.ID, models.AdHocProductIDPrefix))
	assert.Equal(t, models.CategoryAIServices, product.Category)
	assert.Equal(t, "Sourdough Basics", product.Name, "ad hoc products take the generated title")
	assert.Equal(t, "# Sourdough\n\nSteps.", doc.Content)
	assert.Equal(t, 1, store.count())

	_, hit := cache.Get(context.Background(), product.ID)
	assert.True(t, hit)
}

func TestGenerateAdHocTruncatedRejected(t *testing.T) {
	store := newFakeStore()
	generator := &fakeGenerator{doc: &ai.Document{Title: "Title", Content: "cut off mid-sen"}}
	svc := newTestContentService(store, newFakeCache(), generator)

	_, _, err := svc.GenerateAdHoc(context.Background(), "Write a guide")

	require.ErrorIs(t, err, ErrTruncatedOutput)
	assert.Zero(t, store.count())
}

func TestStoreConflictAdoptsWinner(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	generator := &fakeGenerator{doc: completeDoc("Loser Title", "loser body")}
	svc := newTestContentService(store, cache, generator)

	// Simulate another writer winning between the Get and the CreateOnly by
	// pre-seeding after the cache check path would miss.
	conflictStore := &conflictingStore{fakeStore: store, winner: &models.GeneratedDocument{
		ProductID: "p1",
		Title:     "Winner Title",
		Content:   "winner body",
	}}
	svc = NewContentService(conflictStore, cache, generator, nil, true)

	doc, err := svc.GenerateNow(context.Background(), catalogProduct("p1"))

	require.NoError(t, err, "losing the race is success-via-other-writer")
	assert.Equal(t, "winner body", doc.Content, "the winner's document is authoritative")
}

// conflictingStore reports absence on the first read, then fails the create
// as if another writer got there in between.
type conflictingStore struct {
	*fakeStore
	winner  *models.GeneratedDocument
	written bool
}

func (s *conflictingStore) Get(ctx context.Context, productID string) (*models.GeneratedDocument, error) {
	if !s.written {
		return nil, nil
	}
	copied := *s.winner
	return &copied, nil
}

func (s *conflictingStore) CreateOnly(ctx context.Context, doc *models.GeneratedDocument) error {
	s.written = true
	return content.ErrAlreadyExists
}
