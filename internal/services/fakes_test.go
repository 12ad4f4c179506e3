// internal/services/fakes_test.go
package services

import (
	"context"
	"sync"

	"github.com/elevendocs/elevendocs-backend/internal/ai"
	"github.com/elevendocs/elevendocs-backend/internal/content"
	"github.com/elevendocs/elevendocs-backend/internal/models"
)

// fakeStore is an in-memory content store with the same create-only
// semantics as the Postgres-backed one.
type fakeStore struct {
	mtx     sync.Mutex
	docs    map[string]*models.GeneratedDocument
	getErr  error
	creates int
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: make(map[string]*models.GeneratedDocument)}
}

func (s *fakeStore) Get(ctx context.Context, productID string) (*models.GeneratedDocument, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	doc, ok := s.docs[productID]
	if !ok {
		return nil, nil
	}
	copied := *doc
	return &copied, nil
}

func (s *fakeStore) CreateOnly(ctx context.Context, doc *models.GeneratedDocument) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if _, exists := s.docs[doc.ProductID]; exists {
		return content.ErrAlreadyExists
	}
	s.creates++
	copied := *doc
	s.docs[doc.ProductID] = &copied
	return nil
}

func (s *fakeStore) count() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return len(s.docs)
}

// fakeCache is an in-memory device cache.
type fakeCache struct {
	mtx  sync.Mutex
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, bool) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	value, ok := c.data[key]
	return value, ok
}

func (c *fakeCache) Set(ctx context.Context, key, value string) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.data[key] = value
}

// fakeGenerator returns a fixed document or error and counts calls.
type fakeGenerator struct {
	mtx   sync.Mutex
	doc   *ai.Document
	err   error
	calls int
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (*ai.Document, error) {
	g.mtx.Lock()
	defer g.mtx.Unlock()
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	copied := *g.doc
	return &copied, nil
}

func (g *fakeGenerator) callCount() int {
	g.mtx.Lock()
	defer g.mtx.Unlock()
	return g.calls
}

func completeDoc(title, body string) *ai.Document {
	return &ai.Document{
		Title:   title,
		Content: body + "\n" + ai.CompletionMarker,
	}
}

func catalogProduct(id string) *models.Product {
	return &models.Product{
		ID:               id,
		Name:             "Go Interview Preparation Guide",
		Description:      "A guide to Go interviews.",
		Category:         models.CategoryCodingTech,
		Price:            649,
		HasStaticContent: true,
		Position:         1,
	}
}
