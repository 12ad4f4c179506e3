// internal/services/content_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/elevendocs/elevendocs-backend/internal/ai"
	"github.com/elevendocs/elevendocs-backend/internal/content"
	"github.com/elevendocs/elevendocs-backend/internal/models"
)

var (
	// ErrEmptyOutput is returned when the generator produced no usable
	// title or content despite not reporting an explicit error.
	ErrEmptyOutput = errors.New("generator returned empty output")
	// ErrTruncatedOutput is returned when the completion marker is required
	// but absent, meaning the model's output was cut short.
	ErrTruncatedOutput = errors.New("generated content was truncated")
)

// Archiver mirrors finished documents to long-term object storage. It is
// optional; a nil Archiver disables archiving.
type Archiver interface {
	Archive(productID, title, body string)
}

// ContentService is the generation orchestrator: given a product descriptor
// it guarantees a generated document for that id exists exactly once, without
// duplicate generation across concurrent callers. The create-only store write
// is the sole synchronization primitive; the device cache is a best-effort
// short-circuit in front of it.
type ContentService struct {
	store         content.Store
	cache         content.DeviceCache
	generator     ai.Generator
	archiver      Archiver
	requireMarker bool
}

func NewContentService(store content.Store, cache content.DeviceCache, generator ai.Generator, archiver Archiver, requireMarker bool) *ContentService {
	return &ContentService{
		store:         store,
		cache:         cache,
		generator:     generator,
		archiver:      archiver,
		requireMarker: requireMarker,
	}
}

// EnsureGenerated guarantees content for the product exists, returning a
// bare success signal. All failures are absorbed here and logged; neither the
// background generator nor any caller needs to handle errors from this path.
func (s *ContentService) EnsureGenerated(ctx context.Context, product *models.Product) bool {
	if _, err := s.ensure(ctx, product); err != nil {
		logrus.WithError(err).WithField("product_id", product.ID).
			Error("content generation failed")
		return false
	}
	return true
}

// GenerateNow runs the same pipeline as EnsureGenerated but surfaces the
// error so user-triggered generation can show a classified message.
func (s *ContentService) GenerateNow(ctx context.Context, product *models.Product) (*content.CachedDocument, error) {
	return s.ensure(ctx, product)
}

func (s *ContentService) ensure(ctx context.Context, product *models.Product) (*content.CachedDocument, error) {
	// Cheap local short-circuit; does not re-validate against the store.
	if doc, ok := s.cachedDocument(ctx, product.ID); ok {
		return doc, nil
	}

	// Generation does not apply to user-authored ad hoc documents.
	if product.Category == models.CategoryAIServices {
		return &content.CachedDocument{Title: product.Name}, nil
	}

	// Another caller may have generated already; converging here is what
	// keeps concurrent callers from issuing duplicate generation calls.
	existing, err := s.store.Get(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("store lookup failed: %w", err)
	}
	if existing != nil {
		doc := &content.CachedDocument{Title: existing.Title, Content: existing.Content}
		s.cacheDocument(ctx, product.ID, doc)
		return doc, nil
	}

	generated, err := s.generator.Generate(ctx, BuildPrompt(product))
	if err != nil {
		return nil, fmt.Errorf("generation failed for %s: %w", product.ID, err)
	}

	if generated == nil || generated.Title == "" || strings.TrimSpace(generated.Content) == "" {
		return nil, ErrEmptyOutput
	}

	body, ok := ai.Normalize(generated.Content, s.requireMarker)
	if !ok {
		return nil, ErrTruncatedOutput
	}

	title := product.Name
	if title == "" {
		title = generated.Title
	}

	record := &models.GeneratedDocument{
		ProductID: product.ID,
		Title:     title,
		Content:   body,
	}

	switch err := s.store.CreateOnly(ctx, record); {
	case err == nil:
		if s.archiver != nil {
			go s.archiver.Archive(record.ProductID, record.Title, record.Content)
		}
	case errors.Is(err, content.ErrAlreadyExists):
		// Another writer won the race; the existing record is authoritative.
		if winner, getErr := s.store.Get(ctx, product.ID); getErr == nil && winner != nil {
			record.Title = winner.Title
			record.Content = winner.Content
		}
	default:
		return nil, fmt.Errorf("store write failed: %w", err)
	}

	doc := &content.CachedDocument{Title: record.Title, Content: record.Content}
	s.cacheDocument(ctx, product.ID, doc)
	return doc, nil
}

// GenerateAdHoc produces a document straight from a user prompt, outside the
// catalog. The synthesized descriptor gets a timestamp-derived id and the
// result is persisted with the same create-only discipline.
func (s *ContentService) GenerateAdHoc(ctx context.Context, prompt string) (*models.Product, *content.CachedDocument, error) {
	product := models.NewAdHocProduct(prompt, time.Now())

	generated, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, nil, fmt.Errorf("generation failed: %w", err)
	}

	if generated == nil || generated.Title == "" || strings.TrimSpace(generated.Content) == "" {
		return nil, nil, ErrEmptyOutput
	}

	body, ok := ai.Normalize(generated.Content, s.requireMarker)
	if !ok {
		return nil, nil, ErrTruncatedOutput
	}

	product.Name = generated.Title
	record := &models.GeneratedDocument{
		ProductID: product.ID,
		Title:     generated.Title,
		Content:   body,
	}

	if err := s.store.CreateOnly(ctx, record); err != nil && !errors.Is(err, content.ErrAlreadyExists) {
		return nil, nil, fmt.Errorf("store write failed: %w", err)
	}

	doc := &content.CachedDocument{Title: record.Title, Content: record.Content}
	s.cacheDocument(ctx, product.ID, doc)
	return product, doc, nil
}

func (s *ContentService) cachedDocument(ctx context.Context, id string) (*content.CachedDocument, bool) {
	raw, ok := s.cache.Get(ctx, id)
	if !ok {
		return nil, false
	}

	var doc content.CachedDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		// Old entries stored the bare content string.
		return &content.CachedDocument{Content: raw}, true
	}
	return &doc, true
}

func (s *ContentService) cacheDocument(ctx context.Context, id string, doc *content.CachedDocument) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return
	}
	s.cache.Set(ctx, id, string(payload))
}
