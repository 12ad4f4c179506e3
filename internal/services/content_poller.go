// internal/services/content_poller.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/elevendocs/elevendocs-backend/internal/content"
)

// ErrNotReady is returned when content did not appear within the attempt
// budget. Callers should offer a retry affordance rather than fail hard.
var ErrNotReady = errors.New("content not ready yet")

// ContentPoller surfaces generated content to a viewer once it becomes
// available, tolerating multi-second to multi-minute generation latency.
// Each tick is independent and idempotent: device cache first, then the
// content store, caching on the first store hit.
type ContentPoller struct {
	store content.Store
	cache content.DeviceCache
}

func NewContentPoller(store content.Store, cache content.DeviceCache) *ContentPoller {
	return &ContentPoller{store: store, cache: cache}
}

// Await polls until content for the id appears, maxAttempts ticks elapse
// (ErrNotReady), or the context is cancelled. Cancellation releases the
// timer immediately.
func (p *ContentPoller) Await(ctx context.Context, id string, maxAttempts int, interval time.Duration) (*content.CachedDocument, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		if doc, ok := p.check(ctx, id); ok {
			return doc, nil
		}

		if attempt >= maxAttempts {
			return nil, ErrNotReady
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (p *ContentPoller) check(ctx context.Context, id string) (*content.CachedDocument, bool) {
	if raw, ok := p.cache.Get(ctx, id); ok {
		var doc content.CachedDocument
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			// Old entries stored the bare content string.
			return &content.CachedDocument{Content: raw}, true
		}
		return &doc, true
	}

	record, err := p.store.Get(ctx, id)
	if err != nil {
		// Transient store trouble just means this tick misses.
		logrus.WithError(err).WithField("product_id", id).Debug("poll tick failed")
		return nil, false
	}
	if record == nil {
		return nil, false
	}

	doc := &content.CachedDocument{Title: record.Title, Content: record.Content}
	if payload, err := json.Marshal(doc); err == nil {
		p.cache.Set(ctx, id, string(payload))
	}
	return doc, true
}
