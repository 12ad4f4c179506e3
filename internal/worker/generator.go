// internal/worker/generator.go
package worker

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/elevendocs/elevendocs-backend/internal/content"
	"github.com/elevendocs/elevendocs-backend/internal/models"
)

// Cache keys for the per-device progress record. The record is advisory
// throttling only and may drift from the store; it is reconciled lazily
// because the orchestrator re-checks the store before generating.
const (
	lastAttemptKey  = "background:last_generation_time"
	generatedIDsKey = "background:generated_product_ids"
)

// defaultCheckEvery is how often the loop wakes to run a due-check.
const defaultCheckEvery = time.Minute

// Catalog yields the next catalog item eligible for background generation,
// in a fixed deterministic order, or nil when none remain.
type Catalog interface {
	NextEligible(ctx context.Context, generatedIDs []string) (*models.Product, error)
}

// Orchestrator is the generation entry point the scheduler drives.
type Orchestrator interface {
	EnsureGenerated(ctx context.Context, product *models.Product) bool
}

// BackgroundGenerator eventually generates content for every catalog item
// with long-form content, throttled to one attempt per interval. It runs for
// the lifetime of the process; when the catalog is exhausted it keeps
// refreshing its timestamp on each due-check and otherwise idles.
type BackgroundGenerator struct {
	catalog      Catalog
	orchestrator Orchestrator
	cache        content.DeviceCache
	interval     time.Duration
	checkEvery   time.Duration
	now          func() time.Time
	log          *logrus.Entry
}

func NewBackgroundGenerator(catalog Catalog, orchestrator Orchestrator, cache content.DeviceCache, interval time.Duration) *BackgroundGenerator {
	return &BackgroundGenerator{
		catalog:      catalog,
		orchestrator: orchestrator,
		cache:        cache,
		interval:     interval,
		checkEvery:   defaultCheckEvery,
		now:          time.Now,
		log:          logrus.WithField("component", "background_generator"),
	}
}

// Start runs the due-check loop until the context is cancelled.
func (g *BackgroundGenerator) Start(ctx context.Context) {
	ticker := time.NewTicker(g.checkEvery)
	defer ticker.Stop()

	g.log.WithField("interval", g.interval).Info("background generator started")

	for {
		select {
		case <-ctx.Done():
			g.log.Info("background generator stopped")
			return
		case <-ticker.C:
			g.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single due-check and at most one generation attempt.
// Two due-checks inside one interval result in at most one attempt.
func (g *BackgroundGenerator) RunOnce(ctx context.Context) {
	now := g.now()

	if elapsed := now.Sub(g.lastAttempt(ctx)); elapsed < g.interval {
		return
	}

	generatedIDs := g.generatedIDs(ctx)

	product, err := g.catalog.NextEligible(ctx, generatedIDs)
	if err != nil {
		g.log.WithError(err).Error("catalog scan failed")
		return
	}

	if product == nil {
		// Nothing left; keep the timestamp fresh so the loop stays idle
		// instead of re-scanning the catalog every tick.
		g.setLastAttempt(ctx, now)
		return
	}

	// Record the attempt before starting so a slow or hung generation does
	// not cause a storm of concurrent attempts from this device. A failed
	// attempt is therefore only retried after a full interval.
	g.setLastAttempt(ctx, now)

	g.log.WithField("product_id", product.ID).Info("starting background content generation")

	if g.orchestrator.EnsureGenerated(ctx, product) {
		g.setGeneratedIDs(ctx, append(generatedIDs, product.ID))
		g.log.WithField("product_id", product.ID).Info("finished background content generation")
	} else {
		// Leaving the id out of the progress record keeps it eligible for
		// the next due-check.
		g.log.WithField("product_id", product.ID).Warn("background generation failed, will retry after next interval")
	}
}

func (g *BackgroundGenerator) lastAttempt(ctx context.Context) time.Time {
	raw, ok := g.cache.Get(ctx, lastAttemptKey)
	if !ok {
		return time.Time{}
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(millis)
}

func (g *BackgroundGenerator) setLastAttempt(ctx context.Context, t time.Time) {
	g.cache.Set(ctx, lastAttemptKey, strconv.FormatInt(t.UnixMilli(), 10))
}

func (g *BackgroundGenerator) generatedIDs(ctx context.Context) []string {
	raw, ok := g.cache.Get(ctx, generatedIDsKey)
	if !ok {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil
	}
	return ids
}

func (g *BackgroundGenerator) setGeneratedIDs(ctx context.Context, ids []string) {
	payload, err := json.Marshal(ids)
	if err != nil {
		return
	}
	g.cache.Set(ctx, generatedIDsKey, string(payload))
}
