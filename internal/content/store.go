// internal/content/store.go
package content

import (
	"context"
	"errors"

	"github.com/elevendocs/elevendocs-backend/internal/models"
)

// ErrAlreadyExists is returned by CreateOnly when another writer created the
// document first. Callers treat it as success-via-other-writer, not a failure.
var ErrAlreadyExists = errors.New("document already exists")

// Store is keyed document access to the shared content store. There is
// deliberately no update or delete: the create-only write is the sole
// concurrency-control primitive for the generation pipeline.
type Store interface {
	// Get returns the document for the product id, or (nil, nil) when absent.
	Get(ctx context.Context, productID string) (*models.GeneratedDocument, error)
	// CreateOnly persists the document only if no record exists at its id.
	CreateOnly(ctx context.Context, doc *models.GeneratedDocument) error
}

// DeviceCache is best-effort key-value storage scoped to one device/session.
// It may be cleared externally at any time; a missing or failing cache is
// treated as always-miss, never as an error.
type DeviceCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

// CachedDocument is the denormalized projection mirrored into the device
// cache after a successful generation or store read.
type CachedDocument struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
