// internal/content/postgres.go
package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/elevendocs/elevendocs-backend/internal/models"
)

// PostgresStore backs the content store with the generated_documents table.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, productID string) (*models.GeneratedDocument, error) {
	var doc models.GeneratedDocument
	err := s.db.WithContext(ctx).First(&doc, "product_id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read generated document: %w", err)
	}
	return &doc, nil
}

func (s *PostgresStore) CreateOnly(ctx context.Context, doc *models.GeneratedDocument) error {
	if err := s.db.WithContext(ctx).Create(doc).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to create generated document: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
