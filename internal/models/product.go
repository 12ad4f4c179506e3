// internal/models/product.go
package models

import (
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Product is immutable catalog reference data. Rows are seeded at migration
// time and never mutated at runtime, except for the rating/review rollups.
// Ad hoc AI documents get a synthesized descriptor with a timestamp-derived id.
type Product struct {
	ID               string          `json:"id" gorm:"primaryKey;size:64"`
	Name             string          `json:"name" gorm:"size:255;not null"`
	Description      string          `json:"description" gorm:"type:text"`
	Category         ProductCategory `json:"category" gorm:"type:varchar(50);index"`
	Price            float64         `json:"price" gorm:"type:decimal(10,2);not null"`
	Tags             pq.StringArray  `json:"tags" gorm:"type:text[]"`
	ImageURL         string          `json:"image_url" gorm:"size:512"`
	ImageHint        string          `json:"image_hint" gorm:"size:255"`
	HasStaticContent bool            `json:"has_static_content" gorm:"default:false;index"`
	Position         int             `json:"position" gorm:"uniqueIndex"`
	Rating           float64         `json:"rating" gorm:"type:decimal(3,2);default:0"`
	ReviewCount      int64           `json:"review_count" gorm:"default:0"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	// Relationships
	Reviews []Review `json:"reviews,omitempty" gorm:"foreignKey:ProductID"`
}

// AdHocProductIDPrefix prefixes ids of user-authored AI documents.
const AdHocProductIDPrefix = "ai-pdf-"

// NewAdHocProduct synthesizes a descriptor for a user-authored AI document.
// The id is derived from the creation time in epoch milliseconds.
func NewAdHocProduct(prompt string, now time.Time) *Product {
	summary := prompt
	if len(summary) > 50 {
		summary = summary[:50] + "..."
	}
	return &Product{
		ID:          fmt.Sprintf("%s%d", AdHocProductIDPrefix, now.UnixMilli()),
		Name:        "Custom AI Document",
		Description: fmt.Sprintf("AI-generated document based on your prompt: %q", summary),
		Category:    CategoryAIServices,
		Price:       99,
		Tags:        pq.StringArray{"ai", "custom", "document"},
	}
}
