// internal/models/document.go
package models

import "time"

// GeneratedDocument is the stored artifact for a product id. Writes are
// create-only: once a row exists it is never overwritten, so the first
// successful generation wins globally.
type GeneratedDocument struct {
	ProductID string    `json:"product_id" gorm:"primaryKey;size:64"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
