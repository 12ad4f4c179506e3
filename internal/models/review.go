// internal/models/review.go
package models

import "github.com/google/uuid"

type Review struct {
	BaseModel
	ProductID   string    `json:"product_id" gorm:"size:64;not null;index"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	DisplayName string    `json:"display_name" gorm:"size:255"`
	AvatarURL   string    `json:"avatar_url" gorm:"size:512"`
	Rating      int       `json:"rating" gorm:"not null"`
	Comment     string    `json:"comment" gorm:"type:text"`
}
