// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	BaseModel
	UserID          uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;index"`
	UserDisplayName string      `json:"user_display_name" gorm:"size:255"`
	UserEmail       string      `json:"user_email" gorm:"size:255"`
	TotalAmount     float64     `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	Status          OrderStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	PaymentRef      string      `json:"payment_ref" gorm:"size:255"`
	ProcessedAt     *time.Time  `json:"processed_at"`

	// Relationships
	User  User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderItem is a denormalized snapshot of a product at purchase time.
type OrderItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrderID   uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID string    `json:"product_id" gorm:"size:64;not null"`
	Name      string    `json:"name" gorm:"size:255"`
	Price     float64   `json:"price" gorm:"type:decimal(10,2)"`
	Category  string    `json:"category" gorm:"size:50"`
}
