// internal/models/user.go
package models

import (
	"time"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Username        string         `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email           string         `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash    string         `json:"-" gorm:"size:255;not null"`
	UserType        UserType       `json:"user_type" gorm:"type:varchar(20);default:'buyer'"`
	Status          UserStatus     `json:"status" gorm:"type:varchar(20);default:'active'"`
	AvatarURL       string         `json:"avatar_url" gorm:"size:512"`
	PurchaseHistory pq.StringArray `json:"purchase_history" gorm:"type:text[]"`
	LastLoginAt     *time.Time     `json:"last_login_at"`

	// Relationships
	Orders  []Order  `json:"orders,omitempty" gorm:"foreignKey:UserID"`
	Reviews []Review `json:"reviews,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// HasPurchased reports whether the given product id is in the user's
// purchase history.
func (u *User) HasPurchased(productID string) bool {
	for _, id := range u.PurchaseHistory {
		if id == productID {
			return true
		}
	}
	return false
}
