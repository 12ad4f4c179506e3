// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type UserType string

const (
	UserTypeBuyer UserType = "buyer"
	UserTypeAdmin UserType = "admin"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusFailed    OrderStatus = "failed"
)

// ProductCategory is the fixed set of marketplace categories.
type ProductCategory string

const (
	CategoryAcademicNotes      ProductCategory = "Academic Notes"
	CategoryExamPrep           ProductCategory = "Exam Prep"
	CategoryCodingTech         ProductCategory = "Coding & Tech"
	CategorySkillDevelopment   ProductCategory = "Skill Development"
	CategoryPersonalGrowth     ProductCategory = "Personal Growth"
	CategoryPlannersOrganizers ProductCategory = "Planners & Organizers"
	CategoryBundles            ProductCategory = "Bundles"
	CategoryDigitalNotebooks   ProductCategory = "Digital Notebooks"
	CategoryCodeLibraries      ProductCategory = "Code Libraries"
	CategoryDigitalJournals    ProductCategory = "Digital Journals"
	CategoryAIServices         ProductCategory = "AI Services"
	CategoryPsychology         ProductCategory = "Psychology"
	CategoryEconomics          ProductCategory = "Economics"
)

// AllCategories lists every category in display order.
var AllCategories = []ProductCategory{
	CategoryAcademicNotes,
	CategoryExamPrep,
	CategoryCodingTech,
	CategorySkillDevelopment,
	CategoryPersonalGrowth,
	CategoryPlannersOrganizers,
	CategoryBundles,
	CategoryDigitalNotebooks,
	CategoryCodeLibraries,
	CategoryDigitalJournals,
	CategoryAIServices,
	CategoryPsychology,
	CategoryEconomics,
}

// ValidCategory reports whether the given string names a known category.
func ValidCategory(s string) bool {
	for _, c := range AllCategories {
		if string(c) == s {
			return true
		}
	}
	return false
}
