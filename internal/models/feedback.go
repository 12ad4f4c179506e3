// internal/models/feedback.go
package models

type Feedback struct {
	BaseModel
	Name       string `json:"name" gorm:"size:255;not null"`
	Email      string `json:"email" gorm:"size:255;not null"`
	Feedback   string `json:"feedback" gorm:"type:text"`
	Suggestion string `json:"suggestion" gorm:"type:text"`
}
