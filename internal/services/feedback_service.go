// internal/services/feedback_service.go
package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/elevendocs/elevendocs-backend/internal/models"
	"github.com/elevendocs/elevendocs-backend/internal/utils"
)

type FeedbackService struct {
	db *gorm.DB
}

type SubmitFeedbackRequest struct {
	Name       string `json:"name" validate:"required,max=255"`
	Email      string `json:"email" validate:"required,email"`
	Feedback   string `json:"feedback" validate:"required,max=5000"`
	Suggestion string `json:"suggestion,omitempty" validate:"max=5000"`
}

func NewFeedbackService(db *gorm.DB) *FeedbackService {
	return &FeedbackService{db: db}
}

func (s *FeedbackService) Submit(req *SubmitFeedbackRequest) (*models.Feedback, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	feedback := &models.Feedback{
		Name:       req.Name,
		Email:      req.Email,
		Feedback:   req.Feedback,
		Suggestion: req.Suggestion,
	}

	if err := s.db.Create(feedback).Error; err != nil {
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}

	return feedback, nil
}

func (s *FeedbackService) List(params utils.PaginationParams) ([]models.Feedback, int64, error) {
	query := s.db.Model(&models.Feedback{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count feedback: %w", err)
	}

	allowedSortFields := []string{"created_at"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var entries []models.Feedback
	if err := query.Find(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch feedback: %w", err)
	}

	return entries, total, nil
}
