// internal/services/review_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/elevendocs/elevendocs-backend/internal/models"
	"github.com/elevendocs/elevendocs-backend/internal/utils"
)

type ReviewService struct {
	db             *gorm.DB
	productService *ProductService
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,max=2000"`
}

func NewReviewService(db *gorm.DB, productService *ProductService) *ReviewService {
	return &ReviewService{
		db:             db,
		productService: productService,
	}
}

func (s *ReviewService) CreateReview(userID uuid.UUID, productID string, req *CreateReviewRequest) (*models.Review, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	if _, err := s.productService.GetProduct(productID); err != nil {
		return nil, err
	}

	if !user.HasPurchased(productID) {
		return nil, errors.New("only buyers of this product can review it")
	}

	var count int64
	s.db.Model(&models.Review{}).
		Where("product_id = ? AND user_id = ?", productID, userID).
		Count(&count)
	if count > 0 {
		return nil, errors.New("you have already reviewed this product")
	}

	review := &models.Review{
		ProductID:   productID,
		UserID:      userID,
		DisplayName: user.Username,
		AvatarURL:   user.AvatarURL,
		Rating:      req.Rating,
		Comment:     req.Comment,
	}

	if err := s.db.Create(review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	if err := s.productService.RefreshRating(productID); err != nil {
		return nil, fmt.Errorf("failed to refresh product rating: %w", err)
	}

	return review, nil
}

func (s *ReviewService) GetProductReviews(productID string, params utils.PaginationParams) ([]models.Review, int64, error) {
	query := s.db.Model(&models.Review{}).Where("product_id = ?", productID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	allowedSortFields := []string{"created_at", "rating"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var reviews []models.Review
	if err := query.Find(&reviews).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch reviews: %w", err)
	}

	return reviews, total, nil
}
