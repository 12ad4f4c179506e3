// internal/services/dashboard_service.go
package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/elevendocs/elevendocs-backend/internal/models"
	"github.com/elevendocs/elevendocs-backend/internal/utils"
)

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// GetOverview returns the admin dashboard summary: totals plus recent orders
// and feedback.
func (s *DashboardService) GetOverview() (map[string]interface{}, error) {
	var (
		totalUsers     int64
		totalProducts  int64
		totalOrders    int64
		totalDocuments int64
		totalReviews   int64
		totalRevenue   float64
	)

	s.db.Model(&models.User{}).Count(&totalUsers)
	s.db.Model(&models.Product{}).Count(&totalProducts)
	s.db.Model(&models.Order{}).Where("status = ?", models.OrderStatusCompleted).Count(&totalOrders)
	s.db.Model(&models.GeneratedDocument{}).Count(&totalDocuments)
	s.db.Model(&models.Review{}).Count(&totalReviews)
	s.db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusCompleted).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&totalRevenue)

	var recentOrders []models.Order
	if err := s.db.Preload("Items").
		Order("created_at DESC").Limit(10).
		Find(&recentOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recent orders: %w", err)
	}

	var recentFeedback []models.Feedback
	if err := s.db.Order("created_at DESC").Limit(10).
		Find(&recentFeedback).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recent feedback: %w", err)
	}

	return map[string]interface{}{
		"totals": map[string]interface{}{
			"users":               totalUsers,
			"products":            totalProducts,
			"completed_orders":    totalOrders,
			"generated_documents": totalDocuments,
			"reviews":             totalReviews,
			"revenue":             totalRevenue,
		},
		"recent_orders":   recentOrders,
		"recent_feedback": recentFeedback,
	}, nil
}

// GetUsers lists accounts for the admin dashboard.
func (s *DashboardService) GetUsers(params utils.PaginationParams) ([]models.User, int64, error) {
	query := s.db.Model(&models.User{})

	if params.Search != "" {
		searchTerm := "%" + params.Search + "%"
		query = query.Where("username ILIKE ? OR email ILIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	allowedSortFields := []string{"created_at", "username", "email", "last_login_at"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch users: %w", err)
	}

	return users, total, nil
}

// GetRevenueSeries returns daily completed-order revenue for the last n days.
func (s *DashboardService) GetRevenueSeries(days int) ([]map[string]interface{}, error) {
	if days <= 0 {
		days = 30
	}

	var rows []struct {
		Day     time.Time
		Revenue float64
		Orders  int64
	}

	since := time.Now().AddDate(0, 0, -days)
	if err := s.db.Model(&models.Order{}).
		Where("status = ? AND created_at >= ?", models.OrderStatusCompleted, since).
		Select("DATE_TRUNC('day', created_at) AS day, SUM(total_amount) AS revenue, COUNT(*) AS orders").
		Group("day").Order("day ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch revenue series: %w", err)
	}

	series := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		series = append(series, map[string]interface{}{
			"day":     row.Day.Format("2006-01-02"),
			"revenue": row.Revenue,
			"orders":  row.Orders,
		})
	}

	return series, nil
}

// GetGenerationStatus reports catalog generation coverage: which long-form
// products have documents in the store and which are still pending.
func (s *DashboardService) GetGenerationStatus() (map[string]interface{}, error) {
	var products []models.Product
	if err := s.db.Where("has_static_content = ?", true).
		Order("position ASC").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	var generatedIDs []string
	if err := s.db.Model(&models.GeneratedDocument{}).
		Pluck("product_id", &generatedIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch generated ids: %w", err)
	}

	generated := make(map[string]bool, len(generatedIDs))
	for _, id := range generatedIDs {
		generated[id] = true
	}

	var ready, pending []string
	for _, p := range products {
		if generated[p.ID] {
			ready = append(ready, p.ID)
		} else {
			pending = append(pending, p.ID)
		}
	}

	return map[string]interface{}{
		"eligible": len(products),
		"ready":    ready,
		"pending":  pending,
	}, nil
}
