// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"gorm.io/gorm"

	"github.com/elevendocs/elevendocs-backend/internal/config"
	"github.com/elevendocs/elevendocs-backend/internal/models"
	"github.com/elevendocs/elevendocs-backend/internal/utils"
)

type OrderService struct {
	db             *gorm.DB
	config         *config.Config
	contentService *ContentService
}

type CheckoutRequest struct {
	ProductIDs []string `json:"product_ids" validate:"required,min=1"`
}

type CheckoutResponse struct {
	OrderID      uuid.UUID `json:"order_id"`
	ClientSecret string    `json:"client_secret"`
	PaymentID    string    `json:"payment_id"`
	Amount       float64   `json:"amount"`
	Status       string    `json:"status"`
}

type ConfirmOrderRequest struct {
	OrderID         uuid.UUID `json:"order_id" validate:"required"`
	PaymentIntentID string    `json:"payment_intent_id" validate:"required"`
}

func NewOrderService(db *gorm.DB, config *config.Config, contentService *ContentService) *OrderService {
	// Initialize Stripe
	stripe.Key = config.Payment.StripeSecretKey

	return &OrderService{
		db:             db,
		config:         config,
		contentService: contentService,
	}
}

// Checkout records a pending order for the given products and opens a Stripe
// PaymentIntent for the total.
func (s *OrderService) Checkout(userID uuid.UUID, req *CheckoutRequest) (*CheckoutResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	var products []models.Product
	if err := s.db.Where("id IN ?", req.ProductIDs).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	if len(products) != len(req.ProductIDs) {
		return nil, errors.New("one or more products not found")
	}

	order := &models.Order{
		UserID:          user.ID,
		UserDisplayName: user.Username,
		UserEmail:       user.Email,
		Status:          models.OrderStatusPending,
	}
	for _, p := range products {
		order.TotalAmount += p.Price
		order.Items = append(order.Items, models.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Category:  string(p.Category),
		})
	}

	if err := s.db.Create(order).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Convert amount to cents for Stripe
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(order.TotalAmount * 100)),
		Currency: stripe.String("usd"),
	}
	params.AddMetadata("order_id", order.ID.String())
	params.AddMetadata("user_id", user.ID.String())

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	s.db.Model(order).UpdateColumn("payment_ref", pi.ID)

	return &CheckoutResponse{
		OrderID:      order.ID,
		ClientSecret: pi.ClientSecret,
		PaymentID:    pi.ID,
		Amount:       order.TotalAmount,
		Status:       string(pi.Status),
	}, nil
}

// ConfirmOrder verifies the payment with Stripe, completes the order, appends
// the items to the buyer's purchase history, and kicks off content generation
// for each purchased product in the background.
func (s *OrderService) ConfirmOrder(userID uuid.UUID, req *ConfirmOrderRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var order models.Order
	if err := s.db.Preload("Items").
		First(&order, "id = ? AND user_id = ?", req.OrderID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if order.Status == models.OrderStatusCompleted {
		return &order, nil
	}

	pi, err := paymentintent.Get(req.PaymentIntentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		now := time.Now()
		order.Status = models.OrderStatusCompleted
		order.ProcessedAt = &now
		order.PaymentRef = pi.ID

	case stripe.PaymentIntentStatusRequiresAction, stripe.PaymentIntentStatusRequiresConfirmation:
		order.Status = models.OrderStatusPending

	default:
		order.Status = models.OrderStatusFailed
	}

	if err := s.db.Save(&order).Error; err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	if order.Status == models.OrderStatusCompleted {
		if err := s.appendPurchaseHistory(&order); err != nil {
			// The order itself succeeded; log and move on.
			logrus.WithError(err).WithField("order_id", order.ID).
				Error("failed to append purchase history")
		}
		s.warmContent(&order)
	}

	return &order, nil
}

func (s *OrderService) GetOrder(userID, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").
		First(&order, "id = ? AND user_id = ?", orderID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

func (s *OrderService) GetOrderHistory(userID uuid.UUID, params utils.PaginationParams) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{}).
		Where("user_id = ?", userID).
		Preload("Items")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	allowedSortFields := []string{"created_at", "total_amount", "status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, total, nil
}

func (s *OrderService) appendPurchaseHistory(order *models.Order) error {
	var user models.User
	if err := s.db.First(&user, order.UserID).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	for _, item := range order.Items {
		if !user.HasPurchased(item.ProductID) {
			user.PurchaseHistory = append(user.PurchaseHistory, item.ProductID)
		}
	}

	return s.db.Model(&user).UpdateColumn("purchase_history", user.PurchaseHistory).Error
}

// warmContent starts generation for each purchased catalog product so the
// document is usually ready by the time the buyer opens it. Failures here are
// invisible to the buyer; the download surface retries on demand.
func (s *OrderService) warmContent(order *models.Order) {
	if s.contentService == nil {
		return
	}

	for _, item := range order.Items {
		var product models.Product
		if err := s.db.First(&product, "id = ?", item.ProductID).Error; err != nil {
			continue
		}
		p := product
		go s.contentService.EnsureGenerated(context.Background(), &p)
	}
}
