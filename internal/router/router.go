// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/elevendocs/elevendocs-backend/internal/ai"
	"github.com/elevendocs/elevendocs-backend/internal/config"
	"github.com/elevendocs/elevendocs-backend/internal/content"
	"github.com/elevendocs/elevendocs-backend/internal/handlers"
	"github.com/elevendocs/elevendocs-backend/internal/middleware"
	"github.com/elevendocs/elevendocs-backend/internal/services"
	"github.com/elevendocs/elevendocs-backend/internal/utils"
	"github.com/elevendocs/elevendocs-backend/internal/worker"
)

// Initialize wires the service graph and routes. The returned background
// generator is started by main so its lifetime is tied to the process, not
// the router.
func Initialize(db *gorm.DB, cfg *config.Config, cache content.DeviceCache) (*gin.Engine, *worker.BackgroundGenerator) {
	// Initialize services
	store := content.NewPostgresStore(db)
	generator := ai.NewOpenAIGenerator(cfg.AI)

	archiveService, err := services.NewArchiveService(cfg)
	if err != nil {
		logrus.WithError(err).Warn("archive service unavailable, documents will not be mirrored")
		archiveService = nil
	}

	var archiver services.Archiver
	if archiveService != nil {
		archiver = archiveService
	}

	authService := services.NewAuthService(db, cfg)
	productService := services.NewProductService(db)
	contentService := services.NewContentService(store, cache, generator, archiver, cfg.AI.RequireMarker)
	poller := services.NewContentPoller(store, cache)
	orderService := services.NewOrderService(db, cfg, contentService)
	reviewService := services.NewReviewService(db, productService)
	feedbackService := services.NewFeedbackService(db)
	dashboardService := services.NewDashboardService(db)

	backgroundGenerator := worker.NewBackgroundGenerator(productService, contentService, cache, cfg.Generator.Interval)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	contentHandler := handlers.NewContentHandler(productService, contentService, poller, authService, cfg)
	orderHandler := handlers.NewOrderHandler(orderService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Product routes
		products := v1.Group("/products")
		{
			products.GET("", middleware.OptionalAuth(), productHandler.GetProducts)
			products.GET("/popular", productHandler.GetPopularProducts)
			products.GET("/:id", middleware.OptionalAuth(), productHandler.GetProduct)
			products.GET("/:id/reviews", reviewHandler.GetProductReviews)
			products.POST("/:id/reviews", middleware.AuthRequired(), reviewHandler.CreateReview)
		}

		// Category routes
		v1.GET("/categories", productHandler.GetCategories)

		// Content routes
		contentRoutes := v1.Group("/content")
		contentRoutes.Use(middleware.AuthRequired())
		{
			contentRoutes.GET("/:id", contentHandler.GetContent)
			contentRoutes.POST("/:id/generate", middleware.GenerateRateLimit(), contentHandler.GenerateContent)
			contentRoutes.POST("/generate", middleware.GenerateRateLimit(), contentHandler.GenerateAdHoc)
		}

		// Order routes
		orders := v1.Group("/orders")
		orders.Use(middleware.AuthRequired())
		{
			orders.POST("/checkout", orderHandler.Checkout)
			orders.POST("/confirm", orderHandler.ConfirmOrder)
			orders.GET("", orderHandler.GetOrderHistory)
			orders.GET("/:id", orderHandler.GetOrder)
		}

		// Feedback routes
		v1.POST("/feedback", feedbackHandler.SubmitFeedback)

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			dashboard := admin.Group("/dashboard")
			{
				dashboard.GET("", dashboardHandler.GetOverview)
				dashboard.GET("/revenue", dashboardHandler.GetRevenueSeries)
				dashboard.GET("/generation", dashboardHandler.GetGenerationStatus)
			}

			admin.GET("/users", dashboardHandler.GetUsers)
			admin.GET("/feedback", feedbackHandler.ListFeedback)
		}
	}

	return r, backgroundGenerator
}
