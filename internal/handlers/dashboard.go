// internal/handlers/dashboard.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/elevendocs/elevendocs-backend/internal/services"
	"github.com/elevendocs/elevendocs-backend/internal/utils"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GET /admin/dashboard
func (h *DashboardHandler) GetOverview(c *gin.Context) {
	overview, err := h.dashboardService.GetOverview()
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch dashboard data")
		return
	}

	utils.SuccessResponse(c, overview)
}

// GET /admin/dashboard/revenue
func (h *DashboardHandler) GetRevenueSeries(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	series, err := h.dashboardService.GetRevenueSeries(days)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch revenue data")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"series": series,
	})
}

// GET /admin/users
func (h *DashboardHandler) GetUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.dashboardService.GetUsers(params)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch users")
		return
	}

	result := utils.CreatePaginationResult(users, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /admin/dashboard/generation
func (h *DashboardHandler) GetGenerationStatus(c *gin.Context) {
	status, err := h.dashboardService.GetGenerationStatus()
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch generation status")
		return
	}

	utils.SuccessResponse(c, status)
}
