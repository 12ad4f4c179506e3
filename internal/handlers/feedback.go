// internal/handlers/feedback.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/elevendocs/elevendocs-backend/internal/services"
	"github.com/elevendocs/elevendocs-backend/internal/utils"
)

type FeedbackHandler struct {
	feedbackService *services.FeedbackService
}

func NewFeedbackHandler(feedbackService *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
	}
}

// POST /feedback
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	var req services.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	feedback, err := h.feedbackService.Submit(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"feedback": feedback,
	})
}

// GET /admin/feedback
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	entries, total, err := h.feedbackService.List(params)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch feedback")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(entries, total, params))
}
