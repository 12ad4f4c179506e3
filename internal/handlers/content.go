// internal/handlers/content.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elevendocs/elevendocs-backend/internal/ai"
	"github.com/elevendocs/elevendocs-backend/internal/config"
	"github.com/elevendocs/elevendocs-backend/internal/models"
	"github.com/elevendocs/elevendocs-backend/internal/services"
	"github.com/elevendocs/elevendocs-backend/internal/utils"
)

type ContentHandler struct {
	productService *services.ProductService
	contentService *services.ContentService
	poller         *services.ContentPoller
	authService    *services.AuthService
	cfg            *config.Config
}

func NewContentHandler(
	productService *services.ProductService,
	contentService *services.ContentService,
	poller *services.ContentPoller,
	authService *services.AuthService,
	cfg *config.Config,
) *ContentHandler {
	return &ContentHandler{
		productService: productService,
		contentService: contentService,
		poller:         poller,
		authService:    authService,
		cfg:            cfg,
	}
}

// GET /content/:id
// Waits for the document to become available, polling the device cache and
// the content store. Responds 202 when it does not appear within the attempt
// budget so the client can retry.
func (h *ContentHandler) GetContent(c *gin.Context) {
	productID := c.Param("id")

	if !h.authorizeAccess(c, productID) {
		return
	}

	doc, err := h.poller.Await(
		c.Request.Context(),
		productID,
		h.cfg.Generator.PollMaxAttempts,
		h.cfg.Generator.PollInterval,
	)
	if err != nil {
		if err == services.ErrNotReady {
			utils.AcceptedResponse(c, gin.H{
				"status":  "generating",
				"message": "Your document is still being generated. Please try again shortly.",
			})
			return
		}
		// Context cancellation: the client went away.
		c.Abort()
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product_id": productID,
		"title":      doc.Title,
		"content":    doc.Content,
	})
}

// POST /content/:id/generate
// Explicit, user-triggered generation. Unlike the background path, failures
// surface here as classified messages the storefront can show.
func (h *ContentHandler) GenerateContent(c *gin.Context) {
	productID := c.Param("id")

	if !h.authorizeAccess(c, productID) {
		return
	}

	product, err := h.productService.GetProduct(productID)
	if err != nil {
		utils.NotFoundResponse(c, "Product")
		return
	}

	doc, err := h.contentService.GenerateNow(c.Request.Context(), product)
	if err != nil {
		h.generationErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product_id": productID,
		"title":      doc.Title,
		"content":    doc.Content,
	})
}

// POST /content/generate
// Ad hoc generation from a free-form prompt, outside the catalog.
func (h *ContentHandler) GenerateAdHoc(c *gin.Context) {
	var req struct {
		Prompt string `json:"prompt" validate:"required,min=10,max=4000"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, doc, err := h.contentService.GenerateAdHoc(c.Request.Context(), req.Prompt)
	if err != nil {
		h.generationErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"product": product,
		"title":   doc.Title,
		"content": doc.Content,
	})
}

// authorizeAccess enforces the purchase gate: buyers see documents only for
// products in their purchase history. Admins bypass the gate.
func (h *ContentHandler) authorizeAccess(c *gin.Context, productID string) bool {
	userType, _ := c.Get("user_type")
	if userType == string(models.UserTypeAdmin) {
		return true
	}

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return false
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		utils.UnauthorizedResponse(c, "")
		return false
	}

	if !user.HasPurchased(productID) {
		utils.ForbiddenResponse(c, "Purchase this product to access its content")
		return false
	}

	return true
}

func (h *ContentHandler) generationErrorResponse(c *gin.Context, err error) {
	kind, message := ai.Classify(err)

	switch kind {
	case ai.KindOverloaded:
		utils.ServiceUnavailableResponse(c, message)
	case ai.KindInvalidCredential, ai.KindCompromisedCredential:
		utils.ErrorResponse(c, http.StatusBadGateway, "UPSTREAM_ERROR", message, nil)
	default:
		utils.InternalErrorResponse(c, message)
	}
}
