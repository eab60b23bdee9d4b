package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clinic-scribe/internal/api/middleware"
	"clinic-scribe/internal/api/v1/dto"
	"clinic-scribe/internal/api/v1/services"
)

// EmailHandler handles outbound patient email
type EmailHandler struct {
	service services.EmailService
}

// NewEmailHandler creates a new email handler
func NewEmailHandler(service services.EmailService) *EmailHandler {
	return &EmailHandler{service: service}
}

// Send handles POST /api/send-email
func (h *EmailHandler) Send(c *gin.Context) {
	var req dto.EmailRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.Send(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
