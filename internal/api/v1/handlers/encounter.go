package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clinic-scribe/internal/api/middleware"
	"clinic-scribe/internal/api/v1/dto"
	"clinic-scribe/internal/api/v1/services"
)

// EncounterHandler handles encounter summary generation
type EncounterHandler struct {
	service services.EncounterService
}

// NewEncounterHandler creates a new encounter handler
func NewEncounterHandler(service services.EncounterService) *EncounterHandler {
	return &EncounterHandler{service: service}
}

// Generate handles POST /api/encounter-summary
func (h *EncounterHandler) Generate(c *gin.Context) {
	var req dto.EncounterSummaryRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	summary, err := h.service.GenerateSummary(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
