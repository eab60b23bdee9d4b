package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"clinic-scribe/internal/api/errors"
	"clinic-scribe/internal/api/middleware"
	"clinic-scribe/internal/api/v1/services"
)

// PatientHandler handles patient and insurance endpoints
type PatientHandler struct {
	service services.PatientService
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(service services.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

// List handles GET /api/patients
func (h *PatientHandler) List(c *gin.Context) {
	patients, err := h.service.ListPatients(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, patients)
}

// Get handles GET /api/patients/:id
func (h *PatientHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("Invalid patient ID"))
		return
	}

	patient, err := h.service.GetPatient(c.Request.Context(), id)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

// ListInsurances handles GET /api/insurances
func (h *PatientHandler) ListInsurances(c *gin.Context) {
	insurances, err := h.service.ListInsurances(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, insurances)
}
