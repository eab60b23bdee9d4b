package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"clinic-scribe/internal/api/errors"
	"clinic-scribe/internal/api/middleware"
	"clinic-scribe/internal/api/v1/services"
)

// AppointmentHandler handles schedule endpoints
type AppointmentHandler struct {
	service services.AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(service services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

// List handles GET /api/appointments
func (h *AppointmentHandler) List(c *gin.Context) {
	appointments, err := h.service.ListAppointments(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointments)
}

// Active handles GET /api/appointments/active.
// Responds with an empty object when no appointment window contains now, so
// polling clients always get consistent JSON.
func (h *AppointmentHandler) Active(c *gin.Context) {
	appointment, err := h.service.ActiveAppointment(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	if appointment == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// CurrentForPatient handles GET /api/patients/:id/current-appointment.
// Responds with null when the patient has no upcoming booked appointment.
func (h *AppointmentHandler) CurrentForPatient(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("Invalid patient ID"))
		return
	}

	appointment, err := h.service.CurrentAppointmentForPatient(c.Request.Context(), id)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// Debug handles GET /api/debug/appointments
func (h *AppointmentHandler) Debug(c *gin.Context) {
	snapshot, err := h.service.DebugSnapshot(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}
