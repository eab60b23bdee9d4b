package routes

import (
	"github.com/gin-gonic/gin"

	"clinic-scribe/internal/api/v1/handlers"
	"clinic-scribe/internal/api/v1/services"
)

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	PatientService       services.PatientService
	AppointmentService   services.AppointmentService
	TranscriptionService services.TranscriptionService
	EncounterService     services.EncounterService
	EmailService         services.EmailService
}

// RegisterRoutes wires the API routes. Paths match the original frontend
// contract: transcription lives at the root, everything else under /api.
func RegisterRoutes(router *gin.Engine, container *ServiceContainer) {
	transcriptionHandler := handlers.NewTranscriptionHandler(container.TranscriptionService)
	router.POST("/transcribe", transcriptionHandler.Transcribe)

	api := router.Group("/api")
	{
		patientHandler := handlers.NewPatientHandler(container.PatientService)
		appointmentHandler := handlers.NewAppointmentHandler(container.AppointmentService)

		patients := api.Group("/patients")
		{
			patients.GET("", patientHandler.List)
			patients.GET("/:id", patientHandler.Get)
			patients.GET("/:id/current-appointment", appointmentHandler.CurrentForPatient)
		}

		api.GET("/insurances", patientHandler.ListInsurances)

		appointments := api.Group("/appointments")
		{
			appointments.GET("", appointmentHandler.List)
			appointments.GET("/active", appointmentHandler.Active)
		}

		api.GET("/debug/appointments", appointmentHandler.Debug)

		encounterHandler := handlers.NewEncounterHandler(container.EncounterService)
		api.POST("/encounter-summary", encounterHandler.Generate)

		emailHandler := handlers.NewEmailHandler(container.EmailService)
		api.POST("/send-email", emailHandler.Send)
	}
}
