package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clinic-scribe/internal/api/errors"
	"clinic-scribe/internal/api/middleware"
	"clinic-scribe/internal/api/v1/dto"
	"clinic-scribe/internal/api/v1/services"
)

// TranscriptionHandler handles the audio transcription endpoint
type TranscriptionHandler struct {
	service services.TranscriptionService
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(service services.TranscriptionService) *TranscriptionHandler {
	return &TranscriptionHandler{service: service}
}

// Transcribe handles POST /transcribe.
// Accepts a multipart audio upload with optional patient_id and
// appointment_id query parameters and returns the diarized transcript.
func (h *TranscriptionHandler) Transcribe(c *gin.Context) {
	var query dto.TranscribeQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("No file uploaded"))
		return
	}
	defer file.Close()

	upload := &services.TranscribeUpload{
		FileName:      header.Filename,
		ContentType:   header.Header.Get("Content-Type"),
		Size:          header.Size,
		Audio:         file,
		PatientID:     query.PatientID,
		AppointmentID: query.AppointmentID,
	}

	response, err := h.service.Transcribe(c.Request.Context(), upload)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
