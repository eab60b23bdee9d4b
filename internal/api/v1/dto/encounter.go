package dto

import (
	"fmt"
	"strings"

	"clinic-scribe/internal/api/errors"
)

// EncounterSummaryRequest asks for a structured note from a transcription.
// The transcription field accepts either a diarized object with segments or
// a plain {"text": ...} object, matching what /transcribe returns.
type EncounterSummaryRequest struct {
	Transcription map[string]interface{} `json:"transcription" binding:"required"`
	PatientID     int                    `json:"patient_id" binding:"required"`
	AppointmentID *int                   `json:"appointment_id,omitempty"`
}

// Validate performs domain-specific validation
func (r *EncounterSummaryRequest) Validate() error {
	validationErrors := make(map[string]string)

	if r.PatientID <= 0 {
		validationErrors["patient_id"] = "must be a positive patient ID"
	}
	if len(r.Transcription) == 0 {
		validationErrors["transcription"] = "is required"
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Invalid encounter summary request", validationErrors)
	}
	return nil
}

// TranscriptText flattens the transcription payload to prompt text.
// Diarized segments become "SPEAKER: text" lines; a bare text field is used
// as-is.
func (r *EncounterSummaryRequest) TranscriptText() string {
	if segments, ok := r.Transcription["segments"].([]interface{}); ok {
		lines := make([]string, 0, len(segments))
		for _, raw := range segments {
			seg, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			speaker, _ := seg["speaker"].(string)
			if speaker == "" {
				speaker = "Unknown"
			}
			text, _ := seg["text"].(string)
			lines = append(lines, fmt.Sprintf("%s: %s", speaker, text))
		}
		return strings.Join(lines, "\n")
	}

	if text, ok := r.Transcription["text"].(string); ok {
		return text
	}
	return fmt.Sprintf("%v", r.Transcription)
}
