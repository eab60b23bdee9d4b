package dto

import (
	"time"

	"clinic-scribe/internal/app/model"
)

// TranscribeQuery carries the optional association parameters on /transcribe.
type TranscribeQuery struct {
	PatientID     *int `form:"patient_id"`
	AppointmentID *int `form:"appointment_id"`
}

// TranscribeResponse is the diarized transcript plus request metadata,
// shaped like the upstream diarized payload with association fields added.
type TranscribeResponse struct {
	ID            int                       `json:"id"`
	Text          string                    `json:"text"`
	Segments      []model.TranscriptSegment `json:"segments"`
	Language      string                    `json:"language,omitempty"`
	Duration      float64                   `json:"duration,omitempty"`
	Provider      string                    `json:"provider"`
	PatientID     *int                      `json:"patient_id"`
	AppointmentID *int                      `json:"appointment_id"`
	Timestamp     time.Time                 `json:"timestamp"`
}

// ToTranscribeResponse converts a persisted transcript to its API shape.
func ToTranscribeResponse(t *model.Transcript) TranscribeResponse {
	segments := t.Segments
	if segments == nil {
		segments = []model.TranscriptSegment{}
	}
	return TranscribeResponse{
		ID:            t.ID,
		Text:          t.Text,
		Segments:      segments,
		Language:      t.Language,
		Duration:      t.DurationSec,
		Provider:      t.Provider,
		PatientID:     t.PatientID,
		AppointmentID: t.AppointmentID,
		Timestamp:     t.CreatedAt,
	}
}
