package model

import "time"

// TranscriptSegment is one diarized span of the recording.
type TranscriptSegment struct {
	ID      int     `json:"id"`
	Speaker string  `json:"speaker"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
}

// Transcript is a persisted transcription attempt, successful or failed.
type Transcript struct {
	ID            int                 `json:"id"`
	PatientID     *int                `json:"patient_id"`
	AppointmentID *int                `json:"appointment_id"`
	FileName      string              `json:"file_name"`
	FileSize      int64               `json:"file_size"`
	StorageKey    string              `json:"storage_key,omitempty"`
	Provider      string              `json:"provider"`
	ModelName     string              `json:"model_name"`
	Language      string              `json:"language,omitempty"`
	Text          string              `json:"text"`
	Segments      []TranscriptSegment `json:"segments"`
	DurationSec   float64             `json:"duration_sec"`
	HasError      int                 `json:"has_error"`
	ErrorMessage  string              `json:"error_message,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}
