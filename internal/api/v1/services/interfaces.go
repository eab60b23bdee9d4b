package services

import (
	"context"
	"io"

	"clinic-scribe/internal/api/v1/dto"
	"clinic-scribe/internal/app/model"
)

// PatientService defines patient and insurance lookups.
type PatientService interface {
	ListPatients(ctx context.Context) ([]model.Patient, error)
	GetPatient(ctx context.Context, id int) (*model.Patient, error)
	ListInsurances(ctx context.Context) ([]model.Insurance, error)
}

// AppointmentService defines schedule queries, including the active-window
// lookup driving the consultation UI.
type AppointmentService interface {
	ListAppointments(ctx context.Context) ([]model.Appointment, error)
	ActiveAppointment(ctx context.Context) (*model.Appointment, error)
	CurrentAppointmentForPatient(ctx context.Context, patientID int) (*model.Appointment, error)
	DebugSnapshot(ctx context.Context) (*dto.DebugAppointmentsResponse, error)
}

// TranscribeUpload carries one uploaded recording into the service.
type TranscribeUpload struct {
	FileName      string
	ContentType   string
	Size          int64
	Audio         io.Reader
	PatientID     *int
	AppointmentID *int
}

// TranscriptionService defines the audio-to-transcript operation.
type TranscriptionService interface {
	Transcribe(ctx context.Context, upload *TranscribeUpload) (*dto.TranscribeResponse, error)
}

// EncounterService generates structured encounter summaries.
type EncounterService interface {
	GenerateSummary(ctx context.Context, req *dto.EncounterSummaryRequest) (*model.EncounterSummary, error)
}

// EmailService sends patient email.
type EmailService interface {
	Send(ctx context.Context, req *dto.EmailRequest) (*dto.EmailResponse, error)
}

// StorageService archives uploaded recordings.
type StorageService interface {
	ArchiveRecording(ctx context.Context, patientID *int, filename, contentType string, data []byte) (string, error)
}
