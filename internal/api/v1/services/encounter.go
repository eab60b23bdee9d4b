package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	apierrors "clinic-scribe/internal/api/errors"
	"clinic-scribe/internal/api/v1/dto"
	"clinic-scribe/internal/app/api/openai/chat"
	"clinic-scribe/internal/app/model"
	"clinic-scribe/internal/app/repository"
)

// EncounterServiceImpl implements EncounterService
type EncounterServiceImpl struct {
	summarizer chat.Summarizer
	repo       repository.ClinicDAO
	logger     *slog.Logger
}

// NewEncounterService creates a new encounter summary service
func NewEncounterService(summarizer chat.Summarizer, repo repository.ClinicDAO, logger *slog.Logger) EncounterService {
	return &EncounterServiceImpl{
		summarizer: summarizer,
		repo:       repo,
		logger:     logger,
	}
}

// GenerateSummary produces and persists a structured encounter summary.
func (s *EncounterServiceImpl) GenerateSummary(ctx context.Context, req *dto.EncounterSummaryRequest) (*model.EncounterSummary, error) {
	if s.summarizer == nil {
		return nil, apierrors.NewServiceUnavailableError("Summarization is not configured (set OPENAI_API_KEY)")
	}

	// An unknown patient does not fail the request; the summary is
	// generated with a generic name.
	patientName := "Patient"
	patient, err := s.repo.GetPatientByID(req.PatientID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, apierrors.NewInternalError("Failed to load patient")
		}
		s.logger.Warn("Generating summary for unknown patient", "patient_id", req.PatientID)
	} else {
		patientName = patient.FullName()
	}

	summary, err := s.summarizer.Summarize(ctx, patientName, req.TranscriptText())
	if err != nil {
		s.logger.Error("Summarization failed", "error", err, "patient_id", req.PatientID)
		return nil, apierrors.NewUpstreamError("Error generating encounter summary: " + err.Error())
	}

	summary.PatientID = req.PatientID
	summary.AppointmentID = req.AppointmentID
	summary.GeneratedAt = time.Now().UTC()

	if err := s.repo.SaveEncounter(summary); err != nil {
		s.logger.Error("Failed to persist encounter summary", "error", err)
		return nil, apierrors.NewInternalError("Failed to persist encounter summary")
	}

	return summary, nil
}
