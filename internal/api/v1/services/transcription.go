package services

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"time"

	apierrors "clinic-scribe/internal/api/errors"
	"clinic-scribe/internal/api/v1/dto"
	"clinic-scribe/internal/app/api"
	"clinic-scribe/internal/app/model"
	"clinic-scribe/internal/app/repository"
)

// MaxUploadBytes bounds one recording upload (an hour of webm audio is far
// below this).
const MaxUploadBytes = 200 << 20

// TranscriptionServiceImpl implements TranscriptionService
type TranscriptionServiceImpl struct {
	transcriber api.Transcriber
	repo        repository.ClinicDAO
	storage     StorageService
	logger      *slog.Logger
}

// NewTranscriptionService creates a new transcription service. storage may
// be nil when no object store is configured.
func NewTranscriptionService(
	transcriber api.Transcriber,
	repo repository.ClinicDAO,
	storage StorageService,
	logger *slog.Logger,
) TranscriptionService {
	return &TranscriptionServiceImpl{
		transcriber: transcriber,
		repo:        repo,
		storage:     storage,
		logger:      logger,
	}
}

// Transcribe forwards the upload to the transcription provider, archives the
// audio, and persists the transcript.
func (s *TranscriptionServiceImpl) Transcribe(ctx context.Context, upload *TranscribeUpload) (*dto.TranscribeResponse, error) {
	if s.transcriber == nil {
		return nil, apierrors.NewServiceUnavailableError("Transcription is not configured (set OPENAI_API_KEY)")
	}

	audio, err := io.ReadAll(io.LimitReader(upload.Audio, MaxUploadBytes+1))
	if err != nil {
		return nil, apierrors.NewInternalError("Failed to read uploaded audio")
	}
	if len(audio) == 0 {
		return nil, apierrors.NewBadRequestError("Uploaded audio file is empty")
	}
	if len(audio) > MaxUploadBytes {
		return nil, apierrors.NewBadRequestError("Uploaded audio file is too large")
	}

	s.logger.Info("Received audio file",
		"file_name", upload.FileName,
		"content_type", upload.ContentType,
		"size_bytes", len(audio),
		"patient_id", upload.PatientID,
		"appointment_id", upload.AppointmentID,
	)

	storageKey := s.archive(ctx, upload, audio)

	now := time.Now().UTC()
	transcript := &model.Transcript{
		PatientID:     upload.PatientID,
		AppointmentID: upload.AppointmentID,
		FileName:      upload.FileName,
		FileSize:      int64(len(audio)),
		StorageKey:    storageKey,
		Provider:      s.transcriber.Name(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	result, err := s.transcriber.Transcribe(ctx, &api.TranscriptionRequest{
		FileName:    upload.FileName,
		ContentType: upload.ContentType,
		Audio:       bytes.NewReader(audio),
	})
	if err != nil {
		transcript.HasError = 1
		transcript.ErrorMessage = err.Error()
		transcript.UpdatedAt = time.Now().UTC()
		if saveErr := s.repo.SaveTranscript(transcript); saveErr != nil {
			s.logger.Error("Failed to record transcription failure", "error", saveErr)
		}
		s.logger.Error("Transcription failed", "error", err)
		return nil, apierrors.NewUpstreamError("Transcription error: " + err.Error())
	}

	transcript.Text = result.Text
	transcript.Segments = result.Segments
	transcript.Language = result.Language
	transcript.DurationSec = result.DurationSec
	transcript.ModelName = result.Model
	transcript.UpdatedAt = time.Now().UTC()

	if err := s.repo.SaveTranscript(transcript); err != nil {
		s.logger.Error("Failed to persist transcript", "error", err)
		return nil, apierrors.NewInternalError("Failed to persist transcript")
	}

	s.logger.Info("Transcription successful",
		"transcript_id", transcript.ID,
		"segments", len(transcript.Segments),
		"duration_sec", transcript.DurationSec,
	)

	response := dto.ToTranscribeResponse(transcript)
	return &response, nil
}

// archive stores the raw recording when an object store is configured.
// Archive failures are logged, not fatal; the transcription still proceeds.
func (s *TranscriptionServiceImpl) archive(ctx context.Context, upload *TranscribeUpload, audio []byte) string {
	if s.storage == nil {
		return ""
	}

	key, err := s.storage.ArchiveRecording(ctx, upload.PatientID, upload.FileName, upload.ContentType, audio)
	if err != nil {
		s.logger.Warn("Failed to archive recording", "error", err)
		return ""
	}
	return key
}
