package services_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apierrors "clinic-scribe/internal/api/errors"
	"clinic-scribe/internal/api/v1/services"
	"clinic-scribe/internal/app/api"
	"clinic-scribe/internal/app/model"
	"clinic-scribe/internal/app/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
}

func TestTranscribeWithoutProvider(t *testing.T) {
	dao := new(testutil.MockClinicDAO)
	svc := services.NewTranscriptionService(nil, dao, nil, discardLogger())

	_, err := svc.Transcribe(context.Background(), &services.TranscribeUpload{
		FileName: "visit.webm",
		Audio:    strings.NewReader("audio"),
	})

	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierrors.KindServiceUnavailable, apiErr.Kind)
}

func TestTranscribeEmptyUpload(t *testing.T) {
	dao := new(testutil.MockClinicDAO)
	transcriber := new(testutil.MockTranscriber)
	svc := services.NewTranscriptionService(transcriber, dao, nil, discardLogger())

	_, err := svc.Transcribe(context.Background(), &services.TranscribeUpload{
		FileName: "visit.webm",
		Audio:    strings.NewReader(""),
	})

	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierrors.KindBadRequest, apiErr.Kind)
	transcriber.AssertNotCalled(t, "Transcribe", mock.Anything, mock.Anything)
}

func TestTranscribeSuccess(t *testing.T) {
	dao := new(testutil.MockClinicDAO)
	dao.On("SaveTranscript", mock.AnythingOfType("*model.Transcript")).Run(func(args mock.Arguments) {
		args.Get(0).(*model.Transcript).ID = 42
	}).Return(nil)

	transcriber := new(testutil.MockTranscriber)
	transcriber.On("Name").Return("openai")
	transcriber.On("Transcribe", mock.Anything, mock.AnythingOfType("*api.TranscriptionRequest")).Return(&api.TranscriptionResult{
		Text:        "Hello, how are you feeling today?",
		Language:    "en",
		DurationSec: 12.5,
		Model:       "gpt-4o-transcribe-diarize",
		Segments: []model.TranscriptSegment{
			{ID: 0, Speaker: "A", Start: 0, End: 3.2, Text: "Hello, how are you feeling today?"},
		},
	}, nil)

	svc := services.NewTranscriptionService(transcriber, dao, nil, discardLogger())

	patientID := 4
	resp, err := svc.Transcribe(context.Background(), &services.TranscribeUpload{
		FileName:  "visit.webm",
		Audio:     strings.NewReader("fake audio bytes"),
		PatientID: &patientID,
	})

	require.NoError(t, err)
	assert.Equal(t, 42, resp.ID)
	assert.Equal(t, "Hello, how are you feeling today?", resp.Text)
	assert.Equal(t, "openai", resp.Provider)
	assert.Len(t, resp.Segments, 1)
	require.NotNil(t, resp.PatientID)
	assert.Equal(t, 4, *resp.PatientID)
	dao.AssertExpectations(t)
}

func TestTranscribeFailureIsRecorded(t *testing.T) {
	var saved *model.Transcript
	dao := new(testutil.MockClinicDAO)
	dao.On("SaveTranscript", mock.AnythingOfType("*model.Transcript")).Run(func(args mock.Arguments) {
		saved = args.Get(0).(*model.Transcript)
	}).Return(nil)

	transcriber := new(testutil.MockTranscriber)
	transcriber.On("Name").Return("openai")
	transcriber.On("Transcribe", mock.Anything, mock.Anything).Return(nil, errors.New("upstream timeout"))

	svc := services.NewTranscriptionService(transcriber, dao, nil, discardLogger())

	_, err := svc.Transcribe(context.Background(), &services.TranscribeUpload{
		FileName: "visit.webm",
		Audio:    strings.NewReader("fake audio bytes"),
	})

	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierrors.KindUpstream, apiErr.Kind)

	require.NotNil(t, saved, "failed attempts are persisted")
	assert.Equal(t, 1, saved.HasError)
	assert.Contains(t, saved.ErrorMessage, "upstream timeout")
}

func TestTranscribeArchiveFailureIsNonFatal(t *testing.T) {
	dao := new(testutil.MockClinicDAO)
	dao.On("SaveTranscript", mock.Anything).Return(nil)

	transcriber := new(testutil.MockTranscriber)
	transcriber.On("Name").Return("openai")
	transcriber.On("Transcribe", mock.Anything, mock.Anything).Return(&api.TranscriptionResult{Text: "ok"}, nil)

	storage := new(testutil.MockStorageService)
	storage.On("ArchiveRecording", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("bucket unreachable"))

	svc := services.NewTranscriptionService(transcriber, dao, storage, discardLogger())

	resp, err := svc.Transcribe(context.Background(), &services.TranscribeUpload{
		FileName: "visit.webm",
		Audio:    strings.NewReader("fake audio bytes"),
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
}
