package services_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apierrors "clinic-scribe/internal/api/errors"
	"clinic-scribe/internal/api/v1/dto"
	"clinic-scribe/internal/api/v1/services"
	"clinic-scribe/internal/app/model"
	"clinic-scribe/internal/app/testutil"
)

func summaryRequest() *dto.EncounterSummaryRequest {
	return &dto.EncounterSummaryRequest{
		PatientID: 4,
		Transcription: map[string]interface{}{
			"text": "Patient reports mild headaches for two weeks.",
		},
	}
}

func TestGenerateSummaryWithoutSummarizer(t *testing.T) {
	dao := new(testutil.MockClinicDAO)
	svc := services.NewEncounterService(nil, dao, discardLogger())

	_, err := svc.GenerateSummary(context.Background(), summaryRequest())

	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierrors.KindServiceUnavailable, apiErr.Kind)
}

func TestGenerateSummary(t *testing.T) {
	dao := new(testutil.MockClinicDAO)
	dao.On("GetPatientByID", 4).Return(&model.Patient{ID: 4, FirstName: "Sarah", LastName: "Johnson"}, nil)
	dao.On("SaveEncounter", mock.AnythingOfType("*model.EncounterSummary")).Return(nil)

	summarizer := new(testutil.MockSummarizer)
	summarizer.On("Summarize", mock.Anything, "Sarah Johnson", mock.AnythingOfType("string")).Return(&model.EncounterSummary{
		VisitSummary:      "Two weeks of mild headaches.",
		FollowUpQuestions: []string{"Any visual changes?"},
	}, nil)

	svc := services.NewEncounterService(summarizer, dao, discardLogger())

	summary, err := svc.GenerateSummary(context.Background(), summaryRequest())
	require.NoError(t, err)
	assert.Equal(t, "Two weeks of mild headaches.", summary.VisitSummary)
	assert.Equal(t, 4, summary.PatientID)
	assert.False(t, summary.GeneratedAt.IsZero())
	dao.AssertExpectations(t)
}

func TestGenerateSummaryUnknownPatient(t *testing.T) {
	dao := new(testutil.MockClinicDAO)
	dao.On("GetPatientByID", 4).Return(nil, sql.ErrNoRows)
	dao.On("SaveEncounter", mock.Anything).Return(nil)

	summarizer := new(testutil.MockSummarizer)
	summarizer.On("Summarize", mock.Anything, "Patient", mock.AnythingOfType("string")).Return(&model.EncounterSummary{
		VisitSummary: "Summary for unregistered patient.",
	}, nil)

	svc := services.NewEncounterService(summarizer, dao, discardLogger())

	summary, err := svc.GenerateSummary(context.Background(), summaryRequest())
	require.NoError(t, err)
	assert.Equal(t, "Summary for unregistered patient.", summary.VisitSummary)
	summarizer.AssertExpectations(t)
}

func TestGenerateSummaryUpstreamFailure(t *testing.T) {
	dao := new(testutil.MockClinicDAO)
	dao.On("GetPatientByID", 4).Return(&model.Patient{ID: 4, FirstName: "Sarah", LastName: "Johnson"}, nil)

	summarizer := new(testutil.MockSummarizer)
	summarizer.On("Summarize", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("rate limited"))

	svc := services.NewEncounterService(summarizer, dao, discardLogger())

	_, err := svc.GenerateSummary(context.Background(), summaryRequest())

	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierrors.KindUpstream, apiErr.Kind)
	dao.AssertNotCalled(t, "SaveEncounter", mock.Anything)
}
