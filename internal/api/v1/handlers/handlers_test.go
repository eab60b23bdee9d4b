package handlers_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apierrors "clinic-scribe/internal/api/errors"
	"clinic-scribe/internal/api/middleware"
	"clinic-scribe/internal/api/v1/dto"
	v1routes "clinic-scribe/internal/api/v1/routes"
	"clinic-scribe/internal/api/v1/services"
	"clinic-scribe/internal/app/model"
	"clinic-scribe/internal/app/testutil"
)

func intPtr(v int) *int { return &v }

func testRouter(container *v1routes.ServiceContainer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler(logger))
	v1routes.RegisterRoutes(router, container)
	return router
}

func performRequest(router *gin.Engine, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	if body == nil {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListPatients(t *testing.T) {
	patientSvc := new(testutil.MockPatientService)
	patientSvc.On("ListPatients", mock.Anything).Return([]model.Patient{
		{ID: 1, FirstName: "Sarah", LastName: "Johnson"},
		{ID: 2, FirstName: "Michael", LastName: "Chen"},
	}, nil)

	router := testRouter(&v1routes.ServiceContainer{PatientService: patientSvc})
	w := performRequest(router, http.MethodGet, "/api/patients", nil, "")

	require.Equal(t, http.StatusOK, w.Code)

	var patients []model.Patient
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &patients))
	assert.Len(t, patients, 2)
	assert.Equal(t, "Sarah", patients[0].FirstName)
}

func TestGetPatientNotFound(t *testing.T) {
	patientSvc := new(testutil.MockPatientService)
	patientSvc.On("GetPatient", mock.Anything, 99).Return(nil, apierrors.NewNotFoundError("Patient"))

	router := testRouter(&v1routes.ServiceContainer{PatientService: patientSvc})
	w := performRequest(router, http.MethodGet, "/api/patients/99", nil, "")

	require.Equal(t, http.StatusNotFound, w.Code)

	var apiErr apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, apierrors.KindNotFound, apiErr.Kind)
	assert.NotEmpty(t, apiErr.RequestID)
}

func TestGetPatientInvalidID(t *testing.T) {
	router := testRouter(&v1routes.ServiceContainer{PatientService: new(testutil.MockPatientService)})
	w := performRequest(router, http.MethodGet, "/api/patients/abc", nil, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestActiveAppointmentEmptyObject(t *testing.T) {
	apptSvc := new(testutil.MockAppointmentService)
	apptSvc.On("ActiveAppointment", mock.Anything).Return(nil, nil)

	router := testRouter(&v1routes.ServiceContainer{AppointmentService: apptSvc})
	w := performRequest(router, http.MethodGet, "/api/appointments/active", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "{}", w.Body.String())
}

func TestActiveAppointmentFound(t *testing.T) {
	apptSvc := new(testutil.MockAppointmentService)
	apptSvc.On("ActiveAppointment", mock.Anything).Return(&model.Appointment{
		ID:           3,
		Status:       model.AppointmentStatusBooked,
		Start:        "2025-12-12T10:00:00",
		SlotDuration: 30,
		PatientID:    intPtr(7),
	}, nil)

	router := testRouter(&v1routes.ServiceContainer{AppointmentService: apptSvc})
	w := performRequest(router, http.MethodGet, "/api/appointments/active", nil, "")

	require.Equal(t, http.StatusOK, w.Code)

	var appt model.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &appt))
	assert.Equal(t, 3, appt.ID)
	require.NotNil(t, appt.PatientID)
	assert.Equal(t, 7, *appt.PatientID)
}

func TestCurrentAppointmentNull(t *testing.T) {
	apptSvc := new(testutil.MockAppointmentService)
	apptSvc.On("CurrentAppointmentForPatient", mock.Anything, 4).Return(nil, nil)

	router := testRouter(&v1routes.ServiceContainer{AppointmentService: apptSvc})
	w := performRequest(router, http.MethodGet, "/api/patients/4/current-appointment", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())
}

func TestTranscribeWithoutFile(t *testing.T) {
	router := testRouter(&v1routes.ServiceContainer{TranscriptionService: new(testutil.MockTranscriptionService)})

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.Close())

	w := performRequest(router, http.MethodPost, "/transcribe", &body, writer.FormDataContentType())

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No file uploaded")
}

func TestTranscribe(t *testing.T) {
	transcribeSvc := new(testutil.MockTranscriptionService)
	transcribeSvc.On("Transcribe", mock.Anything, mock.MatchedBy(func(u *services.TranscribeUpload) bool {
		return u.FileName == "visit.webm" && u.PatientID != nil && *u.PatientID == 4
	})).Return(&dto.TranscribeResponse{
		ID:       1,
		Text:     "Hello there.",
		Provider: "openai",
		Segments: []model.TranscriptSegment{},
	}, nil)

	router := testRouter(&v1routes.ServiceContainer{TranscriptionService: transcribeSvc})

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "visit.webm")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake audio"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	w := performRequest(router, http.MethodPost, "/transcribe?patient_id=4", &body, writer.FormDataContentType())

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.TranscribeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Hello there.", resp.Text)
	assert.Equal(t, "openai", resp.Provider)
	transcribeSvc.AssertExpectations(t)
}

func TestEncounterSummaryValidation(t *testing.T) {
	router := testRouter(&v1routes.ServiceContainer{EncounterService: new(testutil.MockEncounterService)})

	payload := bytes.NewBufferString(`{"transcription": {"text": "hi"}}`)
	w := performRequest(router, http.MethodPost, "/api/encounter-summary", payload, "application/json")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestEncounterSummary(t *testing.T) {
	encounterSvc := new(testutil.MockEncounterService)
	encounterSvc.On("GenerateSummary", mock.Anything, mock.AnythingOfType("*dto.EncounterSummaryRequest")).Return(&model.EncounterSummary{
		VisitSummary:      "Routine checkup.",
		FollowUpQuestions: []string{"Any allergies?"},
	}, nil)

	router := testRouter(&v1routes.ServiceContainer{EncounterService: encounterSvc})

	payload := bytes.NewBufferString(`{"patient_id": 4, "transcription": {"text": "hi"}}`)
	w := performRequest(router, http.MethodPost, "/api/encounter-summary", payload, "application/json")

	require.Equal(t, http.StatusOK, w.Code)

	var summary model.EncounterSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, "Routine checkup.", summary.VisitSummary)
}

func TestSendEmailValidation(t *testing.T) {
	router := testRouter(&v1routes.ServiceContainer{EmailService: services.NewLogEmailService(slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil)))})

	payload := bytes.NewBufferString(`{"to_email": "not-an-email", "subject": "s", "body": "b"}`)
	w := performRequest(router, http.MethodPost, "/api/send-email", payload, "application/json")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSendEmail(t *testing.T) {
	router := testRouter(&v1routes.ServiceContainer{EmailService: services.NewLogEmailService(slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil)))})

	payload := bytes.NewBufferString(`{"to_email": "sarah.johnson@example.com", "subject": "Follow-up", "body": "See you next week."}`)
	w := performRequest(router, http.MethodPost, "/api/send-email", payload, "application/json")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sent")
}
