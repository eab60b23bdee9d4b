// Package testutil provides shared testify mocks for service and
// repository interfaces.
package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"clinic-scribe/internal/api/v1/dto"
	"clinic-scribe/internal/api/v1/services"
	"clinic-scribe/internal/app/api"
	"clinic-scribe/internal/app/model"
)

// MockClinicDAO is a testify mock of repository.ClinicDAO.
type MockClinicDAO struct {
	mock.Mock
}

func (m *MockClinicDAO) GetAllPatients() ([]model.Patient, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Patient), args.Error(1)
}

func (m *MockClinicDAO) GetPatientByID(id int) (*model.Patient, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Patient), args.Error(1)
}

func (m *MockClinicDAO) InsertPatient(p *model.Patient) error {
	return m.Called(p).Error(0)
}

func (m *MockClinicDAO) GetAllInsurances() ([]model.Insurance, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Insurance), args.Error(1)
}

func (m *MockClinicDAO) InsertInsurance(i *model.Insurance) error {
	return m.Called(i).Error(0)
}

func (m *MockClinicDAO) GetAllAppointments() ([]model.Appointment, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Appointment), args.Error(1)
}

func (m *MockClinicDAO) GetAppointmentsByPatient(patientID int) ([]model.Appointment, error) {
	args := m.Called(patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Appointment), args.Error(1)
}

func (m *MockClinicDAO) InsertAppointment(a *model.Appointment) error {
	return m.Called(a).Error(0)
}

func (m *MockClinicDAO) SaveTranscript(t *model.Transcript) error {
	return m.Called(t).Error(0)
}

func (m *MockClinicDAO) GetTranscriptByID(id int) (*model.Transcript, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transcript), args.Error(1)
}

func (m *MockClinicDAO) ListTranscripts(limit, offset int) ([]model.Transcript, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Transcript), args.Error(1)
}

func (m *MockClinicDAO) SaveEncounter(e *model.EncounterSummary) error {
	return m.Called(e).Error(0)
}

func (m *MockClinicDAO) ListEncounters(limit, offset int) ([]model.EncounterSummary, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.EncounterSummary), args.Error(1)
}

func (m *MockClinicDAO) Close() error {
	return m.Called().Error(0)
}

// MockTranscriber is a testify mock of api.Transcriber.
type MockTranscriber struct {
	mock.Mock
}

func (m *MockTranscriber) Name() string {
	return m.Called().String(0)
}

func (m *MockTranscriber) Transcribe(ctx context.Context, req *api.TranscriptionRequest) (*api.TranscriptionResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.TranscriptionResult), args.Error(1)
}

// MockSummarizer is a testify mock of chat.Summarizer.
type MockSummarizer struct {
	mock.Mock
}

func (m *MockSummarizer) Summarize(ctx context.Context, patientName, transcriptText string) (*model.EncounterSummary, error) {
	args := m.Called(ctx, patientName, transcriptText)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EncounterSummary), args.Error(1)
}

// MockPatientService is a testify mock of services.PatientService.
type MockPatientService struct {
	mock.Mock
}

func (m *MockPatientService) ListPatients(ctx context.Context) ([]model.Patient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Patient), args.Error(1)
}

func (m *MockPatientService) GetPatient(ctx context.Context, id int) (*model.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Patient), args.Error(1)
}

func (m *MockPatientService) ListInsurances(ctx context.Context) ([]model.Insurance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Insurance), args.Error(1)
}

// MockAppointmentService is a testify mock of services.AppointmentService.
type MockAppointmentService struct {
	mock.Mock
}

func (m *MockAppointmentService) ListAppointments(ctx context.Context) ([]model.Appointment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Appointment), args.Error(1)
}

func (m *MockAppointmentService) ActiveAppointment(ctx context.Context) (*model.Appointment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Appointment), args.Error(1)
}

func (m *MockAppointmentService) CurrentAppointmentForPatient(ctx context.Context, patientID int) (*model.Appointment, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Appointment), args.Error(1)
}

func (m *MockAppointmentService) DebugSnapshot(ctx context.Context) (*dto.DebugAppointmentsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DebugAppointmentsResponse), args.Error(1)
}

// MockTranscriptionService is a testify mock of services.TranscriptionService.
type MockTranscriptionService struct {
	mock.Mock
}

func (m *MockTranscriptionService) Transcribe(ctx context.Context, upload *services.TranscribeUpload) (*dto.TranscribeResponse, error) {
	args := m.Called(ctx, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TranscribeResponse), args.Error(1)
}

// MockEncounterService is a testify mock of services.EncounterService.
type MockEncounterService struct {
	mock.Mock
}

func (m *MockEncounterService) GenerateSummary(ctx context.Context, req *dto.EncounterSummaryRequest) (*model.EncounterSummary, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EncounterSummary), args.Error(1)
}

// MockStorageService is a testify mock of services.StorageService.
type MockStorageService struct {
	mock.Mock
}

func (m *MockStorageService) ArchiveRecording(ctx context.Context, patientID *int, filename, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, patientID, filename, contentType, data)
	return args.String(0), args.Error(1)
}
