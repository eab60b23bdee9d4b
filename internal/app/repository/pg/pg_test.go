package pg

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-scribe/internal/app/model"
)

func intPtr(v int) *int { return &v }

func newMockDB(t *testing.T) (*PostgresDB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresDBFromConn(db), mock
}

func TestGetAllPatients(t *testing.T) {
	dao, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "first_name", "last_name", "dob", "email", "phone", "gender", "insurance_id"}).
		AddRow(1, "Sarah", "Johnson", "1988-03-15", "sarah.johnson@example.com", "5553334444", "female", 2).
		AddRow(2, "Michael", "Chen", "1992-11-08", "michael.chen@example.com", "5556667777", "male", nil)

	mock.ExpectQuery(`SELECT id, first_name, last_name, dob, email, phone, gender, insurance_id FROM patients ORDER BY id`).
		WillReturnRows(rows)

	patients, err := dao.GetAllPatients()
	require.NoError(t, err)
	require.Len(t, patients, 2)
	require.NotNil(t, patients[0].InsuranceID)
	assert.Equal(t, 2, *patients[0].InsuranceID)
	assert.Nil(t, patients[1].InsuranceID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertPatientReturningID(t *testing.T) {
	dao, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT INTO patients`).
		WithArgs("Sarah", "Johnson", "1988-03-15", "sarah.johnson@example.com", "5553334444", "female", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	p := &model.Patient{
		FirstName: "Sarah",
		LastName:  "Johnson",
		DOB:       "1988-03-15",
		Email:     "sarah.johnson@example.com",
		Phone:     "5553334444",
		Gender:    "female",
	}
	require.NoError(t, dao.InsertPatient(p))
	assert.Equal(t, 7, p.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAppointmentsByPatient(t *testing.T) {
	dao, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "status", "start", "slot_duration", "patient_id"}).
		AddRow(3, "booked", "2025-12-12T10:00:00", 30, 4)

	mock.ExpectQuery(`SELECT id, status, start, slot_duration, patient_id FROM appointments WHERE patient_id = \$1 ORDER BY start`).
		WithArgs(4).
		WillReturnRows(rows)

	appointments, err := dao.GetAppointmentsByPatient(4)
	require.NoError(t, err)
	require.Len(t, appointments, 1)
	assert.Equal(t, "booked", appointments[0].Status)
	require.NotNil(t, appointments[0].PatientID)
	assert.Equal(t, 4, *appointments[0].PatientID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveTranscriptInsert(t *testing.T) {
	dao, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT INTO transcripts`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	now := time.Now().UTC()
	transcript := &model.Transcript{
		PatientID: intPtr(4),
		FileName:  "visit.webm",
		Provider:  "openai",
		Text:      "Hello.",
		Segments:  []model.TranscriptSegment{{Speaker: "A", Text: "Hello."}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, dao.SaveTranscript(transcript))
	assert.Equal(t, 11, transcript.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveTranscriptUpdate(t *testing.T) {
	dao, mock := newMockDB(t)

	mock.ExpectExec(`UPDATE transcripts SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	transcript := &model.Transcript{
		ID:        11,
		Text:      "Hello again.",
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, dao.SaveTranscript(transcript))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveEncounter(t *testing.T) {
	dao, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT INTO encounters`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	encounter := &model.EncounterSummary{
		PatientID:         4,
		VisitSummary:      "Routine checkup.",
		FollowUpQuestions: []string{"Any new symptoms?"},
		GeneratedAt:       time.Now().UTC(),
	}
	require.NoError(t, dao.SaveEncounter(encounter))
	assert.Equal(t, 5, encounter.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListEncounters(t *testing.T) {
	dao, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "patient_id", "appointment_id", "visit_summary", "diagnostic_assessment", "treatment_care_plan", "follow_up_duration", "follow_up_reason", "patient_instructions", "follow_up_questions", "generated_at"}).
		AddRow(5, 4, 2, "Routine checkup.", "Healthy.", "None.", "6 months", "Annual physical", "Stay hydrated.", `["Any new symptoms?"]`, time.Now().UTC())

	mock.ExpectQuery(`SELECT id, patient_id, appointment_id, .+ FROM encounters ORDER BY generated_at DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(10, 0).
		WillReturnRows(rows)

	encounters, err := dao.ListEncounters(10, 0)
	require.NoError(t, err)
	require.Len(t, encounters, 1)
	assert.Equal(t, []string{"Any new symptoms?"}, encounters[0].FollowUpQuestions)
	require.NotNil(t, encounters[0].AppointmentID)
	assert.Equal(t, 2, *encounters[0].AppointmentID)
	require.NoError(t, mock.ExpectationsWereMet())
}
