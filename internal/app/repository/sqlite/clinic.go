package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"clinic-scribe/internal/app/model"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDB implements repository.ClinicDAO on a local sqlite file.
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens the database at dbFilePath and applies the schema.
func NewSQLiteDB(dbFilePath string) (*SQLiteDB, error) {
	db, err := Open(dbFilePath)
	if err != nil {
		return nil, err
	}
	return &SQLiteDB{db: db}, nil
}

// NewSQLiteDBFromConn wraps an existing connection. Used by tests with an
// in-memory database.
func NewSQLiteDBFromConn(db *sql.DB) *SQLiteDB {
	return &SQLiteDB{db: db}
}

func (sdb *SQLiteDB) Close() error {
	return sdb.db.Close()
}

func (sdb *SQLiteDB) GetAllPatients() ([]model.Patient, error) {
	rows, err := sdb.db.Query(`SELECT id, first_name, last_name, dob, email, phone, gender, insurance_id FROM patients ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	patients := make([]model.Patient, 0)
	for rows.Next() {
		var p model.Patient
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.DOB, &p.Email, &p.Phone, &p.Gender, &p.InsuranceID); err != nil {
			return nil, fmt.Errorf("db scan failed: %w", err)
		}
		patients = append(patients, p)
	}
	return patients, rows.Err()
}

func (sdb *SQLiteDB) GetPatientByID(id int) (*model.Patient, error) {
	row := sdb.db.QueryRow(`SELECT id, first_name, last_name, dob, email, phone, gender, insurance_id FROM patients WHERE id = ?`, id)

	var p model.Patient
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.DOB, &p.Email, &p.Phone, &p.Gender, &p.InsuranceID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (sdb *SQLiteDB) InsertPatient(p *model.Patient) error {
	res, err := sdb.db.Exec(
		`INSERT INTO patients (first_name, last_name, dob, email, phone, gender, insurance_id) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.FirstName, p.LastName, p.DOB, p.Email, p.Phone, p.Gender, p.InsuranceID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert patient: %w", err)
	}
	id, err := res.LastInsertId()
	if err == nil {
		p.ID = int(id)
	}
	return nil
}

func (sdb *SQLiteDB) GetAllInsurances() ([]model.Insurance, error) {
	rows, err := sdb.db.Query(`SELECT id, name, plan_type, payer FROM insurances ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	insurances := make([]model.Insurance, 0)
	for rows.Next() {
		var i model.Insurance
		if err := rows.Scan(&i.ID, &i.Name, &i.PlanType, &i.Payer); err != nil {
			return nil, fmt.Errorf("db scan failed: %w", err)
		}
		insurances = append(insurances, i)
	}
	return insurances, rows.Err()
}

func (sdb *SQLiteDB) InsertInsurance(i *model.Insurance) error {
	res, err := sdb.db.Exec(
		`INSERT INTO insurances (name, plan_type, payer) VALUES (?, ?, ?)`,
		i.Name, i.PlanType, i.Payer,
	)
	if err != nil {
		return fmt.Errorf("failed to insert insurance: %w", err)
	}
	id, err := res.LastInsertId()
	if err == nil {
		i.ID = int(id)
	}
	return nil
}

func (sdb *SQLiteDB) GetAllAppointments() ([]model.Appointment, error) {
	rows, err := sdb.db.Query(`SELECT id, status, start, slot_duration, patient_id FROM appointments ORDER BY start`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()
	return scanAppointments(rows)
}

func (sdb *SQLiteDB) GetAppointmentsByPatient(patientID int) ([]model.Appointment, error) {
	rows, err := sdb.db.Query(
		`SELECT id, status, start, slot_duration, patient_id FROM appointments WHERE patient_id = ? ORDER BY start`,
		patientID,
	)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()
	return scanAppointments(rows)
}

func scanAppointments(rows *sql.Rows) ([]model.Appointment, error) {
	appointments := make([]model.Appointment, 0)
	for rows.Next() {
		var a model.Appointment
		var patientID sql.NullInt64
		if err := rows.Scan(&a.ID, &a.Status, &a.Start, &a.SlotDuration, &patientID); err != nil {
			return nil, fmt.Errorf("db scan failed: %w", err)
		}
		if patientID.Valid {
			id := int(patientID.Int64)
			a.PatientID = &id
		}
		appointments = append(appointments, a)
	}
	return appointments, rows.Err()
}

func (sdb *SQLiteDB) InsertAppointment(a *model.Appointment) error {
	var patientID interface{}
	if a.PatientID != nil {
		patientID = *a.PatientID
	}
	res, err := sdb.db.Exec(
		`INSERT INTO appointments (status, start, slot_duration, patient_id) VALUES (?, ?, ?, ?)`,
		a.Status, a.Start, a.SlotDuration, patientID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert appointment: %w", err)
	}
	id, err := res.LastInsertId()
	if err == nil {
		a.ID = int(id)
	}
	return nil
}

func (sdb *SQLiteDB) SaveTranscript(t *model.Transcript) error {
	segments, err := json.Marshal(t.Segments)
	if err != nil {
		return fmt.Errorf("failed to marshal segments: %w", err)
	}

	var patientID, appointmentID interface{}
	if t.PatientID != nil {
		patientID = *t.PatientID
	}
	if t.AppointmentID != nil {
		appointmentID = *t.AppointmentID
	}

	if t.ID > 0 {
		_, err := sdb.db.Exec(
			`UPDATE transcripts SET transcription = ?, segments = ?, language = ?, duration_sec = ?, has_error = ?, error_message = ?, updated_at = ? WHERE id = ?`,
			t.Text, string(segments), t.Language, t.DurationSec, t.HasError, t.ErrorMessage, t.UpdatedAt, t.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update transcript: %w", err)
		}
		return nil
	}

	res, err := sdb.db.Exec(
		`INSERT INTO transcripts (patient_id, appointment_id, file_name, file_size, storage_key, provider, model_name, language, transcription, segments, duration_sec, has_error, error_message, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		patientID, appointmentID, t.FileName, t.FileSize, t.StorageKey, t.Provider, t.ModelName, t.Language,
		t.Text, string(segments), t.DurationSec, t.HasError, t.ErrorMessage, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transcript: %w", err)
	}
	id, err := res.LastInsertId()
	if err == nil {
		t.ID = int(id)
	}
	return nil
}

func (sdb *SQLiteDB) GetTranscriptByID(id int) (*model.Transcript, error) {
	row := sdb.db.QueryRow(
		`SELECT id, patient_id, appointment_id, file_name, file_size, storage_key, provider, model_name, language, transcription, segments, duration_sec, has_error, error_message, created_at, updated_at
		 FROM transcripts WHERE id = ?`, id)
	return scanTranscript(row)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTranscript(row rowScanner) (*model.Transcript, error) {
	var t model.Transcript
	var patientID, appointmentID sql.NullInt64
	var segments string
	err := row.Scan(&t.ID, &patientID, &appointmentID, &t.FileName, &t.FileSize, &t.StorageKey,
		&t.Provider, &t.ModelName, &t.Language, &t.Text, &segments, &t.DurationSec,
		&t.HasError, &t.ErrorMessage, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if patientID.Valid {
		id := int(patientID.Int64)
		t.PatientID = &id
	}
	if appointmentID.Valid {
		id := int(appointmentID.Int64)
		t.AppointmentID = &id
	}
	if err := json.Unmarshal([]byte(segments), &t.Segments); err != nil {
		return nil, fmt.Errorf("failed to unmarshal segments: %w", err)
	}
	return &t, nil
}

func (sdb *SQLiteDB) ListTranscripts(limit, offset int) ([]model.Transcript, error) {
	rows, err := sdb.db.Query(
		`SELECT id, patient_id, appointment_id, file_name, file_size, storage_key, provider, model_name, language, transcription, segments, duration_sec, has_error, error_message, created_at, updated_at
		 FROM transcripts ORDER BY created_at DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	transcripts := make([]model.Transcript, 0)
	for rows.Next() {
		t, err := scanTranscript(rows)
		if err != nil {
			return nil, err
		}
		transcripts = append(transcripts, *t)
	}
	return transcripts, rows.Err()
}

func (sdb *SQLiteDB) SaveEncounter(e *model.EncounterSummary) error {
	questions, err := json.Marshal(e.FollowUpQuestions)
	if err != nil {
		return fmt.Errorf("failed to marshal follow-up questions: %w", err)
	}

	var appointmentID interface{}
	if e.AppointmentID != nil {
		appointmentID = *e.AppointmentID
	}

	res, err := sdb.db.Exec(
		`INSERT INTO encounters (patient_id, appointment_id, visit_summary, diagnostic_assessment, treatment_care_plan, follow_up_duration, follow_up_reason, patient_instructions, follow_up_questions, generated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.PatientID, appointmentID, e.VisitSummary, e.DiagnosticAssessment, e.TreatmentCarePlan,
		e.FollowUpDuration, e.FollowUpReason, e.PatientInstructions, string(questions), e.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert encounter: %w", err)
	}
	id, err := res.LastInsertId()
	if err == nil {
		e.ID = int(id)
	}
	return nil
}

func (sdb *SQLiteDB) ListEncounters(limit, offset int) ([]model.EncounterSummary, error) {
	rows, err := sdb.db.Query(
		`SELECT id, patient_id, appointment_id, visit_summary, diagnostic_assessment, treatment_care_plan, follow_up_duration, follow_up_reason, patient_instructions, follow_up_questions, generated_at
		 FROM encounters ORDER BY generated_at DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	encounters := make([]model.EncounterSummary, 0)
	for rows.Next() {
		var e model.EncounterSummary
		var appointmentID sql.NullInt64
		var questions string
		if err := rows.Scan(&e.ID, &e.PatientID, &appointmentID, &e.VisitSummary, &e.DiagnosticAssessment,
			&e.TreatmentCarePlan, &e.FollowUpDuration, &e.FollowUpReason, &e.PatientInstructions,
			&questions, &e.GeneratedAt); err != nil {
			return nil, fmt.Errorf("db scan failed: %w", err)
		}
		if appointmentID.Valid {
			id := int(appointmentID.Int64)
			e.AppointmentID = &id
		}
		if err := json.Unmarshal([]byte(questions), &e.FollowUpQuestions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal follow-up questions: %w", err)
		}
		encounters = append(encounters, e)
	}
	return encounters, rows.Err()
}
