package pg

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"clinic-scribe/internal/app/model"

	_ "github.com/lib/pq"
)

// Schema for the PostgreSQL backend. Applied on connect; idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS patients (
	id SERIAL PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	dob TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	gender TEXT NOT NULL DEFAULT '',
	insurance_id INTEGER
);

CREATE TABLE IF NOT EXISTS insurances (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	plan_type TEXT NOT NULL DEFAULT '',
	payer TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS appointments (
	id SERIAL PRIMARY KEY,
	status TEXT NOT NULL DEFAULT 'available',
	start TEXT NOT NULL,
	slot_duration INTEGER NOT NULL DEFAULT 30,
	patient_id INTEGER
);

CREATE TABLE IF NOT EXISTS transcripts (
	id SERIAL PRIMARY KEY,
	patient_id INTEGER,
	appointment_id INTEGER,
	file_name TEXT NOT NULL DEFAULT '',
	file_size BIGINT NOT NULL DEFAULT 0,
	storage_key TEXT NOT NULL DEFAULT '',
	provider TEXT NOT NULL DEFAULT '',
	model_name TEXT NOT NULL DEFAULT '',
	language TEXT NOT NULL DEFAULT '',
	transcription TEXT NOT NULL DEFAULT '',
	segments TEXT NOT NULL DEFAULT '[]',
	duration_sec DOUBLE PRECISION NOT NULL DEFAULT 0,
	has_error INTEGER NOT NULL DEFAULT 0,
	error_message TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS encounters (
	id SERIAL PRIMARY KEY,
	patient_id INTEGER NOT NULL,
	appointment_id INTEGER,
	visit_summary TEXT NOT NULL DEFAULT '',
	diagnostic_assessment TEXT NOT NULL DEFAULT '',
	treatment_care_plan TEXT NOT NULL DEFAULT '',
	follow_up_duration TEXT NOT NULL DEFAULT '',
	follow_up_reason TEXT NOT NULL DEFAULT '',
	patient_instructions TEXT NOT NULL DEFAULT '',
	follow_up_questions TEXT NOT NULL DEFAULT '[]',
	generated_at TIMESTAMPTZ NOT NULL
);
`

// PostgresDB implements repository.ClinicDAO on PostgreSQL.
type PostgresDB struct {
	db *sql.DB
}

// NewPostgresDB connects with the given connection string and applies the schema.
func NewPostgresDB(connectionString string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL database: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &PostgresDB{db: db}, nil
}

// NewPostgresDBFromConn wraps an existing connection. Used by unit tests
// with sqlmock.
func NewPostgresDBFromConn(db *sql.DB) *PostgresDB {
	return &PostgresDB{db: db}
}

func (pdb *PostgresDB) Close() error {
	return pdb.db.Close()
}

func (pdb *PostgresDB) GetAllPatients() ([]model.Patient, error) {
	rows, err := pdb.db.Query(`SELECT id, first_name, last_name, dob, email, phone, gender, insurance_id FROM patients ORDER BY id`)
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

func (pdb *PostgresDB) GetPatientByID(id int) (*model.Patient, error) {
	row := pdb.db.QueryRow(`SELECT id, first_name, last_name, dob, email, phone, gender, insurance_id FROM patients WHERE id = $1`, id)

	var p model.Patient
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.DOB, &p.Email, &p.Phone, &p.Gender, &p.InsuranceID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (pdb *PostgresDB) InsertPatient(p *model.Patient) error {
	err := pdb.db.QueryRow(
		`INSERT INTO patients (first_name, last_name, dob, email, phone, gender, insurance_id) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		p.FirstName, p.LastName, p.DOB, p.Email, p.Phone, p.Gender, p.InsuranceID,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to insert patient: %w", err)
	}
	return nil
}

func (pdb *PostgresDB) GetAllInsurances() ([]model.Insurance, error) {
	rows, err := pdb.db.Query(`SELECT id, name, plan_type, payer FROM insurances ORDER BY id`)
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

func (pdb *PostgresDB) InsertInsurance(i *model.Insurance) error {
	err := pdb.db.QueryRow(
		`INSERT INTO insurances (name, plan_type, payer) VALUES ($1, $2, $3) RETURNING id`,
		i.Name, i.PlanType, i.Payer,
	).Scan(&i.ID)
	if err != nil {
		return fmt.Errorf("failed to insert insurance: %w", err)
	}
	return nil
}

func (pdb *PostgresDB) GetAllAppointments() ([]model.Appointment, error) {
	rows, err := pdb.db.Query(`SELECT id, status, start, slot_duration, patient_id FROM appointments ORDER BY start`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()
	return scanAppointments(rows)
}

func (pdb *PostgresDB) GetAppointmentsByPatient(patientID int) ([]model.Appointment, error) {
	rows, err := pdb.db.Query(
		`SELECT id, status, start, slot_duration, patient_id FROM appointments WHERE patient_id = $1 ORDER BY start`,
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

func (pdb *PostgresDB) InsertAppointment(a *model.Appointment) error {
	var patientID interface{}
	if a.PatientID != nil {
		patientID = *a.PatientID
	}
	err := pdb.db.QueryRow(
		`INSERT INTO appointments (status, start, slot_duration, patient_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		a.Status, a.Start, a.SlotDuration, patientID,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("failed to insert appointment: %w", err)
	}
	return nil
}

func (pdb *PostgresDB) SaveTranscript(t *model.Transcript) error {
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
		_, err := pdb.db.Exec(
			`UPDATE transcripts SET transcription = $1, segments = $2, language = $3, duration_sec = $4, has_error = $5, error_message = $6, updated_at = $7 WHERE id = $8`,
			t.Text, string(segments), t.Language, t.DurationSec, t.HasError, t.ErrorMessage, t.UpdatedAt, t.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update transcript: %w", err)
		}
		return nil
	}

	err = pdb.db.QueryRow(
		`INSERT INTO transcripts (patient_id, appointment_id, file_name, file_size, storage_key, provider, model_name, language, transcription, segments, duration_sec, has_error, error_message, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`,
		patientID, appointmentID, t.FileName, t.FileSize, t.StorageKey, t.Provider, t.ModelName, t.Language,
		t.Text, string(segments), t.DurationSec, t.HasError, t.ErrorMessage, t.CreatedAt, t.UpdatedAt,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("failed to insert transcript: %w", err)
	}
	return nil
}

func (pdb *PostgresDB) GetTranscriptByID(id int) (*model.Transcript, error) {
	row := pdb.db.QueryRow(
		`SELECT id, patient_id, appointment_id, file_name, file_size, storage_key, provider, model_name, language, transcription, segments, duration_sec, has_error, error_message, created_at, updated_at
		 FROM transcripts WHERE id = $1`, id)
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

func (pdb *PostgresDB) ListTranscripts(limit, offset int) ([]model.Transcript, error) {
	rows, err := pdb.db.Query(
		`SELECT id, patient_id, appointment_id, file_name, file_size, storage_key, provider, model_name, language, transcription, segments, duration_sec, has_error, error_message, created_at, updated_at
		 FROM transcripts ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
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

func (pdb *PostgresDB) SaveEncounter(e *model.EncounterSummary) error {
	questions, err := json.Marshal(e.FollowUpQuestions)
	if err != nil {
		return fmt.Errorf("failed to marshal follow-up questions: %w", err)
	}

	var appointmentID interface{}
	if e.AppointmentID != nil {
		appointmentID = *e.AppointmentID
	}

	err = pdb.db.QueryRow(
		`INSERT INTO encounters (patient_id, appointment_id, visit_summary, diagnostic_assessment, treatment_care_plan, follow_up_duration, follow_up_reason, patient_instructions, follow_up_questions, generated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		e.PatientID, appointmentID, e.VisitSummary, e.DiagnosticAssessment, e.TreatmentCarePlan,
		e.FollowUpDuration, e.FollowUpReason, e.PatientInstructions, string(questions), e.GeneratedAt,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("failed to insert encounter: %w", err)
	}
	return nil
}

func (pdb *PostgresDB) ListEncounters(limit, offset int) ([]model.EncounterSummary, error) {
	rows, err := pdb.db.Query(
		`SELECT id, patient_id, appointment_id, visit_summary, diagnostic_assessment, treatment_care_plan, follow_up_duration, follow_up_reason, patient_instructions, follow_up_questions, generated_at
		 FROM encounters ORDER BY generated_at DESC LIMIT $1 OFFSET $2`, limit, offset)
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
