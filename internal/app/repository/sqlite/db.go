package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Schema is applied on every open; all statements are idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS patients (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	dob TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	gender TEXT NOT NULL DEFAULT '',
	insurance_id INTEGER
);

CREATE TABLE IF NOT EXISTS insurances (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	plan_type TEXT NOT NULL DEFAULT '',
	payer TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS appointments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	status TEXT NOT NULL DEFAULT 'available',
	start TEXT NOT NULL,
	slot_duration INTEGER NOT NULL DEFAULT 30,
	patient_id INTEGER
);

CREATE TABLE IF NOT EXISTS transcripts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	patient_id INTEGER,
	appointment_id INTEGER,
	file_name TEXT NOT NULL DEFAULT '',
	file_size INTEGER NOT NULL DEFAULT 0,
	storage_key TEXT NOT NULL DEFAULT '',
	provider TEXT NOT NULL DEFAULT '',
	model_name TEXT NOT NULL DEFAULT '',
	language TEXT NOT NULL DEFAULT '',
	transcription TEXT NOT NULL DEFAULT '',
	segments TEXT NOT NULL DEFAULT '[]',
	duration_sec REAL NOT NULL DEFAULT 0,
	has_error INTEGER NOT NULL DEFAULT 0,
	error_message TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS encounters (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	patient_id INTEGER NOT NULL,
	appointment_id INTEGER,
	visit_summary TEXT NOT NULL DEFAULT '',
	diagnostic_assessment TEXT NOT NULL DEFAULT '',
	treatment_care_plan TEXT NOT NULL DEFAULT '',
	follow_up_duration TEXT NOT NULL DEFAULT '',
	follow_up_reason TEXT NOT NULL DEFAULT '',
	patient_instructions TEXT NOT NULL DEFAULT '',
	follow_up_questions TEXT NOT NULL DEFAULT '[]',
	generated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_appointments_patient ON appointments(patient_id);
CREATE INDEX IF NOT EXISTS idx_transcripts_patient ON transcripts(patient_id);
`

// Open opens (creating if needed) the clinic database at the given path and
// applies the schema.
func Open(dbFilePath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc", dbFilePath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return db, nil
}
