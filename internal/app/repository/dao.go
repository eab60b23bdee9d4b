package repository

import (
	"clinic-scribe/internal/app/model"
)

// ClinicDAO is the persistence interface for clinic data.
// Implemented by the sqlite and pg packages.
type ClinicDAO interface {
	// Patients
	GetAllPatients() ([]model.Patient, error)
	GetPatientByID(id int) (*model.Patient, error)
	InsertPatient(p *model.Patient) error

	// Insurances
	GetAllInsurances() ([]model.Insurance, error)
	InsertInsurance(i *model.Insurance) error

	// Appointments
	GetAllAppointments() ([]model.Appointment, error)
	GetAppointmentsByPatient(patientID int) ([]model.Appointment, error)
	InsertAppointment(a *model.Appointment) error

	// Transcripts
	SaveTranscript(t *model.Transcript) error
	GetTranscriptByID(id int) (*model.Transcript, error)
	ListTranscripts(limit, offset int) ([]model.Transcript, error)

	// Encounter summaries
	SaveEncounter(e *model.EncounterSummary) error
	ListEncounters(limit, offset int) ([]model.EncounterSummary, error)

	Close() error
}
