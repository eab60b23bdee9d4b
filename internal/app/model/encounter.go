package model

import "time"

// EncounterSummary is the structured visit note generated from a transcript.
// Field names follow the JSON contract the summarization prompt enforces.
type EncounterSummary struct {
	ID                   int       `json:"id,omitempty"`
	PatientID            int       `json:"patient_id,omitempty"`
	AppointmentID        *int      `json:"appointment_id,omitempty"`
	VisitSummary         string    `json:"visit_summary"`
	DiagnosticAssessment string    `json:"diagnostic_assessment"`
	TreatmentCarePlan    string    `json:"treatment_care_plan"`
	FollowUpDuration     string    `json:"follow_up_duration"`
	FollowUpReason       string    `json:"follow_up_reason"`
	PatientInstructions  string    `json:"patient_instructions"`
	FollowUpQuestions    []string  `json:"follow_up_questions"`
	GeneratedAt          time.Time `json:"generated_at,omitempty"`
}
