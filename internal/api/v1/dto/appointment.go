package dto

import (
	"time"

	"clinic-scribe/internal/app/model"
)

// DebugAppointmentsResponse exposes the counters needed to diagnose the
// active-window logic.
type DebugAppointmentsResponse struct {
	TotalAppointments  int                 `json:"total_appointments"`
	BookedAppointments int                 `json:"booked_appointments"`
	CurrentTime        time.Time           `json:"current_time"`
	ClinicTime         string              `json:"clinic_time"`
	SampleBooked       []model.Appointment `json:"sample_booked"`
}
