package model

import "time"

// Appointment statuses as stored in the schedule.
const (
	AppointmentStatusAvailable = "available"
	AppointmentStatusBooked    = "booked"
)

// SlotLayout is the zone-less timestamp format appointment slots are stored
// in. Slots carry clinic wall-clock time, not UTC.
const SlotLayout = "2006-01-02T15:04:05"

// DefaultSlotMinutes is the slot length assumed when a row has none.
const DefaultSlotMinutes = 30

// Appointment is a schedule slot, free or booked.
type Appointment struct {
	ID           int    `json:"id"`
	Status       string `json:"status"`
	Start        string `json:"start"`
	SlotDuration int    `json:"slot_duration"`
	PatientID    *int   `json:"patient_id"`
}

// IsBooked reports whether the slot is booked with a patient assigned.
// Rows marked booked without a patient are treated as free.
func (a *Appointment) IsBooked() bool {
	return a.Status == AppointmentStatusBooked && a.PatientID != nil
}

// StartTime parses the slot's start into a zone-less comparison value.
func (a *Appointment) StartTime() (time.Time, error) {
	return time.Parse(SlotLayout, a.Start)
}

// Window returns the slot's half-open [start, end) interval.
func (a *Appointment) Window() (time.Time, time.Time, error) {
	start, err := a.StartTime()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	minutes := a.SlotDuration
	if minutes <= 0 {
		minutes = DefaultSlotMinutes
	}
	return start, start.Add(time.Duration(minutes) * time.Minute), nil
}
