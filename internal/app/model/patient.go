package model

import "strings"

// Patient is a clinic patient record.
type Patient struct {
	ID          int    `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DOB         string `json:"dob"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Gender      string `json:"gender"`
	InsuranceID *int   `json:"insurance_id"`
}

// FullName returns the patient's display name.
func (p *Patient) FullName() string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		return "Patient"
	}
	return name
}
