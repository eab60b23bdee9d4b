package model

// Insurance is an accepted insurance plan.
type Insurance struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	PlanType string `json:"plan_type"`
	Payer    string `json:"payer"`
}
