package dto

import "time"

// EmailRequest is an outbound patient email.
type EmailRequest struct {
	ToEmail string `json:"to_email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

// EmailResponse reports the (mock) send result.
type EmailResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	To      string    `json:"to"`
	SentAt  time.Time `json:"sent_at"`
}
