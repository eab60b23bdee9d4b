package services

import (
	"context"
	"log/slog"
	"time"

	"clinic-scribe/internal/api/v1/dto"
)

// LogEmailService implements EmailService by logging the message instead of
// delivering it. Production deployments plug in a real provider behind the
// same interface.
type LogEmailService struct {
	logger *slog.Logger
}

// NewLogEmailService creates the mock email sender
func NewLogEmailService(logger *slog.Logger) EmailService {
	return &LogEmailService{logger: logger}
}

// Send logs the email and reports success.
func (s *LogEmailService) Send(ctx context.Context, req *dto.EmailRequest) (*dto.EmailResponse, error) {
	s.logger.Info("Email would be sent",
		"to", req.ToEmail,
		"subject", req.Subject,
		"body_length", len(req.Body),
	)

	return &dto.EmailResponse{
		Success: true,
		Message: "Email sent successfully (mock)",
		To:      req.ToEmail,
		SentAt:  time.Now().UTC(),
	}, nil
}
