// Package notification delivers fire-and-forget messages after workflow
// milestones. Delivery failures are logged and never roll a step back.
package notification

import (
	"context"
	"log/slog"
	"time"
)

// Event is one outbound notification.
type Event struct {
	Type         string
	UserID       string
	SessionToken string
	PolicyNumber string
	OccurredAt   time.Time
}

// Event types.
const (
	TypePolicyIssued          = "policy_issued"
	TypeRegistrationRejected  = "registration_rejected"
	TypeKYCVerified           = "kyc_verified"
	TypeUnderwritingCompleted = "underwriting_completed"
)

// Sender performs the actual delivery (email/SMS gateway, message bus).
type Sender interface {
	Send(ctx context.Context, event Event) error
}

// LogSender is the default sender: it only logs. Useful in development and
// as a fallback when no broker is configured.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, event Event) error {
	s.logger.InfoContext(ctx, "notification",
		"type", event.Type,
		"user_id", event.UserID,
		"session_token", event.SessionToken,
		"policy_number", event.PolicyNumber,
	)
	return nil
}
