package audit

import "time"

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp    time.Time
	UserID       string
	SessionToken string
	Action       string
	Decision     string
	Reason       string
}

// Actions recorded by the registration workflow.
const (
	ActionRegistrationStarted = "registration_started"
	ActionStepCompleted       = "step_completed"
	ActionDecisionMade        = "decision_made"
	ActionPolicyIssued        = "policy_issued"
	ActionRegistrationReject  = "registration_rejected"
)
