// Package registration holds the session aggregate for the sales workflow.
// A session walks eight ordered steps from account creation to policy
// issuance; each step flips exactly one completion flag.
package registration

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"covergate/internal/domain"
)

// Step marks where a session currently stands.
type Step string

const (
	StepAccountCreated       Step = "account_created"
	StepKYCCompleted         Step = "kyc_completed"
	StepProfileCompleted     Step = "profile_completed"
	StepProductSelected      Step = "product_selected"
	StepHealthDeclared       Step = "health_declared"
	StepUnderwritingApproved Step = "underwriting_approved"
	StepUnderwritingPending  Step = "underwriting_pending"
	StepUnderwritingRejected Step = "underwriting_rejected"
	StepPaymentCompleted     Step = "payment_completed"
	StepPolicyIssued         Step = "policy_issued"
)

// Status is the session's overall lifecycle state.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusRejected   Status = "rejected"
	StatusCompleted  Status = "completed"
)

// Session is one in-progress registration. The eight completion flags must be
// set in strict left-to-right order: a later flag can only be true when all
// earlier flags are true. Once Status leaves in_progress the session is
// immutable.
type Session struct {
	Token       string
	UserID      uuid.UUID
	CurrentStep Step
	Status      Status

	AccountCreated       bool
	KYCCompleted         bool
	ProfileCompleted     bool
	ProductSelected      bool
	HealthDeclared       bool
	UnderwritingApproved bool
	PaymentCompleted     bool
	PolicyIssued         bool

	// Profile step.
	DateOfBirth    time.Time
	Gender         domain.Gender
	Occupation     string
	OccupationRisk domain.OccupationRisk

	// Product step.
	PlanID    *uuid.UUID
	Coverage  *decimal.Decimal
	TermYears int
	Frequency domain.PaymentFrequency

	RejectionReason string
	PolicyID        *uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewToken generates an opaque session token like reg_7f9c…(32 hex).
func NewToken() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return "reg_" + hex.EncodeToString(buf)
}

// stepFlag pairs a completion flag with its user-facing requirement. The
// slice order IS the workflow order; everything that walks the flags uses it.
type stepFlag struct {
	name Step
	done func(s *Session) bool
	next string
}

var stepFlags = []stepFlag{
	{StepAccountCreated, func(s *Session) bool { return s.AccountCreated }, "Create your account"},
	{StepKYCCompleted, func(s *Session) bool { return s.KYCCompleted }, "Complete identity verification"},
	{StepProfileCompleted, func(s *Session) bool { return s.ProfileCompleted }, "Complete your profile"},
	{StepProductSelected, func(s *Session) bool { return s.ProductSelected }, "Select an insurance product"},
	{StepHealthDeclared, func(s *Session) bool { return s.HealthDeclared }, "Submit your health declaration"},
	{StepUnderwritingApproved, func(s *Session) bool { return s.UnderwritingApproved }, "Complete underwriting assessment"},
	{StepPaymentCompleted, func(s *Session) bool { return s.PaymentCompleted }, "Pay your first premium"},
	{StepPolicyIssued, func(s *Session) bool { return s.PolicyIssued }, "Receive your policy"},
}

// Flags returns the completion flags in workflow order.
func (s *Session) Flags() []bool {
	out := make([]bool, len(stepFlags))
	for i, f := range stepFlags {
		out[i] = f.done(s)
	}
	return out
}

// FlagsOrdered verifies the left-to-right invariant: no flag may be true
// while an earlier flag is false.
func (s *Session) FlagsOrdered() bool {
	seenFalse := false
	for _, done := range s.Flags() {
		if !done {
			seenFalse = true
		} else if seenFalse {
			return false
		}
	}
	return true
}

// PercentComplete is (true flags / 8) × 100, as an integer percentage.
func (s *Session) PercentComplete() int {
	completed := 0
	for _, done := range s.Flags() {
		if done {
			completed++
		}
	}
	return completed * 100 / len(stepFlags)
}

// NextAction scans the flags in order and describes the first unmet
// requirement. Terminal sessions report their terminal state.
func (s *Session) NextAction() string {
	switch s.Status {
	case StatusCompleted:
		return "Registration complete"
	case StatusRejected:
		return "Registration rejected"
	}
	for _, f := range stepFlags {
		if !f.done(s) {
			return f.next
		}
	}
	return "Registration complete"
}

// Terminal reports whether the session accepts further steps.
func (s *Session) Terminal() bool {
	return s.Status != StatusInProgress
}

// Age computes the applicant's age in whole years at the given time.
func (s *Session) Age(at time.Time) int {
	age := at.Year() - s.DateOfBirth.Year()
	if at.YearDay() < s.DateOfBirth.YearDay() {
		age--
	}
	return age
}
