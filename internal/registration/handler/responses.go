package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"covergate/internal/payment"
	"covergate/internal/policy"
	"covergate/internal/registration"
	"covergate/internal/registration/service"
	"covergate/internal/underwriting"
)

// SessionResponse is the session view returned by every step and the status
// endpoint.
type SessionResponse struct {
	Token           string        `json:"token"`
	CurrentStep     string        `json:"current_step"`
	Status          string        `json:"status"`
	PercentComplete int           `json:"percent_complete"`
	NextAction      string        `json:"next_action"`
	Steps           StepsResponse `json:"steps"`
	RejectionReason string        `json:"rejection_reason,omitempty"`
	PolicyID        string        `json:"policy_id,omitempty"`
}

// StepsResponse exposes the eight completion flags by name.
type StepsResponse struct {
	AccountCreated       bool `json:"account_created"`
	KYCCompleted         bool `json:"kyc_completed"`
	ProfileCompleted     bool `json:"profile_completed"`
	ProductSelected      bool `json:"product_selected"`
	HealthDeclared       bool `json:"health_declared"`
	UnderwritingApproved bool `json:"underwriting_approved"`
	PaymentCompleted     bool `json:"payment_completed"`
	PolicyIssued         bool `json:"policy_issued"`
}

// FromSession converts a session aggregate to its HTTP view.
func FromSession(s *registration.Session) *SessionResponse {
	resp := &SessionResponse{
		Token:           s.Token,
		CurrentStep:     string(s.CurrentStep),
		Status:          string(s.Status),
		PercentComplete: s.PercentComplete(),
		NextAction:      s.NextAction(),
		Steps: StepsResponse{
			AccountCreated:       s.AccountCreated,
			KYCCompleted:         s.KYCCompleted,
			ProfileCompleted:     s.ProfileCompleted,
			ProductSelected:      s.ProductSelected,
			HealthDeclared:       s.HealthDeclared,
			UnderwritingApproved: s.UnderwritingApproved,
			PaymentCompleted:     s.PaymentCompleted,
			PolicyIssued:         s.PolicyIssued,
		},
		RejectionReason: s.RejectionReason,
	}
	if s.PolicyID != nil {
		resp.PolicyID = s.PolicyID.String()
	}
	return resp
}

// FromStatus converts the read-only status view.
func FromStatus(v *service.StatusView) *SessionResponse {
	resp := &SessionResponse{
		Token:           v.Token,
		CurrentStep:     string(v.CurrentStep),
		Status:          string(v.Status),
		PercentComplete: v.PercentComplete,
		NextAction:      v.NextAction,
		RejectionReason: v.RejectionReason,
	}
	if len(v.Flags) == 8 {
		resp.Steps = StepsResponse{
			AccountCreated:       v.Flags[0],
			KYCCompleted:         v.Flags[1],
			ProfileCompleted:     v.Flags[2],
			ProductSelected:      v.Flags[3],
			HealthDeclared:       v.Flags[4],
			UnderwritingApproved: v.Flags[5],
			PaymentCompleted:     v.Flags[6],
			PolicyIssued:         v.Flags[7],
		}
	}
	if v.PolicyID != nil {
		resp.PolicyID = v.PolicyID.String()
	}
	return resp
}

// DecisionResponse is the underwriting outcome. A rejection arrives here as a
// 200 with status rejected, not as an error.
type DecisionResponse struct {
	Status              string           `json:"status"`
	RiskScore           int              `json:"risk_score"`
	RiskTier            string           `json:"risk_tier"`
	OriginalPremium     decimal.Decimal  `json:"original_premium"`
	AdjustedPremium     *decimal.Decimal `json:"adjusted_premium,omitempty"`
	LoadingPercent      int64            `json:"loading_percent,omitempty"`
	ApprovedCoverage    *decimal.Decimal `json:"approved_coverage,omitempty"`
	RejectionReason     string           `json:"rejection_reason,omitempty"`
	RequiresMedicalExam bool             `json:"requires_medical_exam"`
	RequiredDocuments   []string         `json:"required_documents,omitempty"`
	DecidedAt           time.Time        `json:"decided_at"`
}

// FromDecision converts an underwriting decision to its HTTP view.
func FromDecision(d *underwriting.Decision) *DecisionResponse {
	return &DecisionResponse{
		Status:              string(d.Status),
		RiskScore:           d.RiskScore,
		RiskTier:            string(d.RiskTier),
		OriginalPremium:     d.OriginalPremium,
		AdjustedPremium:     d.AdjustedPremium,
		LoadingPercent:      d.LoadingPercent,
		ApprovedCoverage:    d.ApprovedCoverage,
		RejectionReason:     d.RejectionReason,
		RequiresMedicalExam: d.RequiresMedicalExam,
		RequiredDocuments:   d.RequiredDocuments,
		DecidedAt:           d.DecidedAt,
	}
}

// PaymentResponse is the captured payment view.
type PaymentResponse struct {
	Reference  string          `json:"reference"`
	Amount     decimal.Decimal `json:"amount"`
	Frequency  string          `json:"frequency"`
	Method     string          `json:"method"`
	CapturedAt time.Time       `json:"captured_at"`
}

// FromPayment converts a payment record to its HTTP view.
func FromPayment(p *payment.Payment) *PaymentResponse {
	return &PaymentResponse{
		Reference:  p.Reference,
		Amount:     p.Amount,
		Frequency:  string(p.Frequency),
		Method:     p.Method,
		CapturedAt: p.CapturedAt,
	}
}

// PolicyResponse is the issued policy view.
type PolicyResponse struct {
	PolicyNumber string          `json:"policy_number"`
	PlanID       string          `json:"plan_id"`
	Coverage     decimal.Decimal `json:"coverage"`
	Premium      decimal.Decimal `json:"premium"`
	Frequency    string          `json:"frequency"`
	Status       string          `json:"status"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	IssuedAt     time.Time       `json:"issued_at"`
}

// FromPolicy converts an issued policy to its HTTP view.
func FromPolicy(p *policy.Policy) *PolicyResponse {
	return &PolicyResponse{
		PolicyNumber: p.Number,
		PlanID:       p.PlanID.String(),
		Coverage:     p.Coverage,
		Premium:      p.Premium,
		Frequency:    string(p.Frequency),
		Status:       string(p.Status),
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		IssuedAt:     p.IssuedAt,
	}
}
