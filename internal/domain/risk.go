package domain

// RiskTier groups risk scores into underwriting bands.
type RiskTier string

const (
	TierLow      RiskTier = "low"
	TierMedium   RiskTier = "medium"
	TierHigh     RiskTier = "high"
	TierVeryHigh RiskTier = "very_high"
)

// DecisionStatus enumerates the possible underwriting outcomes. Rejected is a
// valid terminal business decision, not an error.
type DecisionStatus string

const (
	DecisionAutoApproved      DecisionStatus = "auto_approved"
	DecisionRequiresReview    DecisionStatus = "requires_review"
	DecisionRequiresDocuments DecisionStatus = "requires_documents"
	DecisionRejected          DecisionStatus = "rejected"
)

// IsApproved reports whether the decision lets the applicant proceed to
// payment without manual intervention.
func (d DecisionStatus) IsApproved() bool {
	return d == DecisionAutoApproved
}

// IsTerminal reports whether no further underwriting action can change the
// outcome.
func (d DecisionStatus) IsTerminal() bool {
	return d == DecisionAutoApproved || d == DecisionRejected
}
