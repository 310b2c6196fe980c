package underwriting

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"covergate/internal/domain"
)

// Decision is the underwriting outcome for one session. Created once at the
// underwriting step and immutable afterwards.
//
// Invariants:
//   - Status == rejected implies AdjustedPremium and ApprovedCoverage are nil.
//   - An approved decision's AdjustedPremium is >= OriginalPremium (loading
//     only ever inflates).
type Decision struct {
	ID            uuid.UUID
	SessionToken  string
	DeclarationID uuid.UUID
	PlanID        uuid.UUID

	RiskScore int
	RiskTier  domain.RiskTier
	Status    domain.DecisionStatus

	OriginalPremium  decimal.Decimal
	AdjustedPremium  *decimal.Decimal
	LoadingPercent   int64
	ApprovedCoverage *decimal.Decimal

	RejectionReason     string
	RequiresMedicalExam bool
	RequiredDocuments   []string

	DecidedAt time.Time
}

// IsRejected reports the terminal decline outcome. It is a business result,
// not an error.
func (d *Decision) IsRejected() bool {
	return d.Status == domain.DecisionRejected
}
