package underwriting

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"covergate/internal/domain"
	"covergate/internal/health"
	"covergate/internal/plan"
	"covergate/internal/platform/config"
	"covergate/internal/pricing"
)

// Engine turns a risk score and a rated premium into an underwriting
// decision. The goal is to keep the rules centralized and testable; the
// engine is pure - no I/O, no side effects.
type Engine struct {
	cfg config.Underwriting
}

func NewEngine(cfg config.Underwriting) *Engine {
	return &Engine{cfg: cfg}
}

// Applicant carries the derived, non-PII rating attributes for the person
// being underwritten.
type Applicant struct {
	Age    int
	Gender domain.Gender
}

// Selection is what the applicant chose at the product step.
type Selection struct {
	PlanID    uuid.UUID
	Coverage  decimal.Decimal
	Frequency domain.PaymentFrequency
}

// Decide evaluates one application. Thresholds are score-ordered and the
// first matching band wins:
//
//	score < AutoApproveBelow   → auto-approved, no loading
//	score < LoadedApproveBelow → auto-approved with premium loading
//	score < ReviewBelow        → manual review, medical exam required
//	score < DocumentsBelow     → additional documents required
//	otherwise                  → rejected
func (e *Engine) Decide(p *plan.Plan, sel Selection, d *health.Declaration, applicant Applicant, now time.Time) *Decision {
	score, tier := ScoreRisk(d)

	original := pricing.PremiumFor(p, pricing.Input{
		Age:            applicant.Age,
		Gender:         applicant.Gender,
		HealthStatus:   healthStatusFor(tier),
		OccupationRisk: d.OccupationRisk,
		Frequency:      sel.Frequency,
	})

	decision := &Decision{
		ID:              uuid.New(),
		SessionToken:    d.SessionToken,
		DeclarationID:   d.ID,
		PlanID:          p.ID,
		RiskScore:       score,
		RiskTier:        tier,
		OriginalPremium: original,
		DecidedAt:       now,
	}

	switch {
	case score < e.cfg.AutoApproveBelow:
		decision.Status = domain.DecisionAutoApproved
		approve(decision, original, sel.Coverage)

	case score < e.cfg.LoadedApproveBelow:
		decision.Status = domain.DecisionAutoApproved
		decision.LoadingPercent = e.cfg.LoadingPercent
		loaded := applyLoading(original, e.cfg.LoadingPercent)
		approve(decision, loaded, sel.Coverage)

	case score < e.cfg.ReviewBelow:
		decision.Status = domain.DecisionRequiresReview
		decision.RequiresMedicalExam = true

	case score < e.cfg.DocumentsBelow:
		decision.Status = domain.DecisionRequiresDocuments
		decision.RequiredDocuments = append([]string(nil), e.cfg.RequiredDocuments...)

	default:
		decision.Status = domain.DecisionRejected
		decision.RejectionReason = e.cfg.RejectionMessage
		// Rejected decisions carry no premium or coverage.
	}

	return decision
}

func approve(d *Decision, premium, coverage decimal.Decimal) {
	d.AdjustedPremium = &premium
	d.ApprovedCoverage = &coverage
}

// applyLoading inflates a premium by a whole-number percentage, rounded to
// 2 dp. Loading never discounts.
func applyLoading(premium decimal.Decimal, percent int64) decimal.Decimal {
	factor := decimal.NewFromInt(100 + percent).Div(decimal.NewFromInt(100))
	return premium.Mul(factor).Round(2)
}

// healthStatusFor derives the rate-card health band from the risk tier. The
// declaration is the source of truth at underwriting time; self-reported
// status from the profile step is not trusted for pricing.
func healthStatusFor(tier domain.RiskTier) domain.HealthStatus {
	switch tier {
	case domain.TierLow:
		return domain.HealthGood
	case domain.TierMedium:
		return domain.HealthFair
	default:
		return domain.HealthPoor
	}
}
