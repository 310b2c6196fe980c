package handler

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"covergate/internal/domain"
	"covergate/internal/plan"
	"covergate/internal/pricing"
)

// ListResponse wraps the catalog listing.
type ListResponse struct {
	Plans []*PlanResponse `json:"plans"`
}

// PlanResponse is the public view of one plan. Rate-card multipliers stay
// server-side; clients get the shopping attributes and a quote endpoint.
type PlanResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	TermYears   int             `json:"term_years"`
	MinAge      int             `json:"min_age"`
	MaxAge      int             `json:"max_age"`
	CoverageMin decimal.Decimal `json:"coverage_min"`
	CoverageMax decimal.Decimal `json:"coverage_max"`
}

func FromPlan(p *plan.Plan) *PlanResponse {
	return &PlanResponse{
		ID:          p.ID.String(),
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		TermYears:   p.TermYears,
		MinAge:      p.MinAge,
		MaxAge:      p.MaxAge,
		CoverageMin: p.CoverageMin,
		CoverageMax: p.CoverageMax,
	}
}

// QuoteResponse quotes one plan across all payment frequencies.
type QuoteResponse struct {
	PlanID         string                     `json:"plan_id"`
	Age            int                        `json:"age"`
	Gender         string                     `json:"gender"`
	HealthStatus   string                     `json:"health_status"`
	OccupationRisk string                     `json:"occupation_risk"`
	Premiums       map[string]decimal.Decimal `json:"premiums"`
}

func FromQuotes(planID uuid.UUID, in pricing.Input, quotes map[domain.PaymentFrequency]decimal.Decimal) *QuoteResponse {
	premiums := make(map[string]decimal.Decimal, len(quotes))
	for freq, premium := range quotes {
		premiums[string(freq)] = premium
	}
	return &QuoteResponse{
		PlanID:         planID.String(),
		Age:            in.Age,
		Gender:         string(in.Gender),
		HealthStatus:   string(in.HealthStatus),
		OccupationRisk: string(in.OccupationRisk),
		Premiums:       premiums,
	}
}
