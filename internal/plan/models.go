package plan

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"covergate/internal/domain"
)

// Plan is the rate card for one insurance product. Reference data: the
// registration workflow reads it and never mutates it.
type Plan struct {
	ID          uuid.UUID
	Code        string
	Name        string
	Description string
	TermYears   int

	MinAge int
	MaxAge int

	CoverageMin decimal.Decimal
	CoverageMax decimal.Decimal

	// Base premium per payment frequency. A zero value means the frequency
	// has no direct rate and the calculator derives a fallback.
	BaseMonthly    decimal.Decimal
	BaseQuarterly  decimal.Decimal
	BaseSemiAnnual decimal.Decimal
	BaseAnnual     decimal.Decimal
	BaseLumpSum    decimal.Decimal

	// Age band multipliers, five non-overlapping bands spanning MinAge..MaxAge.
	AgeBand18to25 decimal.Decimal
	AgeBand26to35 decimal.Decimal
	AgeBand36to45 decimal.Decimal
	AgeBand46to55 decimal.Decimal
	AgeBand56to65 decimal.Decimal

	HealthExcellent decimal.Decimal
	HealthGood      decimal.Decimal
	HealthFair      decimal.Decimal
	HealthPoor      decimal.Decimal

	GenderMale   decimal.Decimal
	GenderFemale decimal.Decimal

	OccupationLow    decimal.Decimal
	OccupationMedium decimal.Decimal
	OccupationHigh   decimal.Decimal

	CreatedAt time.Time
}

// AgeBand is one row of the ordered age-multiplier table. Min and Max are
// inclusive.
type AgeBand struct {
	Min        int
	Max        int
	Multiplier decimal.Decimal
}

// AgeBands returns the ordered range table for age multiplier lookup.
// Ages outside every band carry multiplier 1.0 (handled by the caller).
func (p *Plan) AgeBands() []AgeBand {
	return []AgeBand{
		{Min: 18, Max: 25, Multiplier: p.AgeBand18to25},
		{Min: 26, Max: 35, Multiplier: p.AgeBand26to35},
		{Min: 36, Max: 45, Multiplier: p.AgeBand36to45},
		{Min: 46, Max: 55, Multiplier: p.AgeBand46to55},
		{Min: 56, Max: 65, Multiplier: p.AgeBand56to65},
	}
}

// HealthMultiplier looks up the health-status multiplier. Unrecognized
// statuses fall back to the Good multiplier.
func (p *Plan) HealthMultiplier(status domain.HealthStatus) decimal.Decimal {
	switch status {
	case domain.HealthExcellent:
		return p.HealthExcellent
	case domain.HealthFair:
		return p.HealthFair
	case domain.HealthPoor:
		return p.HealthPoor
	default:
		return p.HealthGood
	}
}

// GenderMultiplier looks up the gender multiplier. The rate card is binary;
// anything not male uses the female leg.
func (p *Plan) GenderMultiplier(g domain.Gender) decimal.Decimal {
	if g == domain.GenderMale {
		return p.GenderMale
	}
	return p.GenderFemale
}

// OccupationMultiplier looks up the occupation-risk multiplier. Unrecognized
// bands fall back to the Low multiplier.
func (p *Plan) OccupationMultiplier(r domain.OccupationRisk) decimal.Decimal {
	switch r {
	case domain.OccupationMediumRisk:
		return p.OccupationMedium
	case domain.OccupationHighRisk:
		return p.OccupationHigh
	default:
		return p.OccupationLow
	}
}

// InsurableAge reports whether the applicant's age is inside the plan's
// insurable window.
func (p *Plan) InsurableAge(age int) bool {
	return age >= p.MinAge && age <= p.MaxAge
}
