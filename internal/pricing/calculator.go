// Package pricing derives premiums from a plan's rate card. The math is pure
// and table-driven; the Calculator only touches the plan store to resolve
// plan IDs.
package pricing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"covergate/internal/domain"
	"covergate/internal/plan"
	"covergate/internal/platform/metrics"
	dErrors "covergate/pkg/domain-errors"
	"covergate/pkg/platform/sentinel"
)

// Input carries the applicant-side rating factors.
type Input struct {
	Age            int
	Gender         domain.Gender
	HealthStatus   domain.HealthStatus
	OccupationRisk domain.OccupationRisk
	Frequency      domain.PaymentFrequency
}

// Calculator resolves plans and computes premiums.
type Calculator struct {
	plans   plan.Store
	metrics *metrics.Metrics
}

func NewCalculator(plans plan.Store, m *metrics.Metrics) *Calculator {
	return &Calculator{plans: plans, metrics: m}
}

// Premium computes the premium for one frequency.
// Returns CodeNotFound for unknown plan IDs; no partial computation happens.
func (c *Calculator) Premium(ctx context.Context, planID uuid.UUID, in Input) (decimal.Decimal, error) {
	p, err := c.plans.FindByID(ctx, planID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return decimal.Zero, dErrors.New(dErrors.CodeNotFound, "plan not found")
		}
		return decimal.Zero, dErrors.Wrap(err, dErrors.CodeInternal, "plan lookup failed")
	}
	return c.premiumFor(p, in), nil
}

// AllFrequencies computes the premium for every supported frequency with
// otherwise identical inputs. It is implemented strictly as repeated calls to
// the single-frequency path so the two can never diverge.
func (c *Calculator) AllFrequencies(ctx context.Context, planID uuid.UUID, in Input) (map[domain.PaymentFrequency]decimal.Decimal, error) {
	out := make(map[domain.PaymentFrequency]decimal.Decimal, len(domain.AllFrequencies))
	for _, freq := range domain.AllFrequencies {
		freqIn := in
		freqIn.Frequency = freq
		premium, err := c.Premium(ctx, planID, freqIn)
		if err != nil {
			return nil, err
		}
		out[freq] = premium
	}
	return out, nil
}

func (c *Calculator) premiumFor(p *plan.Plan, in Input) decimal.Decimal {
	start := time.Now()
	premium := PremiumFor(p, in)
	if c.metrics != nil {
		c.metrics.PremiumCalcDuration.Observe(time.Since(start).Seconds())
	}
	return premium
}

// PremiumFor is the pure rating function:
//
//	premium = base(frequency) × ageMult × genderMult × healthMult × occupationMult
//
// rounded to 2 decimal places. Exposed so the underwriting engine can rate a
// resolved plan without a second store round trip.
func PremiumFor(p *plan.Plan, in Input) decimal.Decimal {
	base := basePremium(p, in.Frequency)

	premium := base.
		Mul(ageMultiplier(p, in.Age)).
		Mul(p.GenderMultiplier(in.Gender)).
		Mul(p.HealthMultiplier(in.HealthStatus)).
		Mul(p.OccupationMultiplier(in.OccupationRisk))

	return premium.Round(2)
}

// fallbacks derives a base premium for frequencies the rate card leaves
// unset. Keyed by frequency so the policy stays data-driven.
var fallbacks = map[domain.PaymentFrequency]func(p *plan.Plan) decimal.Decimal{
	domain.FrequencyQuarterly: func(p *plan.Plan) decimal.Decimal {
		return p.BaseMonthly.Mul(decimal.NewFromInt(3))
	},
	domain.FrequencySemiAnnual: func(p *plan.Plan) decimal.Decimal {
		return p.BaseMonthly.Mul(decimal.NewFromInt(6))
	},
	domain.FrequencyLumpSum: func(p *plan.Plan) decimal.Decimal {
		return p.BaseAnnual.Mul(decimal.NewFromInt(int64(p.TermYears)))
	},
}

// directBases maps each frequency to its rate card accessor.
var directBases = map[domain.PaymentFrequency]func(p *plan.Plan) decimal.Decimal{
	domain.FrequencyMonthly:    func(p *plan.Plan) decimal.Decimal { return p.BaseMonthly },
	domain.FrequencyQuarterly:  func(p *plan.Plan) decimal.Decimal { return p.BaseQuarterly },
	domain.FrequencySemiAnnual: func(p *plan.Plan) decimal.Decimal { return p.BaseSemiAnnual },
	domain.FrequencyAnnual:     func(p *plan.Plan) decimal.Decimal { return p.BaseAnnual },
	domain.FrequencyLumpSum:    func(p *plan.Plan) decimal.Decimal { return p.BaseLumpSum },
}

func basePremium(p *plan.Plan, freq domain.PaymentFrequency) decimal.Decimal {
	if accessor, ok := directBases[freq]; ok {
		if base := accessor(p); base.IsPositive() {
			return base
		}
	}
	if derive, ok := fallbacks[freq]; ok {
		if base := derive(p); base.IsPositive() {
			return base
		}
	}
	// Annual is the default base for everything else that is unset.
	return p.BaseAnnual
}

func ageMultiplier(p *plan.Plan, age int) decimal.Decimal {
	for _, band := range p.AgeBands() {
		if age >= band.Min && age <= band.Max {
			return band.Multiplier
		}
	}
	return decimal.NewFromInt(1)
}
