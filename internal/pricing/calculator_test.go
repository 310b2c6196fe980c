package pricing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"covergate/internal/domain"
	"covergate/internal/plan"
	dErrors "covergate/pkg/domain-errors"
)

type CalculatorSuite struct {
	suite.Suite
	ctx   context.Context
	calc  *Calculator
	term  *plan.Plan
	whole *plan.Plan
}

func (s *CalculatorSuite) SetupTest() {
	s.ctx = context.Background()
	store := plan.NewInMemoryStore()
	seeded := plan.SeedCatalog(store)
	s.term = seeded[0]
	s.whole = seeded[1]
	s.calc = NewCalculator(store, nil)
}

func TestCalculatorSuite(t *testing.T) {
	suite.Run(t, new(CalculatorSuite))
}

func (s *CalculatorSuite) TestMonthlyPremiumMultipliesRateCard() {
	// 100 base × 1.2 (age 30) × 1.0 (female) × 1.0 (good) × 1.0 (low risk)
	premium, err := s.calc.Premium(s.ctx, s.term.ID, Input{
		Age:            30,
		Gender:         domain.GenderFemale,
		HealthStatus:   domain.HealthGood,
		OccupationRisk: domain.OccupationLowRisk,
		Frequency:      domain.FrequencyMonthly,
	})
	s.Require().NoError(err)
	s.Equal("120.00", premium.StringFixed(2))
}

func (s *CalculatorSuite) TestAllMultipliersStack() {
	// 100 × 1.5 (age 40) × 1.1 (male) × 1.3 (fair) × 1.25 (medium) = 268.125 → 268.13
	premium, err := s.calc.Premium(s.ctx, s.term.ID, Input{
		Age:            40,
		Gender:         domain.GenderMale,
		HealthStatus:   domain.HealthFair,
		OccupationRisk: domain.OccupationMediumRisk,
		Frequency:      domain.FrequencyMonthly,
	})
	s.Require().NoError(err)
	s.Equal("268.13", premium.StringFixed(2))
}

func (s *CalculatorSuite) TestFrequencyFallbacks() {
	base := Input{
		Age:            22,
		Gender:         domain.GenderFemale,
		HealthStatus:   domain.HealthGood,
		OccupationRisk: domain.OccupationLowRisk,
	}

	s.Run("quarterly derives from monthly x3", func() {
		in := base
		in.Frequency = domain.FrequencyQuarterly
		premium, err := s.calc.Premium(s.ctx, s.term.ID, in)
		s.Require().NoError(err)
		s.Equal("300.00", premium.StringFixed(2))
	})

	s.Run("semi-annual derives from monthly x6", func() {
		in := base
		in.Frequency = domain.FrequencySemiAnnual
		premium, err := s.calc.Premium(s.ctx, s.term.ID, in)
		s.Require().NoError(err)
		s.Equal("600.00", premium.StringFixed(2))
	})

	s.Run("lump sum derives from annual x term", func() {
		in := base
		in.Frequency = domain.FrequencyLumpSum
		premium, err := s.calc.Premium(s.ctx, s.term.ID, in)
		s.Require().NoError(err)
		// 1100 annual × 20 years = 22000
		s.Equal("22000.00", premium.StringFixed(2))
	})

	s.Run("direct rate wins over fallback", func() {
		in := base
		in.Frequency = domain.FrequencyQuarterly
		premium, err := s.calc.Premium(s.ctx, s.whole.ID, in)
		s.Require().NoError(err)
		// Whole life carries an explicit 740 quarterly base.
		s.Equal("740.00", premium.StringFixed(2))
	})
}

func (s *CalculatorSuite) TestAgeOutsideBandsUsesUnitMultiplier() {
	premium, err := s.calc.Premium(s.ctx, s.term.ID, Input{
		Age:            70,
		Gender:         domain.GenderFemale,
		HealthStatus:   domain.HealthGood,
		OccupationRisk: domain.OccupationLowRisk,
		Frequency:      domain.FrequencyMonthly,
	})
	s.Require().NoError(err)
	s.Equal("100.00", premium.StringFixed(2))
}

func (s *CalculatorSuite) TestUnknownPlanReturnsNotFound() {
	_, err := s.calc.Premium(s.ctx, uuid.New(), Input{
		Age:       30,
		Gender:    domain.GenderFemale,
		Frequency: domain.FrequencyMonthly,
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *CalculatorSuite) TestAllFrequenciesMatchesSingleFrequencyPath() {
	in := Input{
		Age:            30,
		Gender:         domain.GenderMale,
		HealthStatus:   domain.HealthExcellent,
		OccupationRisk: domain.OccupationHighRisk,
	}

	quotes, err := s.calc.AllFrequencies(s.ctx, s.term.ID, in)
	s.Require().NoError(err)
	s.Len(quotes, len(domain.AllFrequencies))

	for _, freq := range domain.AllFrequencies {
		single := in
		single.Frequency = freq
		premium, err := s.calc.Premium(s.ctx, s.term.ID, single)
		s.Require().NoError(err)
		s.True(quotes[freq].Equal(premium), "frequency %s diverged", freq)
	}
}

func (s *CalculatorSuite) TestPremiumRoundsToTwoDecimals() {
	p := &plan.Plan{
		BaseMonthly:   decimal.RequireFromString("33.335"),
		AgeBand26to35: decimal.NewFromInt(1),
		GenderFemale:  decimal.NewFromInt(1),
		HealthGood:    decimal.NewFromInt(1),
		OccupationLow: decimal.NewFromInt(1),
	}
	premium := PremiumFor(p, Input{
		Age:            30,
		Gender:         domain.GenderFemale,
		HealthStatus:   domain.HealthGood,
		OccupationRisk: domain.OccupationLowRisk,
		Frequency:      domain.FrequencyMonthly,
	})
	s.Equal("33.34", premium.StringFixed(2))
}
