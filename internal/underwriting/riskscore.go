package underwriting

import (
	"github.com/shopspring/decimal"

	"covergate/internal/domain"
	"covergate/internal/health"
)

// Risk scoring is deterministic and point-additive: every matching rule adds
// its points, there is no cap, and rules never subtract. Keeping the rules in
// one table makes the actuarial review diffable.

type scoringRule struct {
	name    string
	points  int
	applies func(d *health.Declaration) bool
}

var bmiUnderOrObese = decimal.RequireFromString("18.5")
var bmiOverweight = decimal.NewFromInt(25)
var bmiObese = decimal.NewFromInt(30)

var scoringRules = []scoringRule{
	{
		// Underweight or obese outranks the overweight band; the bands are
		// mutually exclusive so at most one fires.
		name:   "bmi_out_of_range",
		points: 10,
		applies: func(d *health.Declaration) bool {
			return d.BMI.LessThan(bmiUnderOrObese) || d.BMI.GreaterThan(bmiObese)
		},
	},
	{
		name:   "bmi_overweight",
		points: 5,
		applies: func(d *health.Declaration) bool {
			return d.BMI.GreaterThan(bmiOverweight) && d.BMI.LessThanOrEqual(bmiObese)
		},
	},
	{
		name:    "smoker",
		points:  15,
		applies: func(d *health.Declaration) bool { return d.IsSmoker() },
	},
	{
		name:    "heavy_smoker",
		points:  10,
		applies: func(d *health.Declaration) bool { return d.IsSmoker() && d.PacksPerDay > 10 },
	},
	{
		name:    "daily_drinker",
		points:  10,
		applies: func(d *health.Declaration) bool { return d.DrinksDaily() },
	},
	{
		name:    "regular_drinker",
		points:  5,
		applies: func(d *health.Declaration) bool { return d.DrinksRegularly() },
	},
	{
		name:    "heart_disease",
		points:  25,
		applies: func(d *health.Declaration) bool { return d.Has(health.ConditionHeartDisease) },
	},
	{
		name:    "diabetes",
		points:  20,
		applies: func(d *health.Declaration) bool { return d.Has(health.ConditionDiabetes) },
	},
	{
		name:    "cancer",
		points:  30,
		applies: func(d *health.Declaration) bool { return d.Has(health.ConditionCancer) },
	},
	{
		name:    "hypertension",
		points:  15,
		applies: func(d *health.Declaration) bool { return d.Has(health.ConditionHypertension) },
	},
	{
		name:    "mental_illness",
		points:  10,
		applies: func(d *health.Declaration) bool { return d.Has(health.ConditionMentalIllness) },
	},
	{
		name:    "recent_hospitalization",
		points:  15,
		applies: func(d *health.Declaration) bool { return d.RecentHospitalization },
	},
	{
		name:    "high_risk_occupation",
		points:  10,
		applies: func(d *health.Declaration) bool { return d.OccupationRisk == domain.OccupationHighRisk },
	},
}

// ScoreRisk computes the additive risk score and its tier for a declaration.
func ScoreRisk(d *health.Declaration) (int, domain.RiskTier) {
	score := 0
	for _, rule := range scoringRules {
		if rule.applies(d) {
			score += rule.points
		}
	}
	return score, TierFor(score)
}

// TierFor maps a score onto its underwriting tier.
func TierFor(score int) domain.RiskTier {
	switch {
	case score < 20:
		return domain.TierLow
	case score < 40:
		return domain.TierMedium
	case score < 60:
		return domain.TierHigh
	default:
		return domain.TierVeryHigh
	}
}
