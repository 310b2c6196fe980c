package underwriting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"covergate/internal/domain"
	"covergate/internal/health"
)

func healthyDeclaration() *health.Declaration {
	return &health.Declaration{
		HeightCM: decimal.NewFromInt(175),
		WeightKG: decimal.NewFromInt(70),
		BMI:      decimal.RequireFromString("22.86"),
		Smoking:  health.SmokingNever,
		Alcohol:  health.AlcoholNever,
		Exercise: health.ExerciseModerate,
		Sleep:    health.SleepGood,
		Stress:   health.StressLow,
		Diet:     health.DietGood,

		OccupationRisk: domain.OccupationLowRisk,
		Consent:        true,
	}
}

func TestScoreRisk(t *testing.T) {
	t.Run("clean declaration scores zero", func(t *testing.T) {
		score, tier := ScoreRisk(healthyDeclaration())
		assert.Equal(t, 0, score)
		assert.Equal(t, domain.TierLow, tier)
	})

	t.Run("obese heavy smoker with diabetes", func(t *testing.T) {
		d := healthyDeclaration()
		d.BMI = decimal.NewFromInt(32)        // 10
		d.Smoking = health.SmokingCurrent     // 15
		d.PacksPerDay = 15                    // +10 heavy smoker
		d.Conditions = []health.Condition{{Code: health.ConditionDiabetes}} // 20

		score, tier := ScoreRisk(d)
		assert.Equal(t, 55, score)
		assert.Equal(t, domain.TierHigh, tier)
	})

	t.Run("former smoker scores nothing for smoking", func(t *testing.T) {
		d := healthyDeclaration()
		d.Smoking = health.SmokingFormer
		d.PacksPerDay = 20

		score, _ := ScoreRisk(d)
		assert.Equal(t, 0, score)
	})

	t.Run("bmi bands are mutually exclusive", func(t *testing.T) {
		d := healthyDeclaration()

		d.BMI = decimal.RequireFromString("27.5")
		score, _ := ScoreRisk(d)
		assert.Equal(t, 5, score, "overweight band")

		d.BMI = decimal.RequireFromString("30.0")
		score, _ = ScoreRisk(d)
		assert.Equal(t, 5, score, "30 is the top of the overweight band")

		d.BMI = decimal.RequireFromString("30.1")
		score, _ = ScoreRisk(d)
		assert.Equal(t, 10, score, "above 30 is obese")

		d.BMI = decimal.RequireFromString("18.4")
		score, _ = ScoreRisk(d)
		assert.Equal(t, 10, score, "underweight")
	})

	t.Run("conditions are additive without cap", func(t *testing.T) {
		d := healthyDeclaration()
		d.Conditions = []health.Condition{
			{Code: health.ConditionHeartDisease}, // 25
			{Code: health.ConditionCancer},       // 30
			{Code: health.ConditionHypertension}, // 15
		}
		d.RecentHospitalization = true // 15
		d.OccupationRisk = domain.OccupationHighRisk // 10
		d.Alcohol = health.AlcoholDaily              // 10

		score, tier := ScoreRisk(d)
		assert.Equal(t, 105, score)
		assert.Equal(t, domain.TierVeryHigh, tier)
	})

	t.Run("alcohol bands do not stack", func(t *testing.T) {
		d := healthyDeclaration()
		d.Alcohol = health.AlcoholRegularly
		score, _ := ScoreRisk(d)
		assert.Equal(t, 5, score)

		d.Alcohol = health.AlcoholDaily
		score, _ = ScoreRisk(d)
		assert.Equal(t, 10, score)
	})
}

func TestTierFor(t *testing.T) {
	cases := []struct {
		score int
		tier  domain.RiskTier
	}{
		{0, domain.TierLow},
		{19, domain.TierLow},
		{20, domain.TierMedium},
		{39, domain.TierMedium},
		{40, domain.TierHigh},
		{59, domain.TierHigh},
		{60, domain.TierVeryHigh},
		{120, domain.TierVeryHigh},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.tier, TierFor(tc.score), "score %d", tc.score)
	}
}
