package health

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"covergate/internal/domain"
	dErrors "covergate/pkg/domain-errors"
)

func validDeclaration() *Declaration {
	return &Declaration{
		HeightCM:       decimal.NewFromInt(175),
		WeightKG:       decimal.NewFromInt(70),
		SystolicBP:     120,
		DiastolicBP:    80,
		Smoking:        SmokingNever,
		Alcohol:        AlcoholOccasionally,
		Exercise:       ExerciseModerate,
		Sleep:          SleepGood,
		Stress:         StressLow,
		Diet:           DietGood,
		OccupationRisk: domain.OccupationLowRisk,
		Consent:        true,
	}
}

func TestComputeBMI(t *testing.T) {
	cases := []struct {
		heightCM string
		weightKG string
		want     string
	}{
		{"175", "70", "22.86"},
		{"160", "82", "32.03"},
		{"180", "59.9", "18.49"},
		{"200", "100", "25.00"},
	}
	for _, tc := range cases {
		got := ComputeBMI(decimal.RequireFromString(tc.heightCM), decimal.RequireFromString(tc.weightKG))
		assert.Equal(t, tc.want, got.StringFixed(2), "height %s weight %s", tc.heightCM, tc.weightKG)
	}
}

func TestDeclarationValidate(t *testing.T) {
	t.Run("valid declaration derives BMI", func(t *testing.T) {
		d := validDeclaration()
		require.NoError(t, d.Validate())
		assert.Equal(t, "22.86", d.BMI.StringFixed(2))
	})

	t.Run("supplied BMI is overwritten", func(t *testing.T) {
		d := validDeclaration()
		d.BMI = decimal.NewFromInt(99)
		require.NoError(t, d.Validate())
		assert.Equal(t, "22.86", d.BMI.StringFixed(2))
	})

	t.Run("consent is required", func(t *testing.T) {
		d := validDeclaration()
		d.Consent = false
		err := d.Validate()
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("height bounds", func(t *testing.T) {
		d := validDeclaration()
		d.HeightCM = decimal.NewFromInt(49)
		assert.Error(t, d.Validate())

		d.HeightCM = decimal.NewFromInt(251)
		assert.Error(t, d.Validate())
	})

	t.Run("weight bounds", func(t *testing.T) {
		d := validDeclaration()
		d.WeightKG = decimal.NewFromInt(19)
		assert.Error(t, d.Validate())

		d.WeightKG = decimal.NewFromInt(401)
		assert.Error(t, d.Validate())
	})

	t.Run("unknown enum values are rejected", func(t *testing.T) {
		d := validDeclaration()
		d.Smoking = "sometimes"
		assert.Error(t, d.Validate())

		d = validDeclaration()
		d.Alcohol = "weekends"
		assert.Error(t, d.Validate())
	})

	t.Run("unknown condition code is rejected", func(t *testing.T) {
		d := validDeclaration()
		d.Conditions = []Condition{{Code: "sniffles"}}
		assert.Error(t, d.Validate())
	})

	t.Run("known conditions and family history pass", func(t *testing.T) {
		d := validDeclaration()
		d.Conditions = []Condition{{Code: ConditionDiabetes, Treatment: TreatmentOngoing}}
		d.FamilyHistory = []ConditionCode{ConditionHeartDisease, ConditionCancer}
		assert.NoError(t, d.Validate())
	})
}

func TestDeclarationAccessors(t *testing.T) {
	d := validDeclaration()
	assert.False(t, d.IsSmoker())

	d.Smoking = SmokingCurrent
	assert.True(t, d.IsSmoker())

	d.Smoking = SmokingFormer
	assert.False(t, d.IsSmoker())

	d.Conditions = []Condition{{Code: ConditionDiabetes}}
	assert.True(t, d.Has(ConditionDiabetes))
	assert.False(t, d.Has(ConditionCancer))
}
