// Package health models the applicant's health declaration. The declaration
// is created once at the health step and is append-only afterwards so the
// underwriting audit trail stays intact.
package health

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"covergate/internal/domain"
)

// Smoking is the canonical smoking representation. The legacy boolean
// IsSmoker from older clients maps onto this at the HTTP boundary.
type Smoking string

const (
	SmokingNever   Smoking = "never"
	SmokingFormer  Smoking = "former"
	SmokingCurrent Smoking = "current"
)

// Alcohol consumption frequency.
type Alcohol string

const (
	AlcoholNever        Alcohol = "never"
	AlcoholOccasionally Alcohol = "occasionally"
	AlcoholRegularly    Alcohol = "regularly"
	AlcoholDaily        Alcohol = "daily"
)

// Exercise level.
type Exercise string

const (
	ExerciseNone     Exercise = "none"
	ExerciseLight    Exercise = "light"
	ExerciseModerate Exercise = "moderate"
	ExerciseIntense  Exercise = "intense"
)

// Sleep quality.
type Sleep string

const (
	SleepPoor Sleep = "poor"
	SleepFair Sleep = "fair"
	SleepGood Sleep = "good"
)

// Stress level.
type Stress string

const (
	StressLow      Stress = "low"
	StressModerate Stress = "moderate"
	StressHigh     Stress = "high"
)

// Diet quality.
type Diet string

const (
	DietPoor    Diet = "poor"
	DietAverage Diet = "average"
	DietGood    Diet = "good"
)

// ConditionCode names a declared medical condition. Conditions are stored as
// first-class rows, not serialized blobs.
type ConditionCode string

const (
	ConditionHeartDisease    ConditionCode = "heart_disease"
	ConditionDiabetes        ConditionCode = "diabetes"
	ConditionCancer          ConditionCode = "cancer"
	ConditionHypertension    ConditionCode = "hypertension"
	ConditionMentalIllness   ConditionCode = "mental_illness"
	ConditionStroke          ConditionCode = "stroke"
	ConditionKidneyDisease   ConditionCode = "kidney_disease"
	ConditionLiverDisease    ConditionCode = "liver_disease"
	ConditionRespiratory     ConditionCode = "respiratory_disease"
	ConditionEpilepsy        ConditionCode = "epilepsy"
	ConditionThyroidDisorder ConditionCode = "thyroid_disorder"
	ConditionArthritis       ConditionCode = "arthritis"
	ConditionAnemia          ConditionCode = "anemia"
	ConditionHIV             ConditionCode = "hiv"
	ConditionTuberculosis    ConditionCode = "tuberculosis"
)

// TreatmentStatus tracks where a declared condition stands.
type TreatmentStatus string

const (
	TreatmentOngoing   TreatmentStatus = "ongoing"
	TreatmentResolved  TreatmentStatus = "resolved"
	TreatmentUntreated TreatmentStatus = "untreated"
)

// Condition is one declared medical condition.
type Condition struct {
	Code        ConditionCode
	DiagnosedAt *time.Time
	Treatment   TreatmentStatus
}

// Declaration is the health declaration aggregate, one per registration
// session.
type Declaration struct {
	ID           uuid.UUID
	SessionToken string

	// Vitals. BMI is always derived from height and weight, never supplied.
	HeightCM    decimal.Decimal
	WeightKG    decimal.Decimal
	BMI         decimal.Decimal
	SystolicBP  int
	DiastolicBP int
	Cholesterol int

	Smoking     Smoking
	PacksPerDay int
	Alcohol     Alcohol
	Exercise    Exercise
	Sleep       Sleep
	Stress      Stress
	Diet        Diet

	Conditions    []Condition
	FamilyHistory []ConditionCode

	OccupationRisk        domain.OccupationRisk
	RecentHospitalization bool

	Consent    bool
	DeclaredAt time.Time
}

// ComputeBMI derives BMI = weight_kg / (height_m)^2 rounded to 2 dp.
func ComputeBMI(heightCM, weightKG decimal.Decimal) decimal.Decimal {
	heightM := heightCM.Div(decimal.NewFromInt(100))
	return weightKG.DivRound(heightM.Mul(heightM), 2)
}

// Has reports whether a condition was declared.
func (d *Declaration) Has(code ConditionCode) bool {
	for _, c := range d.Conditions {
		if c.Code == code {
			return true
		}
	}
	return false
}

// IsSmoker reports current smoking. Kept as behavior, not a second stored
// field.
func (d *Declaration) IsSmoker() bool {
	return d.Smoking == SmokingCurrent
}

// DrinksDaily and DrinksRegularly expose the alcohol bands the risk scorer
// cares about.
func (d *Declaration) DrinksDaily() bool     { return d.Alcohol == AlcoholDaily }
func (d *Declaration) DrinksRegularly() bool { return d.Alcohol == AlcoholRegularly }
