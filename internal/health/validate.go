package health

import (
	"github.com/shopspring/decimal"

	dErrors "covergate/pkg/domain-errors"
)

var validSmoking = map[Smoking]bool{SmokingNever: true, SmokingFormer: true, SmokingCurrent: true}
var validAlcohol = map[Alcohol]bool{AlcoholNever: true, AlcoholOccasionally: true, AlcoholRegularly: true, AlcoholDaily: true}
var validExercise = map[Exercise]bool{ExerciseNone: true, ExerciseLight: true, ExerciseModerate: true, ExerciseIntense: true}
var validSleep = map[Sleep]bool{SleepPoor: true, SleepFair: true, SleepGood: true}
var validStress = map[Stress]bool{StressLow: true, StressModerate: true, StressHigh: true}
var validDiet = map[Diet]bool{DietPoor: true, DietAverage: true, DietGood: true}

var validConditions = map[ConditionCode]bool{
	ConditionHeartDisease: true, ConditionDiabetes: true, ConditionCancer: true,
	ConditionHypertension: true, ConditionMentalIllness: true, ConditionStroke: true,
	ConditionKidneyDisease: true, ConditionLiverDisease: true, ConditionRespiratory: true,
	ConditionEpilepsy: true, ConditionThyroidDisorder: true, ConditionArthritis: true,
	ConditionAnemia: true, ConditionHIV: true, ConditionTuberculosis: true,
}

var validTreatment = map[TreatmentStatus]bool{
	TreatmentOngoing: true, TreatmentResolved: true, TreatmentUntreated: true,
}

// Bounds for plausible human vitals. Anything outside is a client input
// error, not a risk signal.
var (
	minHeightCM = decimal.NewFromInt(50)
	maxHeightCM = decimal.NewFromInt(250)
	minWeightKG = decimal.NewFromInt(20)
	maxWeightKG = decimal.NewFromInt(400)
)

// Validate checks the declaration and derives BMI. Callers must run it before
// persisting; the store never accepts a declaration whose BMI was supplied
// independently.
func (d *Declaration) Validate() error {
	if !d.Consent {
		return dErrors.New(dErrors.CodeBadRequest, "health declaration requires consent")
	}
	if d.HeightCM.LessThan(minHeightCM) || d.HeightCM.GreaterThan(maxHeightCM) {
		return dErrors.New(dErrors.CodeBadRequest, "height must be between 50 and 250 cm")
	}
	if d.WeightKG.LessThan(minWeightKG) || d.WeightKG.GreaterThan(maxWeightKG) {
		return dErrors.New(dErrors.CodeBadRequest, "weight must be between 20 and 400 kg")
	}
	if d.SystolicBP < 0 || d.SystolicBP > 300 || d.DiastolicBP < 0 || d.DiastolicBP > 200 {
		return dErrors.New(dErrors.CodeBadRequest, "blood pressure out of range")
	}
	if d.PacksPerDay < 0 {
		return dErrors.New(dErrors.CodeBadRequest, "packs per day cannot be negative")
	}
	if !validSmoking[d.Smoking] {
		return dErrors.New(dErrors.CodeBadRequest, "unsupported smoking status: "+string(d.Smoking))
	}
	if !validAlcohol[d.Alcohol] {
		return dErrors.New(dErrors.CodeBadRequest, "unsupported alcohol frequency: "+string(d.Alcohol))
	}
	if !validExercise[d.Exercise] {
		return dErrors.New(dErrors.CodeBadRequest, "unsupported exercise level: "+string(d.Exercise))
	}
	if !validSleep[d.Sleep] {
		return dErrors.New(dErrors.CodeBadRequest, "unsupported sleep quality: "+string(d.Sleep))
	}
	if !validStress[d.Stress] {
		return dErrors.New(dErrors.CodeBadRequest, "unsupported stress level: "+string(d.Stress))
	}
	if !validDiet[d.Diet] {
		return dErrors.New(dErrors.CodeBadRequest, "unsupported diet quality: "+string(d.Diet))
	}
	for _, c := range d.Conditions {
		if !validConditions[c.Code] {
			return dErrors.New(dErrors.CodeBadRequest, "unknown condition: "+string(c.Code))
		}
		if c.Treatment != "" && !validTreatment[c.Treatment] {
			return dErrors.New(dErrors.CodeBadRequest, "unknown treatment status: "+string(c.Treatment))
		}
	}
	for _, code := range d.FamilyHistory {
		if !validConditions[code] {
			return dErrors.New(dErrors.CodeBadRequest, "unknown family history condition: "+string(code))
		}
	}

	d.BMI = ComputeBMI(d.HeightCM, d.WeightKG)
	return nil
}
