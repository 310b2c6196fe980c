package domain

import (
	dErrors "covergate/pkg/domain-errors"
)

// Gender as carried on the rate card. The card is binary; parsing enforces
// that, multiplier lookup handles anything stored historically.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func ParseGender(s string) (Gender, error) {
	switch Gender(s) {
	case GenderMale, GenderFemale:
		return Gender(s), nil
	}
	return "", dErrors.New(dErrors.CodeBadRequest, "unsupported gender: "+s)
}

// HealthStatus is the applicant's self-reported overall health band.
type HealthStatus string

const (
	HealthExcellent HealthStatus = "excellent"
	HealthGood      HealthStatus = "good"
	HealthFair      HealthStatus = "fair"
	HealthPoor      HealthStatus = "poor"
)

func ParseHealthStatus(s string) (HealthStatus, error) {
	switch HealthStatus(s) {
	case HealthExcellent, HealthGood, HealthFair, HealthPoor:
		return HealthStatus(s), nil
	}
	return "", dErrors.New(dErrors.CodeBadRequest, "unsupported health status: "+s)
}

// OccupationRisk bands occupations by hazard exposure.
type OccupationRisk string

const (
	OccupationLowRisk    OccupationRisk = "low"
	OccupationMediumRisk OccupationRisk = "medium"
	OccupationHighRisk   OccupationRisk = "high"
)

func ParseOccupationRisk(s string) (OccupationRisk, error) {
	switch OccupationRisk(s) {
	case OccupationLowRisk, OccupationMediumRisk, OccupationHighRisk:
		return OccupationRisk(s), nil
	}
	return "", dErrors.New(dErrors.CodeBadRequest, "unsupported occupation risk: "+s)
}
