package handler

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"covergate/internal/domain"
	"covergate/internal/health"
	"covergate/internal/registration/service"
	dErrors "covergate/pkg/domain-errors"
)

// KYCRequest is the HTTP request body for POST /registration/{token}/kyc.
type KYCRequest struct {
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	SelfieRef      string `json:"selfie_ref"`
}

func (r *KYCRequest) Validate() error {
	r.DocumentType = strings.TrimSpace(r.DocumentType)
	r.DocumentNumber = strings.TrimSpace(r.DocumentNumber)
	if r.DocumentType == "" {
		return dErrors.New(dErrors.CodeBadRequest, "document_type is required")
	}
	if r.DocumentNumber == "" {
		return dErrors.New(dErrors.CodeBadRequest, "document_number is required")
	}
	if len(r.DocumentNumber) > 40 {
		return dErrors.New(dErrors.CodeBadRequest, "document_number must be at most 40 characters")
	}
	return nil
}

func (r *KYCRequest) Input() service.KYCInput {
	return service.KYCInput{
		DocumentType:   r.DocumentType,
		DocumentNumber: r.DocumentNumber,
		SelfieRef:      r.SelfieRef,
	}
}

// ProfileRequest is the HTTP request body for POST /registration/{token}/profile.
type ProfileRequest struct {
	DateOfBirth    string `json:"date_of_birth"`
	Gender         string `json:"gender"`
	Occupation     string `json:"occupation"`
	OccupationRisk string `json:"occupation_risk"`

	// Parsed values (populated by Validate)
	parsedDOB    time.Time
	parsedGender domain.Gender
	parsedRisk   domain.OccupationRisk
}

func (r *ProfileRequest) Validate() error {
	dob, err := time.Parse("2006-01-02", r.DateOfBirth)
	if err != nil {
		return dErrors.New(dErrors.CodeBadRequest, "date_of_birth must be YYYY-MM-DD")
	}
	r.parsedDOB = dob

	gender, err := domain.ParseGender(r.Gender)
	if err != nil {
		return err
	}
	r.parsedGender = gender

	risk, err := domain.ParseOccupationRisk(r.OccupationRisk)
	if err != nil {
		return err
	}
	r.parsedRisk = risk

	r.Occupation = strings.TrimSpace(r.Occupation)
	if r.Occupation == "" {
		return dErrors.New(dErrors.CodeBadRequest, "occupation is required")
	}
	return nil
}

func (r *ProfileRequest) Input() service.ProfileInput {
	return service.ProfileInput{
		DateOfBirth:    r.parsedDOB,
		Gender:         r.parsedGender,
		Occupation:     r.Occupation,
		OccupationRisk: r.parsedRisk,
	}
}

// ProductRequest is the HTTP request body for POST /registration/{token}/product.
type ProductRequest struct {
	PlanID           string          `json:"plan_id"`
	CoverageAmount   decimal.Decimal `json:"coverage_amount"`
	PaymentFrequency string          `json:"payment_frequency"`

	parsedPlanID    uuid.UUID
	parsedFrequency domain.PaymentFrequency
}

func (r *ProductRequest) Validate() error {
	planID, err := uuid.Parse(r.PlanID)
	if err != nil {
		return dErrors.New(dErrors.CodeBadRequest, "plan_id must be a UUID")
	}
	r.parsedPlanID = planID

	if !r.CoverageAmount.IsPositive() {
		return dErrors.New(dErrors.CodeBadRequest, "coverage_amount must be positive")
	}

	freq, err := domain.ParsePaymentFrequency(r.PaymentFrequency)
	if err != nil {
		return err
	}
	r.parsedFrequency = freq
	return nil
}

func (r *ProductRequest) Input() service.ProductInput {
	return service.ProductInput{
		PlanID:    r.parsedPlanID,
		Coverage:  r.CoverageAmount,
		Frequency: r.parsedFrequency,
	}
}

// ConditionRequest is one declared medical condition.
type ConditionRequest struct {
	Code        string     `json:"code"`
	DiagnosedAt *time.Time `json:"diagnosed_at,omitempty"`
	Treatment   string     `json:"treatment,omitempty"`
}

// HealthRequest is the HTTP request body for POST /registration/{token}/health.
// Smoking accepts the canonical never/former/current values; older clients
// still send the boolean is_smoker, which maps onto the enum here and nowhere
// else.
type HealthRequest struct {
	HeightCM    decimal.Decimal `json:"height_cm"`
	WeightKG    decimal.Decimal `json:"weight_kg"`
	SystolicBP  int             `json:"systolic_bp"`
	DiastolicBP int             `json:"diastolic_bp"`
	Cholesterol int             `json:"cholesterol"`

	Smoking     string `json:"smoking,omitempty"`
	IsSmoker    *bool  `json:"is_smoker,omitempty"`
	PacksPerDay int    `json:"packs_per_day"`
	Alcohol     string `json:"alcohol"`
	Exercise    string `json:"exercise"`
	Sleep       string `json:"sleep"`
	Stress      string `json:"stress"`
	Diet        string `json:"diet"`

	Conditions    []ConditionRequest `json:"conditions,omitempty"`
	FamilyHistory []string           `json:"family_history,omitempty"`

	RecentHospitalization bool `json:"recent_hospitalization"`
	Consent               bool `json:"consent"`
}

func (r *HealthRequest) Validate() error {
	if r.Smoking == "" {
		switch {
		case r.IsSmoker == nil:
			return dErrors.New(dErrors.CodeBadRequest, "smoking status is required")
		case *r.IsSmoker:
			r.Smoking = string(health.SmokingCurrent)
		default:
			r.Smoking = string(health.SmokingNever)
		}
	}
	// Full semantic validation happens on the declaration itself.
	return nil
}

// Declaration builds the domain aggregate. The service fills in the session
// linkage and runs the declaration's own validation.
func (r *HealthRequest) Declaration() *health.Declaration {
	d := &health.Declaration{
		HeightCM:              r.HeightCM,
		WeightKG:              r.WeightKG,
		SystolicBP:            r.SystolicBP,
		DiastolicBP:           r.DiastolicBP,
		Cholesterol:           r.Cholesterol,
		Smoking:               health.Smoking(r.Smoking),
		PacksPerDay:           r.PacksPerDay,
		Alcohol:               health.Alcohol(r.Alcohol),
		Exercise:              health.Exercise(r.Exercise),
		Sleep:                 health.Sleep(r.Sleep),
		Stress:                health.Stress(r.Stress),
		Diet:                  health.Diet(r.Diet),
		RecentHospitalization: r.RecentHospitalization,
		Consent:               r.Consent,
	}
	for _, c := range r.Conditions {
		d.Conditions = append(d.Conditions, health.Condition{
			Code:        health.ConditionCode(c.Code),
			DiagnosedAt: c.DiagnosedAt,
			Treatment:   health.TreatmentStatus(c.Treatment),
		})
	}
	for _, code := range r.FamilyHistory {
		d.FamilyHistory = append(d.FamilyHistory, health.ConditionCode(code))
	}
	return d
}

// PaymentRequest is the HTTP request body for POST /registration/{token}/payment.
type PaymentRequest struct {
	Method string `json:"method"`
}

var validMethods = map[string]bool{
	"card": true, "bank_transfer": true, "wallet": true,
}

func (r *PaymentRequest) Validate() error {
	r.Method = strings.TrimSpace(r.Method)
	if r.Method == "" {
		return dErrors.New(dErrors.CodeBadRequest, "method is required")
	}
	if !validMethods[r.Method] {
		return dErrors.New(dErrors.CodeBadRequest, "unsupported payment method: "+r.Method)
	}
	return nil
}
