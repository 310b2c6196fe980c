// Package kyc fronts the eKYC provider. The simulated verifier approves
// everything with fixed confidence scores; a real integration would replace
// it with an async provider call plus a manual-review fallback.
package kyc

import (
	"context"
	"time"
)

// Request carries the applicant's identity document references.
type Request struct {
	UserID         string
	DocumentType   string
	DocumentNumber string
	SelfieRef      string
}

// Result is the verifier's verdict.
type Result struct {
	Status             string
	DocumentConfidence float64
	FaceMatchScore     float64
	VerifiedAt         time.Time
}

const StatusApproved = "approved"

// Verifier checks an applicant's identity.
type Verifier interface {
	Verify(ctx context.Context, req Request) (Result, error)
}

// SimulatedVerifier always approves.
type SimulatedVerifier struct{}

func NewSimulatedVerifier() *SimulatedVerifier {
	return &SimulatedVerifier{}
}

func (v *SimulatedVerifier) Verify(_ context.Context, _ Request) (Result, error) {
	return Result{
		Status:             StatusApproved,
		DocumentConfidence: 0.98,
		FaceMatchScore:     0.95,
		VerifiedAt:         time.Now(),
	}, nil
}
