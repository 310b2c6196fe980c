// Package policy materializes issued policies. A policy is only ever created
// from an approved underwriting decision; client-supplied amounts are never
// trusted at issuance.
package policy

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"covergate/internal/domain"
)

// Status of an issued policy.
type Status string

const (
	StatusActive Status = "active"
	StatusLapsed Status = "lapsed"
)

// Policy is the issued insurance contract.
type Policy struct {
	ID           uuid.UUID
	Number       string
	SessionToken string
	UserID       uuid.UUID
	PlanID       uuid.UUID

	Coverage  decimal.Decimal
	Premium   decimal.Decimal
	Frequency domain.PaymentFrequency

	Status    Status
	StartDate time.Time
	EndDate   time.Time
	IssuedAt  time.Time
}

// NewNumber generates a policy number in the form POL-{yyyyMMdd}-{8 random
// uppercase hex}.
func NewNumber(now time.Time) string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return "POL-" + now.Format("20060102") + "-" + strings.ToUpper(hex.EncodeToString(buf))
}
