// Package payment records premium payments. Processing is simulated: the
// capture always succeeds, the way the eKYC check is simulated elsewhere. The
// record still matters - issuance and audit read it.
package payment

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"covergate/internal/domain"
)

// Payment is one captured premium payment for a session.
type Payment struct {
	ID           uuid.UUID
	SessionToken string
	Reference    string
	Amount       decimal.Decimal
	Frequency    domain.PaymentFrequency
	Method       string
	CapturedAt   time.Time
}

// NewReference generates a payment reference like PAY-9F3A2C01.
func NewReference() string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return "PAY-" + strings.ToUpper(hex.EncodeToString(buf))
}
