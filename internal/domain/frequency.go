package domain

import (
	dErrors "covergate/pkg/domain-errors"
)

// PaymentFrequency is a domain value that identifies how often a premium is
// paid. Invariant: the value must be one of the supported frequencies.
//
// Usage: construct via ParsePaymentFrequency at trust boundaries to enforce
// the allowlist; direct casting bypasses validation.
type PaymentFrequency string

const (
	FrequencyMonthly    PaymentFrequency = "monthly"
	FrequencyQuarterly  PaymentFrequency = "quarterly"
	FrequencySemiAnnual PaymentFrequency = "semi_annual"
	FrequencyAnnual     PaymentFrequency = "annual"
	FrequencyLumpSum    PaymentFrequency = "lump_sum"
)

// validFrequencies is the single source of truth for valid payment frequencies.
var validFrequencies = map[PaymentFrequency]bool{
	FrequencyMonthly:    true,
	FrequencyQuarterly:  true,
	FrequencySemiAnnual: true,
	FrequencyAnnual:     true,
	FrequencyLumpSum:    true,
}

// AllFrequencies lists frequencies in rate-card order. The order is part of
// the quote contract (comparison displays iterate it).
var AllFrequencies = []PaymentFrequency{
	FrequencyMonthly,
	FrequencyQuarterly,
	FrequencySemiAnnual,
	FrequencyAnnual,
	FrequencyLumpSum,
}

// ParsePaymentFrequency constructs a PaymentFrequency from external input.
// Returns CodeBadRequest when the value is empty or unsupported.
func ParsePaymentFrequency(s string) (PaymentFrequency, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "payment frequency cannot be empty")
	}
	f := PaymentFrequency(s)
	if !validFrequencies[f] {
		return "", dErrors.New(dErrors.CodeBadRequest, "unsupported payment frequency: "+s)
	}
	return f, nil
}

func (f PaymentFrequency) String() string { return string(f) }
