package registration

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewToken(t *testing.T) {
	token := NewToken()
	assert.True(t, strings.HasPrefix(token, "reg_"))
	assert.Len(t, token, len("reg_")+32)
	assert.NotEqual(t, token, NewToken())
}

func TestPercentComplete(t *testing.T) {
	s := &Session{}
	assert.Equal(t, 0, s.PercentComplete())

	s.AccountCreated = true
	assert.Equal(t, 12, s.PercentComplete())

	s.KYCCompleted = true
	s.ProfileCompleted = true
	s.ProductSelected = true
	assert.Equal(t, 50, s.PercentComplete())

	s.HealthDeclared = true
	s.UnderwritingApproved = true
	s.PaymentCompleted = true
	s.PolicyIssued = true
	assert.Equal(t, 100, s.PercentComplete())
}

func TestFlagsOrdered(t *testing.T) {
	s := &Session{AccountCreated: true, KYCCompleted: true}
	assert.True(t, s.FlagsOrdered())

	// A later flag without its predecessors breaks the invariant.
	s = &Session{AccountCreated: true, ProductSelected: true}
	assert.False(t, s.FlagsOrdered())

	s = &Session{}
	assert.True(t, s.FlagsOrdered())
}

func TestNextAction(t *testing.T) {
	s := &Session{Status: StatusInProgress}
	assert.Equal(t, "Create your account", s.NextAction())

	s.AccountCreated = true
	assert.Equal(t, "Complete identity verification", s.NextAction())

	s.KYCCompleted = true
	assert.Equal(t, "Complete your profile", s.NextAction())

	s.Status = StatusRejected
	assert.Equal(t, "Registration rejected", s.NextAction())

	s.Status = StatusCompleted
	assert.Equal(t, "Registration complete", s.NextAction())
}

func TestAge(t *testing.T) {
	dob := time.Date(1995, 6, 15, 0, 0, 0, 0, time.UTC)
	s := &Session{DateOfBirth: dob}

	beforeBirthday := time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 30, s.Age(beforeBirthday))

	onBirthday := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 31, s.Age(onBirthday))
}

func TestTerminal(t *testing.T) {
	assert.False(t, (&Session{Status: StatusInProgress}).Terminal())
	assert.True(t, (&Session{Status: StatusRejected}).Terminal())
	assert.True(t, (&Session{Status: StatusCompleted}).Terminal())
}
