package jwttoken

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "covergate/pkg/domain-errors"
)

func newTestService() *JWTService {
	return NewJWTService("test-signing-key", "covergate", "covergate-api")
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "jo@example.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "jo@example.com", claims.Email)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateAccessToken(uuid.New(), "", -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	assert.Equal(t, "token has expired", dErrors.MessageOf(err))
}

func TestValidateTokenSignedWithDifferentKey(t *testing.T) {
	other := NewJWTService("other-key", "covergate", "covergate-api")
	token, err := other.GenerateAccessToken(uuid.New(), "", time.Hour)
	require.NoError(t, err)

	_, err = newTestService().ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidateGarbageToken(t *testing.T) {
	_, err := newTestService().ValidateToken("not.a.jwt")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
