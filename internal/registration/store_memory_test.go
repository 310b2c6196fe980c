package registration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"covergate/pkg/platform/sentinel"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()

	newSession := func() *Session {
		return &Session{
			Token:          NewToken(),
			UserID:         uuid.New(),
			CurrentStep:    StepAccountCreated,
			Status:         StatusInProgress,
			AccountCreated: true,
		}
	}

	t.Run("create and find round-trip", func(t *testing.T) {
		store := NewInMemoryStore()
		session := newSession()
		require.NoError(t, store.Create(ctx, session))

		got, err := store.FindByToken(ctx, session.Token)
		require.NoError(t, err)
		assert.Equal(t, session.Token, got.Token)
		assert.Equal(t, session.UserID, got.UserID)
	})

	t.Run("duplicate token conflicts", func(t *testing.T) {
		store := NewInMemoryStore()
		session := newSession()
		require.NoError(t, store.Create(ctx, session))
		assert.ErrorIs(t, store.Create(ctx, session), sentinel.ErrConflict)
	})

	t.Run("unknown token is not found", func(t *testing.T) {
		store := NewInMemoryStore()
		_, err := store.FindByToken(ctx, "reg_missing")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("terminal sessions are immutable", func(t *testing.T) {
		store := NewInMemoryStore()
		session := newSession()
		require.NoError(t, store.Create(ctx, session))

		session.Status = StatusRejected
		require.NoError(t, store.Update(ctx, session))

		session.RejectionReason = "changed my mind"
		assert.ErrorIs(t, store.Update(ctx, session), sentinel.ErrImmutable)
	})

	t.Run("stored session is isolated from caller mutation", func(t *testing.T) {
		store := NewInMemoryStore()
		session := newSession()
		coverage := decimal.NewFromInt(100_000)
		session.Coverage = &coverage
		require.NoError(t, store.Create(ctx, session))

		*session.Coverage = decimal.NewFromInt(999)
		got, err := store.FindByToken(ctx, session.Token)
		require.NoError(t, err)
		assert.Equal(t, "100000", got.Coverage.String())
	})
}
