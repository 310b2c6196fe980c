package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	tRequire "github.com/stretchr/testify/require"

	dErrors "covergate/pkg/domain-errors"
)

func TestShardedSessionTxSerializesSameToken(t *testing.T) {
	tx := NewShardedSessionTx()
	ctx := context.Background()

	const workers = 16
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := tx.RunInSession(ctx, "reg_same", func(context.Context) error {
				// Unsynchronized on purpose; the lock must make this safe.
				counter++
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, workers, counter)
}

func TestShardedSessionTxCancelledContext(t *testing.T) {
	tx := NewShardedSessionTx()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := tx.RunInSession(ctx, "reg_x", func(context.Context) error {
		t.Fatal("fn must not run on a dead context")
		return nil
	})
	tRequire.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
}

func TestShardedSessionTxAddsDeadline(t *testing.T) {
	tx := NewShardedSessionTx()

	err := tx.RunInSession(context.Background(), "reg_y", func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Fatal("expected a step deadline")
		}
		return nil
	})
	tRequire.NoError(t, err)
}

func TestPassthroughUnitOfWork(t *testing.T) {
	ran := false
	err := PassthroughUnitOfWork{}.Run(context.Background(), func(context.Context) error {
		ran = true
		return nil
	})
	tRequire.NoError(t, err)
	assert.True(t, ran)
}
