package service

import (
	"context"
	"database/sql"
	"sync"
	"time"

	dErrors "covergate/pkg/domain-errors"
	txcontext "covergate/pkg/platform/tx"
)

// SessionTx serializes step execution per session token. Two handlers for the
// same token never run concurrently; different tokens proceed in parallel.
// This is what keeps the flag-ordering invariant safe under concurrent
// resubmission.
type SessionTx interface {
	RunInSession(ctx context.Context, token string, fn func(ctx context.Context) error) error
}

// numSessionShards spreads token locks across mutexes so unrelated sessions
// do not contend.
const numSessionShards = 128

// defaultStepTimeout bounds one step's unit of work.
const defaultStepTimeout = 5 * time.Second

// ShardedSessionTx provides per-token serialization with sharded mutexes.
// Suitable for single-process deployments; multi-process deployments use the
// Redis lock instead.
type ShardedSessionTx struct {
	shards  [numSessionShards]sync.Mutex
	timeout time.Duration
}

func NewShardedSessionTx() *ShardedSessionTx {
	return &ShardedSessionTx{timeout: defaultStepTimeout}
}

func (t *ShardedSessionTx) RunInSession(ctx context.Context, token string, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "step aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultStepTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	shard := hashToken(token) % numSessionShards
	t.shards[shard].Lock()
	defer t.shards[shard].Unlock()

	// Check again after acquiring the lock.
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "step aborted: context cancelled")
	}

	return fn(ctx)
}

// hashToken uses FNV-1a for even shard distribution.
func hashToken(s string) uint32 {
	const (
		fnvOffset = 2166136261
		fnvPrime  = 16777619
	)
	h := uint32(fnvOffset)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime
	}
	return h
}

// UnitOfWork runs a step's persistence atomically: the step entity and the
// session flag commit together or not at all.
type UnitOfWork interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}

// PassthroughUnitOfWork backs the in-memory stores, whose per-token lock
// already serializes the step.
type PassthroughUnitOfWork struct{}

func (PassthroughUnitOfWork) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// SQLUnitOfWork wraps the step in a database transaction carried via context
// so every store joins it.
type SQLUnitOfWork struct {
	db *sql.DB
}

func NewSQLUnitOfWork(db *sql.DB) *SQLUnitOfWork {
	return &SQLUnitOfWork{db: db}
}

func (u *SQLUnitOfWork) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "begin step transaction")
	}

	if err := fn(txcontext.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "commit step transaction")
	}
	return nil
}
