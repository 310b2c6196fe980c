package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	dErrors "covergate/pkg/domain-errors"
)

// RedisSessionTx serializes steps across processes with a per-token lock in
// Redis (SET NX PX, owner-checked release). Use this when more than one
// instance serves the same session space.
type RedisSessionTx struct {
	client  *redis.Client
	ttl     time.Duration
	retry   time.Duration
	timeout time.Duration
}

// releaseScript deletes the lock only if this process still owns it, so an
// expired-and-reacquired lock is never released by the old owner.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`)

func NewRedisSessionTx(client *redis.Client) *RedisSessionTx {
	return &RedisSessionTx{
		client:  client,
		ttl:     10 * time.Second,
		retry:   50 * time.Millisecond,
		timeout: defaultStepTimeout,
	}
}

func (t *RedisSessionTx) RunInSession(ctx context.Context, token string, fn func(ctx context.Context) error) error {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	key := "covergate:session-lock:" + token
	owner := uuid.NewString()

	for {
		ok, err := t.client.SetNX(ctx, key, owner, t.ttl).Result()
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "acquire session lock")
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return dErrors.Wrap(ctx.Err(), dErrors.CodeTimeout, "timed out waiting for session lock")
		case <-time.After(t.retry):
		}
	}
	defer func() {
		// Release on a fresh context; the step context may already be done.
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = releaseScript.Run(releaseCtx, t.client, []string{key}, owner).Err()
	}()

	return fn(ctx)
}
