package audit

import (
	"context"
	"time"
)

// Store is the append-only audit sink.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListBySession(ctx context.Context, token string) ([]Event, error)
}

// Publisher captures structured audit events. It is append-only and uses the
// storage layer for persistence so tests can swap sinks easily.
//
// Underwriting decisions and issuance are compliance events: Emit is
// synchronous and fail-closed, so a step that cannot be audited must not
// commit.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

func (p *Publisher) Emit(ctx context.Context, base Event) error {
	if base.Timestamp.IsZero() {
		base.Timestamp = time.Now()
	}
	return p.store.Append(ctx, base)
}

func (p *Publisher) List(ctx context.Context, sessionToken string) ([]Event, error) {
	return p.store.ListBySession(ctx, sessionToken)
}
