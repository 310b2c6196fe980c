package payment

import "context"

// Store persists payments. One payment per session in this flow.
type Store interface {
	Save(ctx context.Context, p *Payment) error
	FindBySession(ctx context.Context, token string) (*Payment, error)
}
