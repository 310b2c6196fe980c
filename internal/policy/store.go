package policy

import (
	"context"

	"github.com/google/uuid"
)

// Store persists issued policies.
type Store interface {
	Save(ctx context.Context, p *Policy) error
	FindByID(ctx context.Context, id uuid.UUID) (*Policy, error)
	FindBySession(ctx context.Context, token string) (*Policy, error)
}
