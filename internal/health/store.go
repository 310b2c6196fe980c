package health

import "context"

// Store persists health declarations. Save is create-only: a session gets
// exactly one declaration and it never changes afterwards.
type Store interface {
	Save(ctx context.Context, d *Declaration) error
	FindBySession(ctx context.Context, token string) (*Declaration, error)
}
