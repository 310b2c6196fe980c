package underwriting

import "context"

// Store persists underwriting decisions. Save is create-only; a session gets
// exactly one decision.
type Store interface {
	Save(ctx context.Context, d *Decision) error
	FindBySession(ctx context.Context, token string) (*Decision, error)
}
