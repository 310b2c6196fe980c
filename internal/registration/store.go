package registration

import "context"

// Store persists registration sessions.
//
// Update must refuse writes to sessions already in a terminal status so the
// immutability rule holds even if a service bug slips through.
type Store interface {
	Create(ctx context.Context, s *Session) error
	FindByToken(ctx context.Context, token string) (*Session, error)
	Update(ctx context.Context, s *Session) error
}
