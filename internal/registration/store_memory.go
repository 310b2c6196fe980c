package registration

import (
	"context"
	"sync"

	"covergate/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*Session)}
}

func (s *InMemoryStore) Create(_ context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[session.Token]; exists {
		return sentinel.ErrConflict
	}
	s.sessions[session.Token] = copySession(session)
	return nil
}

func (s *InMemoryStore) FindByToken(_ context.Context, token string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return copySession(session), nil
}

func (s *InMemoryStore) Update(_ context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.sessions[session.Token]
	if !ok {
		return sentinel.ErrNotFound
	}
	if current.Status != StatusInProgress {
		return sentinel.ErrImmutable
	}
	s.sessions[session.Token] = copySession(session)
	return nil
}

func copySession(s *Session) *Session {
	cp := *s
	if s.PlanID != nil {
		v := *s.PlanID
		cp.PlanID = &v
	}
	if s.Coverage != nil {
		v := *s.Coverage
		cp.Coverage = &v
	}
	if s.PolicyID != nil {
		v := *s.PolicyID
		cp.PolicyID = &v
	}
	return &cp
}
