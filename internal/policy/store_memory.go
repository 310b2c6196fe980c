package policy

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"covergate/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu        sync.RWMutex
	byID      map[uuid.UUID]*Policy
	bySession map[string]*Policy
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		byID:      make(map[uuid.UUID]*Policy),
		bySession: make(map[string]*Policy),
	}
}

func (s *InMemoryStore) Save(_ context.Context, p *Policy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.bySession[p.SessionToken]; exists {
		return sentinel.ErrConflict
	}
	cp := *p
	s.byID[p.ID] = &cp
	s.bySession[p.SessionToken] = &cp
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (*Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *InMemoryStore) FindBySession(_ context.Context, token string) (*Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.bySession[token]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *p
	return &cp, nil
}
