package payment

import (
	"context"
	"sync"

	"covergate/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu       sync.RWMutex
	payments map[string]*Payment
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{payments: make(map[string]*Payment)}
}

func (s *InMemoryStore) Save(_ context.Context, p *Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.payments[p.SessionToken]; exists {
		return sentinel.ErrConflict
	}
	cp := *p
	s.payments[p.SessionToken] = &cp
	return nil
}

func (s *InMemoryStore) FindBySession(_ context.Context, token string) (*Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.payments[token]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *p
	return &cp, nil
}
