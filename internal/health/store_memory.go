package health

import (
	"context"
	"sync"

	"covergate/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu           sync.RWMutex
	declarations map[string]*Declaration
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{declarations: make(map[string]*Declaration)}
}

func (s *InMemoryStore) Save(_ context.Context, d *Declaration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.declarations[d.SessionToken]; exists {
		return sentinel.ErrConflict
	}
	cp := *d
	cp.Conditions = append([]Condition(nil), d.Conditions...)
	cp.FamilyHistory = append([]ConditionCode(nil), d.FamilyHistory...)
	s.declarations[d.SessionToken] = &cp
	return nil
}

func (s *InMemoryStore) FindBySession(_ context.Context, token string) (*Declaration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.declarations[token]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *d
	cp.Conditions = append([]Condition(nil), d.Conditions...)
	cp.FamilyHistory = append([]ConditionCode(nil), d.FamilyHistory...)
	return &cp, nil
}
