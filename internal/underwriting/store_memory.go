package underwriting

import (
	"context"
	"sync"

	"covergate/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu        sync.RWMutex
	decisions map[string]*Decision
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{decisions: make(map[string]*Decision)}
}

func (s *InMemoryStore) Save(_ context.Context, d *Decision) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.decisions[d.SessionToken]; exists {
		return sentinel.ErrConflict
	}
	s.decisions[d.SessionToken] = copyDecision(d)
	return nil
}

func (s *InMemoryStore) FindBySession(_ context.Context, token string) (*Decision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.decisions[token]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return copyDecision(d), nil
}

func copyDecision(d *Decision) *Decision {
	cp := *d
	cp.RequiredDocuments = append([]string(nil), d.RequiredDocuments...)
	if d.AdjustedPremium != nil {
		v := *d.AdjustedPremium
		cp.AdjustedPremium = &v
	}
	if d.ApprovedCoverage != nil {
		v := *d.ApprovedCoverage
		cp.ApprovedCoverage = &v
	}
	return &cp
}
