package plan

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"covergate/pkg/platform/sentinel"
)

// InMemoryStore keeps the plan catalog in process memory. Used in tests and
// in deployments that seed the catalog at boot.
type InMemoryStore struct {
	mu    sync.RWMutex
	plans map[uuid.UUID]*Plan
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{plans: make(map[uuid.UUID]*Plan)}
}

// Put adds or replaces a plan. Seeding only.
func (s *InMemoryStore) Put(_ context.Context, p *Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.plans[p.ID] = &cp
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (*Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.plans[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Plan, 0, len(s.plans))
	for _, p := range s.plans {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}
