// Package identity is the user-store collaborator. The workflow core reads
// users and grants roles; credentials are someone else's problem.
package identity

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"covergate/pkg/platform/sentinel"
)

// RolePolicyholder is granted when a user's first policy is issued.
const RolePolicyholder = "policyholder"

// User is the minimal identity the workflow needs.
type User struct {
	ID        uuid.UUID
	Email     string
	FullName  string
	Roles     []string
	CreatedAt time.Time
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Store is the identity collaborator interface.
type Store interface {
	FindUser(ctx context.Context, id uuid.UUID) (*User, error)
	AddRole(ctx context.Context, id uuid.UUID, role string) error
}

// InMemoryStore backs tests and standalone deployments.
type InMemoryStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*User
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{users: make(map[uuid.UUID]*User)}
}

// Put adds or replaces a user. Seeding and tests only.
func (s *InMemoryStore) Put(_ context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	cp.Roles = append([]string(nil), u.Roles...)
	s.users[u.ID] = &cp
	return nil
}

func (s *InMemoryStore) FindUser(_ context.Context, id uuid.UUID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *u
	cp.Roles = append([]string(nil), u.Roles...)
	return &cp, nil
}

// SelfProvisioningStore treats any authenticated user as existing. Standalone
// deployments have no upstream identity service to sync from, so the first
// lookup creates the record; the bearer token already proves the user.
type SelfProvisioningStore struct {
	InMemoryStore
	now func() time.Time
}

func NewSelfProvisioningStore() *SelfProvisioningStore {
	return &SelfProvisioningStore{
		InMemoryStore: InMemoryStore{users: make(map[uuid.UUID]*User)},
		now:           time.Now,
	}
}

func (s *SelfProvisioningStore) FindUser(ctx context.Context, id uuid.UUID) (*User, error) {
	if u, err := s.InMemoryStore.FindUser(ctx, id); err == nil {
		return u, nil
	}
	u := &User{ID: id, CreatedAt: s.now()}
	if err := s.Put(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *InMemoryStore) AddRole(_ context.Context, id uuid.UUID, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	for _, r := range u.Roles {
		if r == role {
			return nil
		}
	}
	u.Roles = append(u.Roles, role)
	return nil
}
