package auth

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryUserStore is an in-memory UserStore for tests and local development.
// It enforces the same email uniqueness the database schema does.
type MemoryUserStore struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]User
	byEmail map[string]uuid.UUID
}

// NewMemoryUserStore creates an empty MemoryUserStore.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		byID:    make(map[uuid.UUID]User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (s *MemoryUserStore) Insert(_ context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[user.Email]; taken {
		return ErrDuplicateEmail
	}
	s.byID[user.ID] = *user
	s.byEmail[user.Email] = user.ID
	return nil
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	user := s.byID[id]
	return &user, nil
}

func (s *MemoryUserStore) FindByID(_ context.Context, id uuid.UUID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}
