package tasks

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryTaskStore is an in-memory TaskStore for tests and local development.
// ListByOwner returns tasks in insertion order, the closest analog of
// store-native order.
type MemoryTaskStore struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]Task
	order []uuid.UUID
}

// NewMemoryTaskStore creates an empty MemoryTaskStore.
func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{byID: make(map[uuid.UUID]Task)}
}

func (s *MemoryTaskStore) Insert(_ context.Context, task *Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID[task.ID] = *task
	s.order = append(s.order, task.ID)
	return nil
}

func (s *MemoryTaskStore) FindByID(_ context.Context, id uuid.UUID) (*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &task, nil
}

func (s *MemoryTaskStore) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := []Task{}
	for _, id := range s.order {
		if task, ok := s.byID[id]; ok && task.UserID == ownerID {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (s *MemoryTaskStore) Update(_ context.Context, task *Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[task.ID]; !ok {
		return ErrNotFound
	}
	s.byID[task.ID] = *task
	return nil
}

func (s *MemoryTaskStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
