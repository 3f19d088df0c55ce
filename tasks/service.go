package tasks

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/user/taskdash-go/apperror"
)

// Service implements ownership-scoped task CRUD. Callers are identified by
// the ownerID resolved from the bearer token; it is never taken from request
// payloads.
type Service struct {
	store TaskStore
}

// NewService creates a task Service.
func NewService(store TaskStore) *Service {
	return &Service{store: store}
}

// Create persists a new task owned by the caller. Status defaults to pending.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req CreateTaskRequest) (*Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperror.NewValidationError("Title is required", nil)
	}

	status := req.Status
	if status == "" {
		status = StatusPending
	}
	if !status.Valid() {
		return nil, apperror.NewValidationError("Invalid input", nil)
	}

	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: req.Description,
		Status:      status,
		DueDate:     req.DueDate,
		UserID:      ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Insert(ctx, task); err != nil {
		return nil, apperror.NewDatabaseError("failed to create task", err)
	}
	return task, nil
}

// ListMine returns all and only the caller's tasks. The store decides the
// order; no ordering is promised to clients.
func (s *Service) ListMine(ctx context.Context, ownerID uuid.UUID) ([]Task, error) {
	tasks, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list tasks", err)
	}
	return tasks, nil
}

// Update applies a partial update to the caller's task. Only fields present
// in the request change; the owner field is not touchable through any
// payload. The update timestamp is refreshed on every successful mutation.
func (s *Service) Update(ctx context.Context, ownerID, taskID uuid.UUID, req UpdateTaskRequest) (*Task, error) {
	task, err := s.ownerTask(ctx, ownerID, taskID, "Not authorized to update this task")
	if err != nil {
		return nil, err
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		task.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		// An explicitly empty description clears it; an absent one is kept.
		task.Description = *req.Description
	}
	if req.Status != nil && *req.Status != "" {
		if !req.Status.Valid() {
			return nil, apperror.NewValidationError("Invalid input", nil)
		}
		task.Status = *req.Status
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.store.Update(ctx, task); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NewNotFoundError("Task not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to update task", err)
	}
	return task, nil
}

// Delete removes the caller's task. Deleting twice yields NotFound the second
// time; the operation is not idempotent.
func (s *Service) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	if _, err := s.ownerTask(ctx, ownerID, taskID, "Not authorized to delete this task"); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, taskID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperror.NewNotFoundError("Task not found", nil)
		}
		return apperror.NewDatabaseError("failed to delete task", err)
	}
	return nil
}

// ownerTask is the security-critical ownership check shared by Update and
// Delete: existence first (NotFound), then ownership (Forbidden), in exactly
// this order. A non-owner therefore learns that the task exists by receiving
// 403 instead of 404 — a known information leak kept intentionally, because
// existing clients depend on these observable status codes.
func (s *Service) ownerTask(ctx context.Context, ownerID, taskID uuid.UUID, forbiddenMsg string) (*Task, error) {
	task, err := s.store.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NewNotFoundError("Task not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get task", err)
	}
	if task.UserID != ownerID {
		return nil, apperror.NewForbiddenError(forbiddenMsg, nil)
	}
	return task, nil
}
