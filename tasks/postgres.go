package tasks

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresTaskStore persists tasks in PostgreSQL through the shared pool.
type PostgresTaskStore struct {
	pool *pgxpool.Pool
}

// NewPostgresTaskStore creates a PostgresTaskStore.
func NewPostgresTaskStore(pool *pgxpool.Pool) *PostgresTaskStore {
	return &PostgresTaskStore{pool: pool}
}

func (s *PostgresTaskStore) Insert(ctx context.Context, task *Task) error {
	query := `INSERT INTO tasks (id, title, description, status, due_date, user_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := s.pool.Exec(ctx, query,
		task.ID, task.Title, task.Description, task.Status, task.DueDate,
		task.UserID, task.CreatedAt, task.UpdatedAt)
	return err
}

func (s *PostgresTaskStore) FindByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	query := `SELECT id, title, description, status, due_date, user_id, created_at, updated_at
	          FROM tasks WHERE id = $1`
	var task Task
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&task.ID, &task.Title, &task.Description, &task.Status, &task.DueDate,
		&task.UserID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (s *PostgresTaskStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Task, error) {
	query := `SELECT id, title, description, status, due_date, user_id, created_at, updated_at
	          FROM tasks WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := s.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []Task{}
	for rows.Next() {
		var task Task
		if err := rows.Scan(
			&task.ID, &task.Title, &task.Description, &task.Status, &task.DueDate,
			&task.UserID, &task.CreatedAt, &task.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (s *PostgresTaskStore) Update(ctx context.Context, task *Task) error {
	// Whole-record write; last write wins on concurrent edits to the same
	// task, matching the store's per-document semantics. user_id is absent
	// from the SET list on purpose.
	query := `UPDATE tasks
	          SET title = $2, description = $3, status = $4, due_date = $5, updated_at = $6
	          WHERE id = $1`
	tag, err := s.pool.Exec(ctx, query,
		task.ID, task.Title, task.Description, task.Status, task.DueDate, task.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
