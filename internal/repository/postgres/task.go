// Package postgres implements the task, time entry and journal stores on PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Mansoor88-6/mastery-tracker/internal/apperrors"
	"Mansoor88-6/mastery-tracker/internal/models"

	pgxTransactor "github.com/Thiht/transactor/pgx"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const taskColumns = `id, user_id, name, category, hours_spent, created_at, updated_at`

// TaskStore is a PostgreSQL-backed task store.
type TaskStore struct {
	dbGetter pgxTransactor.DBGetter
}

// NewTaskStore creates a TaskStore.
func NewTaskStore(dbGetter pgxTransactor.DBGetter) *TaskStore {
	return &TaskStore{dbGetter: dbGetter}
}

// Create inserts a new task.
func (s *TaskStore) Create(ctx context.Context, t *models.Task) error {
	_, err := s.dbGetter(ctx).Exec(ctx, `
		INSERT INTO tasks (id, user_id, name, category, hours_spent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.UserID, t.Name, t.Category, t.HoursSpent, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// GetByID retrieves a single task owned by userID.
func (s *TaskStore) GetByID(ctx context.Context, userID, id string) (*models.Task, error) {
	row := s.dbGetter(ctx).QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	t, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get task %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get task %s: %w", id, err)
	}
	return t, nil
}

// ListByUser returns the user's tasks, newest first.
func (s *TaskStore) ListByUser(ctx context.Context, userID string) ([]*models.Task, error) {
	rows, err := s.dbGetter(ctx).Query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}
	return tasks, nil
}

// Update modifies the supplied task fields and returns the result.
func (s *TaskStore) Update(ctx context.Context, userID, id string, update *models.UpdateTaskRequest, updatedAt time.Time) (*models.Task, error) {
	setClauses := "updated_at = $1"
	args := []any{updatedAt}
	argIdx := 2

	if update.Name != nil {
		setClauses += fmt.Sprintf(", name = $%d", argIdx)
		args = append(args, *update.Name)
		argIdx++
	}
	if update.Category != nil {
		setClauses += fmt.Sprintf(", category = $%d", argIdx)
		args = append(args, *update.Category)
		argIdx++
	}
	if update.HoursSpent != nil {
		setClauses += fmt.Sprintf(", hours_spent = $%d", argIdx)
		args = append(args, *update.HoursSpent)
		argIdx++
	}

	args = append(args, id, userID)
	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = $%d AND user_id = $%d RETURNING %s", setClauses, argIdx, argIdx+1, taskColumns)

	t, err := scanTask(s.dbGetter(ctx).QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("update task %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update task %s: %w", id, err)
	}
	return t, nil
}

// AddHours atomically increments hours_spent; the row lock serialises concurrent accruals.
func (s *TaskStore) AddHours(ctx context.Context, userID, id string, hours float64, updatedAt time.Time) error {
	tag, err := s.dbGetter(ctx).Exec(ctx, `
		UPDATE tasks SET hours_spent = hours_spent + $1, updated_at = $2
		WHERE id = $3 AND user_id = $4`,
		hours, updatedAt, id, userID)
	if err != nil {
		return fmt.Errorf("add hours to task %s: %w", id, err)
	}
	return requireRow(tag, "task", id)
}

// Delete removes a task owned by userID.
func (s *TaskStore) Delete(ctx context.Context, userID, id string) error {
	tag, err := s.dbGetter(ctx).Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	return requireRow(tag, "task", id)
}

func scanTask(row pgx.Row) (*models.Task, error) {
	var t models.Task
	if err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Category, &t.HoursSpent, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.SetProgress()
	return &t, nil
}

func requireRow(tag pgconn.CommandTag, kind, id string) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, apperrors.ErrNotFound)
	}
	return nil
}
