package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"Mansoor88-6/mastery-tracker/internal/apperrors"
	"Mansoor88-6/mastery-tracker/internal/models"

	txStdLib "github.com/Thiht/transactor/stdlib"
)

const selectTask = `SELECT id, user_id, name, category, hours_spent, created_at, updated_at FROM tasks`

type scannable interface {
	Scan(dest ...any) error
}

type TaskRepository struct {
	dbGetter txStdLib.DBGetter
}

func NewTaskRepository(dbGetter txStdLib.DBGetter) *TaskRepository {
	return &TaskRepository{dbGetter: dbGetter}
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	_, err := r.dbGetter(ctx).ExecContext(ctx, `
		INSERT INTO tasks (id, user_id, name, category, hours_spent, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, task.ID, task.UserID, task.Name, task.Category, task.HoursSpent, task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, userID, id string) (*models.Task, error) {
	row := r.dbGetter(ctx).QueryRowContext(ctx, selectTask+` WHERE id = ? AND user_id = ?`, id, userID)

	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID string) ([]*models.Task, error) {
	rows, err := r.dbGetter(ctx).QueryContext(ctx, selectTask+` WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, userID, id string, update *models.UpdateTaskRequest, updatedAt time.Time) (*models.Task, error) {
	setParts := []string{"updated_at = ?"}
	args := []any{updatedAt}

	if update.Name != nil {
		setParts = append(setParts, "name = ?")
		args = append(args, *update.Name)
	}
	if update.Category != nil {
		setParts = append(setParts, "category = ?")
		args = append(args, *update.Category)
	}
	if update.HoursSpent != nil {
		setParts = append(setParts, "hours_spent = ?")
		args = append(args, *update.HoursSpent)
	}

	query := fmt.Sprintf(`UPDATE tasks SET %s WHERE id = ? AND user_id = ?`, strings.Join(setParts, ", "))
	args = append(args, id, userID)

	result, err := r.dbGetter(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if err := requireRow(result, "task", id); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, userID, id)
}

func (r *TaskRepository) AddHours(ctx context.Context, userID, id string, hours float64, updatedAt time.Time) error {
	result, err := r.dbGetter(ctx).ExecContext(ctx, `
		UPDATE tasks
		SET hours_spent = hours_spent + ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`, hours, updatedAt, id, userID)
	if err != nil {
		return fmt.Errorf("failed to add hours to task: %w", err)
	}
	return requireRow(result, "task", id)
}

func (r *TaskRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.dbGetter(ctx).ExecContext(ctx, `DELETE FROM tasks WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return requireRow(result, "task", id)
}

func scanTask(row scannable) (*models.Task, error) {
	var task models.Task
	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Name,
		&task.Category,
		&task.HoursSpent,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	task.SetProgress()
	return &task, nil
}

func requireRow(result sql.Result, kind, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, apperrors.ErrNotFound)
	}
	return nil
}
