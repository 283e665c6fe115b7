package postgres

import (
	"context"
	"fmt"

	"Mansoor88-6/mastery-tracker/internal/models"

	pgxTransactor "github.com/Thiht/transactor/pgx"
)

// TimeEntryStore is a PostgreSQL-backed, append-only time entry log.
type TimeEntryStore struct {
	dbGetter pgxTransactor.DBGetter
}

// NewTimeEntryStore creates a TimeEntryStore.
func NewTimeEntryStore(dbGetter pgxTransactor.DBGetter) *TimeEntryStore {
	return &TimeEntryStore{dbGetter: dbGetter}
}

// Create inserts a time entry.
func (s *TimeEntryStore) Create(ctx context.Context, e *models.TimeEntry) error {
	_, err := s.dbGetter(ctx).Exec(ctx, `
		INSERT INTO time_entries (id, task_id, user_id, duration_seconds, started_at, ended_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.TaskID, e.UserID, e.DurationSeconds, e.StartedAt, e.EndedAt, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("create time entry: %w", err)
	}
	return nil
}

// ListByUser returns the user's entries newest first with the parent task's name and category.
func (s *TimeEntryStore) ListByUser(ctx context.Context, userID, taskID string) ([]*models.TimeEntry, error) {
	query := `
		SELECT e.id, e.task_id, e.user_id, e.duration_seconds, e.started_at, e.ended_at, e.created_at, t.name, t.category
		FROM time_entries e
		JOIN tasks t ON t.id = e.task_id
		WHERE e.user_id = $1`
	args := []any{userID}
	if taskID != "" {
		query += ` AND e.task_id = $2`
		args = append(args, taskID)
	}
	query += ` ORDER BY e.created_at DESC`

	rows, err := s.dbGetter(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}
	defer rows.Close()

	entries := []*models.TimeEntry{}
	for rows.Next() {
		e := models.TimeEntry{Task: &models.TaskSummary{}}
		if err := rows.Scan(&e.ID, &e.TaskID, &e.UserID, &e.DurationSeconds, &e.StartedAt, &e.EndedAt, &e.CreatedAt, &e.Task.Name, &e.Task.Category); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}
	return entries, nil
}

// DeleteByTask removes every entry of a task and reports how many were deleted.
func (s *TimeEntryStore) DeleteByTask(ctx context.Context, userID, taskID string) (int64, error) {
	tag, err := s.dbGetter(ctx).Exec(ctx, `DELETE FROM time_entries WHERE task_id = $1 AND user_id = $2`, taskID, userID)
	if err != nil {
		return 0, fmt.Errorf("delete time entries of task %s: %w", taskID, err)
	}
	return tag.RowsAffected(), nil
}
