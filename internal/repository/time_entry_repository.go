package repository

import (
	"context"
	"fmt"

	"Mansoor88-6/mastery-tracker/internal/models"

	txStdLib "github.com/Thiht/transactor/stdlib"
)

type TimeEntryRepository struct {
	dbGetter txStdLib.DBGetter
}

func NewTimeEntryRepository(dbGetter txStdLib.DBGetter) *TimeEntryRepository {
	return &TimeEntryRepository{dbGetter: dbGetter}
}

func (r *TimeEntryRepository) Create(ctx context.Context, entry *models.TimeEntry) error {
	_, err := r.dbGetter(ctx).ExecContext(ctx, `
		INSERT INTO time_entries (id, task_id, user_id, duration_seconds, started_at, ended_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		entry.ID,
		entry.TaskID,
		entry.UserID,
		entry.DurationSeconds,
		entry.StartedAt,
		entry.EndedAt,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create time entry: %w", err)
	}
	return nil
}

func (r *TimeEntryRepository) ListByUser(ctx context.Context, userID, taskID string) ([]*models.TimeEntry, error) {
	query := `
		SELECT e.id, e.task_id, e.user_id, e.duration_seconds, e.started_at, e.ended_at, e.created_at, t.name, t.category
		FROM time_entries e
		JOIN tasks t ON t.id = e.task_id
		WHERE e.user_id = ?
	`
	args := []any{userID}
	if taskID != "" {
		query += ` AND e.task_id = ?`
		args = append(args, taskID)
	}
	query += ` ORDER BY e.created_at DESC`

	rows, err := r.dbGetter(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries: %w", err)
	}
	defer rows.Close()

	entries := []*models.TimeEntry{}
	for rows.Next() {
		entry := models.TimeEntry{Task: &models.TaskSummary{}}
		err := rows.Scan(
			&entry.ID,
			&entry.TaskID,
			&entry.UserID,
			&entry.DurationSeconds,
			&entry.StartedAt,
			&entry.EndedAt,
			&entry.CreatedAt,
			&entry.Task.Name,
			&entry.Task.Category,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return entries, nil
}

func (r *TimeEntryRepository) DeleteByTask(ctx context.Context, userID, taskID string) (int64, error) {
	result, err := r.dbGetter(ctx).ExecContext(ctx,
		`DELETE FROM time_entries WHERE task_id = ? AND user_id = ?`, taskID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete time entries: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected, nil
}
