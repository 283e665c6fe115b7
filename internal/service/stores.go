package service

import (
	"context"
	"time"

	"Mansoor88-6/mastery-tracker/internal/models"
)

// Every method takes the owner id explicitly; a record id alone never authorises access.

type TaskStore interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, userID, id string) (*models.Task, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Task, error)
	Update(ctx context.Context, userID, id string, update *models.UpdateTaskRequest, updatedAt time.Time) (*models.Task, error)
	// AddHours increments hours_spent in a single statement so concurrent accruals are never lost
	AddHours(ctx context.Context, userID, id string, hours float64, updatedAt time.Time) error
	Delete(ctx context.Context, userID, id string) error
}

type TimeEntryStore interface {
	Create(ctx context.Context, entry *models.TimeEntry) error
	// ListByUser returns entries newest first, joined with their task. An empty taskID lists all tasks.
	ListByUser(ctx context.Context, userID, taskID string) ([]*models.TimeEntry, error)
	DeleteByTask(ctx context.Context, userID, taskID string) (int64, error)
}

type JournalStore interface {
	// Upsert inserts entry or merges its non-nil fields into the existing row for (user, date)
	Upsert(ctx context.Context, entry *models.JournalEntry) (*models.JournalEntry, error)
	GetByDate(ctx context.Context, userID, date string) (*models.JournalEntry, error)
	ListByUser(ctx context.Context, userID string) ([]*models.JournalEntry, error)
}

// Transactor runs fn in a transaction carried by ctx; repositories called with that ctx join it
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
