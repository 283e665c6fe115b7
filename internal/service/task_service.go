package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"Mansoor88-6/mastery-tracker/internal/apperrors"
	"Mansoor88-6/mastery-tracker/internal/models"

	"github.com/google/uuid"
)

type TaskService struct {
	tasks   TaskStore
	entries TimeEntryStore
	tx      Transactor
	now     func() time.Time
}

func NewTaskService(tasks TaskStore, entries TimeEntryStore, tx Transactor) *TaskService {
	return &TaskService{
		tasks:   tasks,
		entries: entries,
		tx:      tx,
		now:     time.Now,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, userID string, req *models.CreateTaskRequest) (*models.Task, error) {
	name := strings.TrimSpace(req.Name)
	category := strings.TrimSpace(req.Category)
	if name == "" || category == "" {
		return nil, apperrors.Validation("Name and category are required")
	}

	now := timestamp(s.now)
	task := &models.Task{
		ID:        newID(),
		UserID:    userID,
		Name:      name,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	task.SetProgress()
	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context, userID string) ([]*models.Task, error) {
	return s.tasks.ListByUser(ctx, userID)
}

func (s *TaskService) GetTask(ctx context.Context, userID, id string) (*models.Task, error) {
	return s.tasks.GetByID(ctx, userID, id)
}

func (s *TaskService) UpdateTask(ctx context.Context, userID, id string, req *models.UpdateTaskRequest) (*models.Task, error) {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.Validation("Name cannot be empty")
		}
		req.Name = &name
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if category == "" {
			return nil, apperrors.Validation("Category cannot be empty")
		}
		req.Category = &category
	}
	if req.HoursSpent != nil && *req.HoursSpent < 0 {
		return nil, apperrors.Validation("Hours spent cannot be negative")
	}

	return s.tasks.Update(ctx, userID, id, req, timestamp(s.now))
}

// DeleteTask removes the task and every time entry recorded against it
func (s *TaskService) DeleteTask(ctx context.Context, userID, id string) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.tasks.GetByID(ctx, userID, id); err != nil {
			return err
		}
		if _, err := s.entries.DeleteByTask(ctx, userID, id); err != nil {
			return err
		}
		return s.tasks.Delete(ctx, userID, id)
	})
}

func (s *TaskService) Stats(ctx context.Context, userID string) (*models.TaskStats, error) {
	tasks, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	stats := &models.TaskStats{
		TaskCount: len(tasks),
		GoalHours: models.GoalHours,
	}
	categories := make(map[string]struct{})
	for _, t := range tasks {
		stats.TotalHours += t.HoursSpent
		categories[t.Category] = struct{}{}
	}
	stats.CategoryCount = len(categories)
	if stats.TaskCount > 0 {
		stats.ProgressPercent = stats.TotalHours / (models.GoalHours * float64(stats.TaskCount)) * 100
	}
	return stats, nil
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// timestamp is UTC at microsecond precision so values survive a PostgreSQL round trip unchanged
func timestamp(now func() time.Time) time.Time {
	return now().UTC().Truncate(time.Microsecond)
}
