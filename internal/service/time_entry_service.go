package service

import (
	"context"
	"strings"
	"time"

	"Mansoor88-6/mastery-tracker/internal/apperrors"
	"Mansoor88-6/mastery-tracker/internal/models"
)

type TimeEntryService struct {
	tasks   TaskStore
	entries TimeEntryStore
	tx      Transactor
	now     func() time.Time
}

func NewTimeEntryService(tasks TaskStore, entries TimeEntryStore, tx Transactor) *TimeEntryService {
	return &TimeEntryService{
		tasks:   tasks,
		entries: entries,
		tx:      tx,
		now:     time.Now,
	}
}

// RecordTimeEntry appends a completed interval and accrues its duration onto the task.
// The insert and the increment commit together or not at all.
func (s *TimeEntryService) RecordTimeEntry(ctx context.Context, userID string, req *models.CreateTimeEntryRequest) (*models.TimeEntry, error) {
	taskID := strings.TrimSpace(req.TaskID)
	if taskID == "" || req.DurationSeconds == 0 || req.StartedAt == nil || req.EndedAt == nil {
		return nil, apperrors.Validation("Task ID, duration, start time, and end time are required")
	}
	if req.DurationSeconds < 0 {
		return nil, apperrors.Validation("Duration must be a positive number of seconds")
	}
	if req.EndedAt.Before(*req.StartedAt) {
		return nil, apperrors.Validation("End time cannot be before start time")
	}

	if _, err := s.tasks.GetByID(ctx, userID, taskID); err != nil {
		return nil, err
	}

	now := timestamp(s.now)
	entry := &models.TimeEntry{
		ID:              newID(),
		TaskID:          taskID,
		UserID:          userID,
		DurationSeconds: req.DurationSeconds,
		StartedAt:       req.StartedAt.UTC(),
		EndedAt:         req.EndedAt.UTC(),
		CreatedAt:       now,
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.entries.Create(ctx, entry); err != nil {
			return err
		}
		return s.tasks.AddHours(ctx, userID, taskID, entry.Hours(), now)
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// RecordManualEntry records time the user reports without a stopwatch.
// The interval is synthesised as ending now; it is not checked against anything real.
func (s *TimeEntryService) RecordManualEntry(ctx context.Context, userID string, req *models.ManualTimeEntryRequest) (*models.TimeEntry, error) {
	if strings.TrimSpace(req.TaskID) == "" || req.DurationSeconds == 0 {
		return nil, apperrors.Validation("Task ID and duration are required")
	}
	if req.DurationSeconds < 0 {
		return nil, apperrors.Validation("Duration must be a positive number of seconds")
	}

	endedAt := timestamp(s.now)
	startedAt := endedAt.Add(-time.Duration(req.DurationSeconds) * time.Second)

	return s.RecordTimeEntry(ctx, userID, &models.CreateTimeEntryRequest{
		TaskID:          req.TaskID,
		DurationSeconds: req.DurationSeconds,
		StartedAt:       &startedAt,
		EndedAt:         &endedAt,
	})
}

func (s *TimeEntryService) ListTimeEntries(ctx context.Context, userID, taskID string) ([]*models.TimeEntry, error) {
	return s.entries.ListByUser(ctx, userID, taskID)
}
