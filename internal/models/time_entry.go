package models

import "time"

type TimeEntry struct {
	ID              string       `json:"id"`
	TaskID          string       `json:"task_id"`
	UserID          string       `json:"user_id"`
	DurationSeconds int64        `json:"duration_seconds"`
	StartedAt       time.Time    `json:"started_at"`
	EndedAt         time.Time    `json:"ended_at"`
	CreatedAt       time.Time    `json:"created_at"`
	Task            *TaskSummary `json:"task,omitempty"`
}

// TaskSummary is the slice of the parent task joined into time entry listings
type TaskSummary struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Hours converts the entry duration into accrued hours
func (e *TimeEntry) Hours() float64 {
	return SecondsToHours(e.DurationSeconds)
}

func SecondsToHours(seconds int64) float64 {
	return float64(seconds) / 3600
}

type CreateTimeEntryRequest struct {
	TaskID          string     `json:"task_id"`
	DurationSeconds int64      `json:"duration_seconds"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
}

// ManualTimeEntryRequest records time without an observed interval
type ManualTimeEntryRequest struct {
	TaskID          string `json:"task_id"`
	DurationSeconds int64  `json:"duration_seconds"`
}
