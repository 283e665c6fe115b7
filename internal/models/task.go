package models

import "time"

// GoalHours is the practice target every task is measured against
const GoalHours = 10000.0

// Known task categories. The set is open: any non-empty category is accepted.
const (
	CategoryDevelopment = "development"
	CategoryDesign      = "design"
	CategorySales       = "sales"
	CategoryOther       = "other"
)

type Task struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	HoursSpent      float64   `json:"hours_spent"`
	ProgressPercent float64   `json:"progress_percent"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SetProgress fills the derived progress field from HoursSpent
func (t *Task) SetProgress() {
	t.ProgressPercent = t.HoursSpent / GoalHours * 100
}

type CreateTaskRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// UpdateTaskRequest carries the editable task fields. Nil means "leave unchanged".
// Owner, id and timestamps are not part of it and cannot be changed by a payload.
type UpdateTaskRequest struct {
	Name       *string  `json:"name,omitempty"`
	Category   *string  `json:"category,omitempty"`
	HoursSpent *float64 `json:"hours_spent,omitempty"`
}

// IsEmpty reports whether no field was supplied
func (r *UpdateTaskRequest) IsEmpty() bool {
	return r.Name == nil && r.Category == nil && r.HoursSpent == nil
}

// TaskStats summarises an owner's progress across all tasks
type TaskStats struct {
	TaskCount       int     `json:"task_count"`
	CategoryCount   int     `json:"category_count"`
	TotalHours      float64 `json:"total_hours"`
	GoalHours       float64 `json:"goal_hours"`
	ProgressPercent float64 `json:"progress_percent"`
}
