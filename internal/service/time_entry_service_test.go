package service

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"Mansoor88-6/mastery-tracker/internal/apperrors"
	"Mansoor88-6/mastery-tracker/internal/models"
)

const hoursTolerance = 1e-9

func interval(d time.Duration) (*time.Time, *time.Time) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(d)
	return &start, &end
}

func TestRecordTimeEntryAccruesHours(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task, err := env.tasks.CreateTask(ctx, alice, &models.CreateTaskRequest{Name: "Practice violin", Category: "other"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	start, end := interval(time.Hour)
	entry, err := env.entries.RecordTimeEntry(ctx, alice, &models.CreateTimeEntryRequest{
		TaskID:          task.ID,
		DurationSeconds: 3600,
		StartedAt:       start,
		EndedAt:         end,
	})
	if err != nil {
		t.Fatalf("RecordTimeEntry: %v", err)
	}
	if entry.ID == "" || entry.UserID != alice || entry.TaskID != task.ID {
		t.Errorf("unexpected entry %+v", entry)
	}

	got, err := env.tasks.GetTask(ctx, alice, task.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if math.Abs(got.HoursSpent-1.0) > hoursTolerance {
		t.Errorf("HoursSpent = %v, want 1.0", got.HoursSpent)
	}
	if math.Abs(got.ProgressPercent-0.01) > hoursTolerance {
		t.Errorf("ProgressPercent = %v, want 0.01", got.ProgressPercent)
	}

	list, err := env.entries.ListTimeEntries(ctx, alice, "")
	if err != nil {
		t.Fatalf("ListTimeEntries: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(list))
	}
	if list[0].Task == nil || list[0].Task.Name != "Practice violin" {
		t.Errorf("entry task summary = %+v, want joined task name", list[0].Task)
	}
	if !list[0].StartedAt.Equal(*start) || !list[0].EndedAt.Equal(*end) {
		t.Errorf("interval = %v..%v, want %v..%v", list[0].StartedAt, list[0].EndedAt, *start, *end)
	}
}

func TestRecordTimeEntryAccumulates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task, err := env.tasks.CreateTask(ctx, alice, &models.CreateTaskRequest{Name: "Write", Category: "other"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	durations := []int64{90, 1800, 7}
	var total int64
	for _, d := range durations {
		start, end := interval(time.Duration(d) * time.Second)
		if _, err := env.entries.RecordTimeEntry(ctx, alice, &models.CreateTimeEntryRequest{
			TaskID:          task.ID,
			DurationSeconds: d,
			StartedAt:       start,
			EndedAt:         end,
		}); err != nil {
			t.Fatalf("RecordTimeEntry(%d): %v", d, err)
		}
		total += d
	}

	got, err := env.tasks.GetTask(ctx, alice, task.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	want := models.SecondsToHours(total)
	if math.Abs(got.HoursSpent-want) > hoursTolerance {
		t.Errorf("HoursSpent = %v, want %v", got.HoursSpent, want)
	}
}

func TestConcurrentRecordingLosesNoHours(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task, err := env.tasks.CreateTask(ctx, alice, &models.CreateTaskRequest{Name: "Swim", Category: "other"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	durations := []int64{1200, 2400, 60, 300, 3600, 45, 900, 15}
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, d := range durations {
		wg.Add(1)
		go func(d int64) {
			defer wg.Done()
			start, end := interval(time.Duration(d) * time.Second)
			_, err := env.entries.RecordTimeEntry(ctx, alice, &models.CreateTimeEntryRequest{
				TaskID:          task.ID,
				DurationSeconds: d,
				StartedAt:       start,
				EndedAt:         end,
			})
			if err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(d)
	}
	wg.Wait()

	for _, err := range errs {
		t.Errorf("RecordTimeEntry: %v", err)
	}

	var total int64
	for _, d := range durations {
		total += d
	}

	got, err := env.tasks.GetTask(ctx, alice, task.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	want := models.SecondsToHours(total)
	if math.Abs(got.HoursSpent-want) > hoursTolerance {
		t.Errorf("HoursSpent = %v, want %v", got.HoursSpent, want)
	}

	list, err := env.entries.ListTimeEntries(ctx, alice, task.ID)
	if err != nil {
		t.Fatalf("ListTimeEntries: %v", err)
	}
	if len(list) != len(durations) {
		t.Errorf("len(entries) = %d, want %d", len(list), len(durations))
	}
}

func TestRecordTimeEntryValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task, err := env.tasks.CreateTask(ctx, alice, &models.CreateTaskRequest{Name: "Run", Category: "other"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	start, end := interval(time.Minute)

	tests := []struct {
		name string
		req  models.CreateTimeEntryRequest
	}{
		{name: "missing task", req: models.CreateTimeEntryRequest{DurationSeconds: 60, StartedAt: start, EndedAt: end}},
		{name: "zero duration", req: models.CreateTimeEntryRequest{TaskID: task.ID, StartedAt: start, EndedAt: end}},
		{name: "negative duration", req: models.CreateTimeEntryRequest{TaskID: task.ID, DurationSeconds: -5, StartedAt: start, EndedAt: end}},
		{name: "missing start", req: models.CreateTimeEntryRequest{TaskID: task.ID, DurationSeconds: 60, EndedAt: end}},
		{name: "missing end", req: models.CreateTimeEntryRequest{TaskID: task.ID, DurationSeconds: 60, StartedAt: start}},
		{name: "end before start", req: models.CreateTimeEntryRequest{TaskID: task.ID, DurationSeconds: 60, StartedAt: end, EndedAt: start}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.entries.RecordTimeEntry(ctx, alice, &tt.req); !apperrors.IsValidation(err) {
				t.Errorf("RecordTimeEntry error = %v, want ValidationError", err)
			}
		})
	}

	got, err := env.tasks.GetTask(ctx, alice, task.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got.HoursSpent != 0 {
		t.Errorf("HoursSpent = %v after rejected entries, want 0", got.HoursSpent)
	}
}

func TestRecordTimeEntryForeignTask(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task, err := env.tasks.CreateTask(ctx, alice, &models.CreateTaskRequest{Name: "Mine", Category: "other"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	start, end := interval(time.Hour)
	_, err = env.entries.RecordTimeEntry(ctx, bob, &models.CreateTimeEntryRequest{
		TaskID:          task.ID,
		DurationSeconds: 3600,
		StartedAt:       start,
		EndedAt:         end,
	})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("RecordTimeEntry on foreign task error = %v, want ErrNotFound", err)
	}

	got, err := env.tasks.GetTask(ctx, alice, task.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got.HoursSpent != 0 {
		t.Errorf("HoursSpent = %v, want 0", got.HoursSpent)
	}

	entries, err := env.entries.ListTimeEntries(ctx, bob, "")
	if err != nil {
		t.Fatalf("ListTimeEntries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("bob has %d entries, want 0", len(entries))
	}
}

func TestRecordManualEntry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task, err := env.tasks.CreateTask(ctx, alice, &models.CreateTaskRequest{Name: "Read", Category: "other"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	entry, err := env.entries.RecordManualEntry(ctx, alice, &models.ManualTimeEntryRequest{TaskID: task.ID, DurationSeconds: 5400})
	if err != nil {
		t.Fatalf("RecordManualEntry: %v", err)
	}
	if got := entry.EndedAt.Sub(entry.StartedAt); got != 90*time.Minute {
		t.Errorf("interval = %v, want 1h30m", got)
	}

	got, err := env.tasks.GetTask(ctx, alice, task.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if math.Abs(got.HoursSpent-1.5) > hoursTolerance {
		t.Errorf("HoursSpent = %v, want 1.5", got.HoursSpent)
	}

	if _, err := env.entries.RecordManualEntry(ctx, alice, &models.ManualTimeEntryRequest{TaskID: task.ID}); !apperrors.IsValidation(err) {
		t.Errorf("RecordManualEntry without duration error = %v, want ValidationError", err)
	}
}

func TestListTimeEntriesFiltersByTask(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a, err := env.tasks.CreateTask(ctx, alice, &models.CreateTaskRequest{Name: "A", Category: "other"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	b, err := env.tasks.CreateTask(ctx, alice, &models.CreateTaskRequest{Name: "B", Category: "other"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	for _, id := range []string{a.ID, a.ID, b.ID} {
		if _, err := env.entries.RecordManualEntry(ctx, alice, &models.ManualTimeEntryRequest{TaskID: id, DurationSeconds: 60}); err != nil {
			t.Fatalf("RecordManualEntry: %v", err)
		}
	}

	all, err := env.entries.ListTimeEntries(ctx, alice, "")
	if err != nil {
		t.Fatalf("ListTimeEntries: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len(all) = %d, want 3", len(all))
	}
	if len(all) > 0 && all[0].TaskID != b.ID {
		t.Errorf("newest entry task = %s, want %s", all[0].TaskID, b.ID)
	}

	onlyA, err := env.entries.ListTimeEntries(ctx, alice, a.ID)
	if err != nil {
		t.Fatalf("ListTimeEntries(a): %v", err)
	}
	if len(onlyA) != 2 {
		t.Errorf("len(onlyA) = %d, want 2", len(onlyA))
	}
}
