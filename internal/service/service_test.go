package service

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"Mansoor88-6/mastery-tracker/internal/database"
	"Mansoor88-6/mastery-tracker/internal/repository"

	txStdLib "github.com/Thiht/transactor/stdlib"
	"go.uber.org/zap"
)

const (
	alice = "user-alice"
	bob   = "user-bob"
)

type testEnv struct {
	db       *database.DB
	tasks    *TaskService
	entries  *TimeEntryService
	journal  *JournalService
	clock    *fakeClock
	taskRepo *repository.TaskRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("database.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	tx, dbGetter := txStdLib.NewTransactor(db.DB, txStdLib.NestedTransactionsSavepoints)
	taskRepo := repository.NewTaskRepository(dbGetter)
	entryRepo := repository.NewTimeEntryRepository(dbGetter)
	journalRepo := repository.NewJournalRepository(dbGetter)

	clock := &fakeClock{now: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}

	env := &testEnv{
		db:       db,
		tasks:    NewTaskService(taskRepo, entryRepo, tx),
		entries:  NewTimeEntryService(taskRepo, entryRepo, tx),
		journal:  NewJournalService(journalRepo, time.UTC),
		clock:    clock,
		taskRepo: taskRepo,
	}
	env.tasks.now = clock.Now
	env.entries.now = clock.Now
	env.journal.now = clock.Now
	return env
}

// fakeClock advances one second on every reading so creation order is observable
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
