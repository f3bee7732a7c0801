package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	repository "log-owl.com/log-owl/internal/repositories"
	"log-owl.com/log-owl/internal/testutil"
	"log-owl.com/log-owl/pkg/clock"
	model "log-owl.com/log-owl/pkg/models"
)

var epoch = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	db       *gorm.DB
	clock    *clock.Fake
	tasks    *repository.TaskRepository
	entries  *repository.TimeEntryRepository
	sessions *repository.TaskSessionRepository
	state    *repository.AppStateRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	return &fixture{
		db:       db,
		clock:    clock.NewFake(epoch),
		tasks:    repository.NewTaskRepository(db),
		entries:  repository.NewTimeEntryRepository(db),
		sessions: repository.NewTaskSessionRepository(db),
		state:    repository.NewAppStateRepository(db),
	}
}

func (f *fixture) taskService() *TaskService {
	return NewTaskService(f.db, f.tasks, f.clock)
}

func (f *fixture) timeEntryService() *TimeEntryService {
	return NewTimeEntryService(f.db, f.entries, f.tasks, f.clock)
}

func (f *fixture) sessionService() *SessionService {
	return NewSessionService(f.db, f.sessions, f.entries, f.tasks, f.clock)
}

func (f *fixture) recoveryService() *RecoveryService {
	return NewRecoveryService(f.db, f.entries, f.state, f.clock)
}

func (f *fixture) createTask(t *testing.T, title string) *model.Task {
	t.Helper()

	task, err := f.taskService().CreateTask(context.Background(), title, nil)
	require.NoError(t, err)
	return task
}

func (f *fixture) createEntry(t *testing.T, taskID int64, startedAt string, endedAt *string) *model.TimeEntry {
	t.Helper()

	entry := &model.TimeEntry{TaskID: taskID, StartedAt: startedAt, EndedAt: endedAt}
	require.NoError(t, f.entries.Create(context.Background(), entry))
	return entry
}

func ptr[T any](v T) *T {
	return &v
}
