package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	repository "log-owl.com/log-owl/internal/repositories"
	"log-owl.com/log-owl/internal/testutil"
	model "log-owl.com/log-owl/pkg/models"
)

const created = "2026-04-14T08:00:00.000Z"

func strPtr(s string) *string { return &s }

func createTask(t *testing.T, db *gorm.DB, title string) *model.Task {
	t.Helper()
	task := &model.Task{Title: title, CreatedAt: created, UpdatedAt: created}
	require.NoError(t, repository.NewTaskRepository(db).Create(context.Background(), task))
	require.NotZero(t, task.ID)
	return task
}

func createEntry(t *testing.T, db *gorm.DB, taskID int64, start string, end *string) *model.TimeEntry {
	t.Helper()
	entry := &model.TimeEntry{TaskID: taskID, StartedAt: start, EndedAt: end}
	require.NoError(t, repository.NewTimeEntryRepository(db).Create(context.Background(), entry))
	return entry
}

func TestTaskRepository_CreateFindUpdate(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewTaskRepository(db)
	ctx := context.Background()

	task := createTask(t, db, "Write report")

	found, err := repo.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write report", found.Title)
	assert.Nil(t, found.Comment)
	assert.False(t, found.IsService)

	found.Comment = strPtr("draft")
	found.CompletedAt = strPtr("2026-04-14T09:00:00.000Z")
	require.NoError(t, repo.Update(ctx, found))

	again, err := repo.FindByID(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, again.Comment)
	assert.Equal(t, "draft", *again.Comment)
	assert.True(t, again.IsCompleted())

	err = repo.Update(ctx, &model.Task{ID: 999, Title: "ghost"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTaskRepository_FindServiceTask(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewTaskRepository(db)
	ctx := context.Background()

	none, err := repo.FindServiceTask(ctx)
	require.NoError(t, err)
	assert.Nil(t, none)

	done := &model.Task{Title: "old", CreatedAt: created, UpdatedAt: created, IsService: true, CompletedAt: strPtr(created)}
	require.NoError(t, repo.Create(ctx, done))
	none, err = repo.FindServiceTask(ctx)
	require.NoError(t, err)
	assert.Nil(t, none)

	live := &model.Task{Title: "Service", CreatedAt: created, UpdatedAt: created, IsService: true}
	require.NoError(t, repo.Create(ctx, live))

	found, err := repo.FindServiceTask(ctx)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, live.ID, found.ID)
}

func TestTaskRepository_DeleteCascades(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	task := createTask(t, db, "doomed")
	other := createTask(t, db, "kept")

	createEntry(t, db, task.ID, created, nil)
	createEntry(t, db, other.ID, created, nil)
	require.NoError(t, repository.NewTaskSessionRepository(db).Create(ctx, &model.TaskSession{TaskID: task.ID, OpenedAt: created}))

	deleted, err := repository.NewTaskRepository(db).Delete(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	entries, err := repository.NewTimeEntryRepository(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, other.ID, entries[0].TaskID)

	sessions, err := repository.NewTaskSessionRepository(db).ListByTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	deleted, err = repository.NewTaskRepository(db).Delete(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestTimeEntryRepository_ForeignKeyEnforced(t *testing.T) {
	db := testutil.NewDB(t)
	err := repository.NewTimeEntryRepository(db).Create(context.Background(), &model.TimeEntry{TaskID: 404, StartedAt: created})
	assert.Error(t, err)
}

func TestTimeEntryRepository_ListOpen(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewTimeEntryRepository(db)
	task := createTask(t, db, "t")

	a := createEntry(t, db, task.ID, "2026-04-14T10:00:00.000Z", nil)
	createEntry(t, db, task.ID, "2026-04-14T09:00:00.000Z", strPtr("2026-04-14T09:30:00.000Z"))
	b := createEntry(t, db, task.ID, "2026-04-14T08:00:00.000Z", nil)

	open, err := repo.ListOpen(context.Background())
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, b.ID, open[0].ID)
	assert.Equal(t, a.ID, open[1].ID)
}

func TestTimeEntryRepository_ListInRange(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewTimeEntryRepository(db)
	task := createTask(t, db, "t")

	before := createEntry(t, db, task.ID, "2026-04-14T08:00:00.000Z", strPtr("2026-04-14T10:00:00.000Z"))
	overlapping := createEntry(t, db, task.ID, "2026-04-14T09:00:00.000Z", strPtr("2026-04-14T10:30:00.000Z"))
	running := createEntry(t, db, task.ID, "2026-04-14T11:00:00.000Z", nil)
	createEntry(t, db, task.ID, "2026-04-14T12:00:00.000Z", strPtr("2026-04-14T13:00:00.000Z"))

	entries, err := repo.ListInRange(context.Background(), "2026-04-14T10:00:00.000Z", "2026-04-14T12:00:00.000Z")
	require.NoError(t, err)

	ids := make([]int64, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []int64{overlapping.ID, running.ID}, ids)
	assert.NotContains(t, ids, before.ID)
}

func TestTimeEntryRepository_CloseOpen(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewTimeEntryRepository(db)
	ctx := context.Background()
	task := createTask(t, db, "t")

	open := createEntry(t, db, task.ID, created, nil)
	closed := createEntry(t, db, task.ID, created, strPtr("2026-04-14T08:30:00.000Z"))

	n, err := repo.CloseOpen(ctx, []int64{open.ID, closed.ID}, "2026-04-14T09:00:00.000Z")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := repo.FindByID(ctx, closed.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-04-14T08:30:00.000Z", *got.EndedAt)

	n, err = repo.CloseOpen(ctx, nil, "2026-04-14T09:00:00.000Z")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTaskSessionRepository_CloseOpen(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewTaskSessionRepository(db)
	ctx := context.Background()
	first := createTask(t, db, "a")
	second := createTask(t, db, "b")

	for _, taskID := range []int64{first.ID, first.ID, second.ID} {
		require.NoError(t, repo.Create(ctx, &model.TaskSession{TaskID: taskID, OpenedAt: created}))
	}

	n, err := repo.CloseOpenByTask(ctx, first.ID, "2026-04-14T09:00:00.000Z")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	open, err := repo.ListOpenByTask(ctx, second.ID)
	require.NoError(t, err)
	assert.Len(t, open, 1)

	n, err = repo.CloseAllOpen(ctx, "2026-04-14T10:00:00.000Z")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestAppStateRepository_GetSet(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewAppStateRepository(db)
	ctx := context.Background()

	_, found, err := repo.Get(ctx, "last_seen_timestamp")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Set(ctx, "last_seen_timestamp", "2026-04-14T09:00:00.000Z"))
	require.NoError(t, repo.Set(ctx, "last_seen_timestamp", "2026-04-14T09:00:45.000Z"))

	value, found, err := repo.Get(ctx, "last_seen_timestamp")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "2026-04-14T09:00:45.000Z", value)

	var rows int64
	require.NoError(t, db.Model(&model.AppState{}).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)
}

func TestSettingsRepository(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewSettingsRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "theme", "dark"))
	require.NoError(t, repo.Set(ctx, "locale", "en"))
	require.NoError(t, repo.Set(ctx, "theme", "light"))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "locale", all[0].Key)
	assert.Equal(t, "light", all[1].Value)

	deleted, err := repo.Delete(ctx, "theme")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, found, err := repo.Get(ctx, "theme")
	require.NoError(t, err)
	assert.False(t, found)
}
