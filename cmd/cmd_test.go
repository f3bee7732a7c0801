package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"log-owl.com/log-owl/internal/migrations"
	repository "log-owl.com/log-owl/internal/repositories"
	model "log-owl.com/log-owl/pkg/models"
)

func run(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestOpenStore_MigratesFileDatabase(t *testing.T) {
	cfg.DatabasePath = filepath.Join(t.TempDir(), "nested", "log-owl.db")
	ctx := context.Background()

	db, err := openStore(ctx)
	require.NoError(t, err)
	version, err := migrations.CurrentVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, len(migrations.All()), version)
	closeStore(db)

	db, err = openStore(ctx)
	require.NoError(t, err)
	defer closeStore(db)
	again, err := migrations.CurrentVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, version, again)
}

func TestReportCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log-owl.db")
	t.Setenv("DATABASE_PATH", path)

	cfg.DatabasePath = path
	ctx := context.Background()
	db, err := openStore(ctx)
	require.NoError(t, err)

	task := &model.Task{Title: "Write docs", CreatedAt: "2025-03-10T08:00:00.000Z", UpdatedAt: "2025-03-10T08:00:00.000Z"}
	require.NoError(t, repository.NewTaskRepository(db).Create(ctx, task))
	ended := "2025-03-10T09:30:00.000Z"
	require.NoError(t, repository.NewTimeEntryRepository(db).Create(ctx, &model.TimeEntry{
		TaskID:    task.ID,
		StartedAt: "2025-03-10T08:00:00.000Z",
		EndedAt:   &ended,
	}))
	closeStore(db)

	out := run(t, "report", "--from", "2025-03-10T00:00:00Z", "--to", "2025-03-11T00:00:00Z")
	assert.Contains(t, out, "Write docs")
	assert.Contains(t, out, "1h 30m")

	out = run(t, "status")
	assert.Contains(t, out, "running:        0")
	assert.Contains(t, out, "last seen:      never")
}
