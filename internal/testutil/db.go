// Package testutil builds throwaway stores for package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	config "log-owl.com/log-owl/internal/configs"
	"log-owl.com/log-owl/internal/migrations"
)

// NewRawDB opens an empty in-memory store that is closed when the test ends.
func NewRawDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := config.NewDatabaseClient(config.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = config.CloseDatabaseClient(db)
	})
	return db
}

// NewDB opens an in-memory store migrated to the latest schema.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := NewRawDB(t)
	_, err := migrations.Run(context.Background(), db, migrations.All())
	require.NoError(t, err)
	return db
}
