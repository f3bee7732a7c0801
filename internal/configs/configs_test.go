package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.AppURL)
	assert.Equal(t, "data/log-owl.db", cfg.DatabasePath)
	assert.Equal(t, 45*time.Second, cfg.HeartbeatInterval())
	assert.Equal(t, "", cfg.RedisAddr)
	assert.False(t, cfg.LogDevelopment)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DATABASE_PATH", "/tmp/owl/test.db")
	t.Setenv("HEARTBEAT_INTERVAL_SECONDS", "30")
	t.Setenv("LOG_DEVELOPMENT", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.AppURL)
	assert.Equal(t, "/tmp/owl/test.db", cfg.DatabasePath)
	assert.Equal(t, 30*time.Second, cfg.HeartbeatInterval())
	assert.True(t, cfg.LogDevelopment)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("HEARTBEAT_INTERVAL_SECONDS", "soon")
	_, err := Load()
	assert.ErrorContains(t, err, "HEARTBEAT_INTERVAL_SECONDS")
}

func TestLoad_RejectsShortLivenessTTL(t *testing.T) {
	t.Setenv("REDIS_ADDR", "127.0.0.1:6379")
	t.Setenv("REDIS_LIVENESS_TTL_SECONDS", "10")
	_, err := Load()
	assert.ErrorContains(t, err, "REDIS_LIVENESS_TTL_SECONDS")
}

func TestNewDatabaseClient_Memory(t *testing.T) {
	db, err := NewDatabaseClient(MemoryPath)
	require.NoError(t, err)
	defer CloseDatabaseClient(db)

	var foreignKeys int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&foreignKeys).Error)
	assert.Equal(t, 1, foreignKeys)
}

func TestNewDatabaseClient_CreatesDirectory(t *testing.T) {
	path := t.TempDir() + "/nested/dir/owl.db"
	db, err := NewDatabaseClient(path)
	require.NoError(t, err)
	require.NoError(t, CloseDatabaseClient(db))
	assert.FileExists(t, path)
}
