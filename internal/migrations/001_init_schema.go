package migrations

import "gorm.io/gorm"

var initSchema = Migration{
	Version: 1,
	Name:    "init_schema",
	Up: func(tx *gorm.DB) error {
		return execAll(tx,
			`CREATE TABLE IF NOT EXISTS db_meta (
				schema_version INTEGER NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS tasks (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				title TEXT NOT NULL,
				comment TEXT,
				completed_at TEXT,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS time_entries (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				task_id INTEGER NOT NULL,
				started_at TEXT NOT NULL,
				ended_at TEXT,
				FOREIGN KEY (task_id) REFERENCES tasks(id)
			)`,
			`CREATE TABLE IF NOT EXISTS task_sessions (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				task_id INTEGER NOT NULL,
				opened_at TEXT NOT NULL,
				closed_at TEXT,
				last_seen TEXT,
				FOREIGN KEY (task_id) REFERENCES tasks(id)
			)`,
			`CREATE TABLE IF NOT EXISTS settings (
				key TEXT PRIMARY KEY,
				value TEXT
			)`,
			`CREATE TABLE IF NOT EXISTS app_state (
				key TEXT PRIMARY KEY,
				value TEXT
			)`,
		)
	},
}
