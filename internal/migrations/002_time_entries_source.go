package migrations

import "gorm.io/gorm"

var timeEntriesSource = Migration{
	Version: 2,
	Name:    "time_entries_source",
	Up: func(tx *gorm.DB) error {
		return tx.Exec(`ALTER TABLE time_entries ADD COLUMN source TEXT`).Error
	},
}
