package migrations

import "gorm.io/gorm"

var serviceTask = Migration{
	Version: 3,
	Name:    "service_task",
	Up: func(tx *gorm.DB) error {
		return tx.Exec(`ALTER TABLE tasks ADD COLUMN is_service INTEGER NOT NULL DEFAULT 0`).Error
	},
}
