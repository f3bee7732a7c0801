// Package migrations evolves the store schema. The current version lives in
// the single-row db_meta table; each migration is applied in its own
// transaction together with the version bump, so a failed upgrade leaves
// the store at the last version that committed.
package migrations

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"log-owl.com/log-owl/internal/logger"
)

type Migration struct {
	Version int
	Name    string
	Up      func(tx *gorm.DB) error
}

// All returns the migrations shipped with the application, in order.
func All() []Migration {
	return []Migration{
		initSchema,
		timeEntriesSource,
		serviceTask,
	}
}

func ensureMeta(tx *gorm.DB) error {
	if err := tx.Exec(`CREATE TABLE IF NOT EXISTS db_meta (schema_version INTEGER NOT NULL)`).Error; err != nil {
		return fmt.Errorf("create db_meta: %w", err)
	}
	if err := tx.Exec(`INSERT INTO db_meta (schema_version) SELECT 0 WHERE (SELECT COUNT(*) FROM db_meta) = 0`).Error; err != nil {
		return fmt.Errorf("seed db_meta: %w", err)
	}
	return nil
}

// CurrentVersion returns the stored schema version, creating the version
// table on a fresh store.
func CurrentVersion(ctx context.Context, db *gorm.DB) (int, error) {
	db = db.WithContext(ctx)
	if err := ensureMeta(db); err != nil {
		return 0, err
	}

	var version int
	if err := db.Raw(`SELECT schema_version FROM db_meta LIMIT 1`).Scan(&version).Error; err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

// Run applies every migration newer than the stored version and returns
// how many were applied. It stops at the first failure.
func Run(ctx context.Context, db *gorm.DB, migrations []Migration) (int, error) {
	if err := validate(migrations); err != nil {
		return 0, err
	}

	current, err := CurrentVersion(ctx, db)
	if err != nil {
		return 0, err
	}

	pending := make([]Migration, 0, len(migrations))
	for _, m := range migrations {
		if m.Version > current {
			pending = append(pending, m)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Version < pending[j].Version })

	applied := 0
	for _, m := range pending {
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := m.Up(tx); err != nil {
				return err
			}
			return tx.Exec(`UPDATE db_meta SET schema_version = ?`, m.Version).Error
		})
		if err != nil {
			logger.Error("Migrations: apply failed", err,
				zap.Int("version", m.Version),
				zap.String("name", m.Name))
			return applied, fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
		}

		applied++
		logger.Info("Migrations: applied",
			zap.Int("version", m.Version),
			zap.String("name", m.Name))
	}

	return applied, nil
}

func validate(migrations []Migration) error {
	seen := make(map[int]string, len(migrations))
	for _, m := range migrations {
		if m.Version <= 0 {
			return fmt.Errorf("migration %q: version must be positive", m.Name)
		}
		if m.Up == nil {
			return fmt.Errorf("migration %d (%s): missing Up", m.Version, m.Name)
		}
		if other, ok := seen[m.Version]; ok {
			return fmt.Errorf("migrations %q and %q share version %d", other, m.Name, m.Version)
		}
		seen[m.Version] = m.Name
	}
	return nil
}

func execAll(tx *gorm.DB, statements ...string) error {
	for _, stmt := range statements {
		if err := tx.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
