package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	config "log-owl.com/log-owl/internal/configs"
	"log-owl.com/log-owl/internal/logger"
	"log-owl.com/log-owl/internal/migrations"
)

// openStore opens the database and brings its schema up to date. Every
// command goes through here, so none of them ever sees an old schema.
func openStore(ctx context.Context) (*gorm.DB, error) {
	db, err := config.NewDatabaseClient(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	applied, err := migrations.Run(ctx, db, migrations.All())
	if err != nil {
		_ = config.CloseDatabaseClient(db)
		return nil, fmt.Errorf("migrate %s: %w", cfg.DatabasePath, err)
	}
	if applied > 0 {
		logger.Info("Store: schema migrated",
			zap.String("path", cfg.DatabasePath),
			zap.Int("applied", applied))
	}
	return db, nil
}

func closeStore(db *gorm.DB) {
	if err := config.CloseDatabaseClient(db); err != nil {
		logger.Warn("Store: close failed", zap.Error(err))
	}
}
