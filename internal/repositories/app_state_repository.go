package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "log-owl.com/log-owl/pkg/models"
)

// AppStateRepository is the process-wide key/value store backing the
// heartbeat and other bookkeeping.
type AppStateRepository struct {
	db *gorm.DB
}

func NewAppStateRepository(db *gorm.DB) *AppStateRepository {
	return &AppStateRepository{db: db}
}

func (r *AppStateRepository) WithTx(tx *gorm.DB) *AppStateRepository {
	return &AppStateRepository{db: tx}
}

// Get reports found=false when the key has never been written.
func (r *AppStateRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var state model.AppState
	err := r.db.WithContext(ctx).First(&state, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return state.Value, true, nil
}

func (r *AppStateRepository) Set(ctx context.Context, key, value string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&model.AppState{Key: key, Value: value}).Error
}
