package repository

import (
	"context"

	"gorm.io/gorm"

	model "log-owl.com/log-owl/pkg/models"
)

type TimeEntryRepository struct {
	db *gorm.DB
}

func NewTimeEntryRepository(db *gorm.DB) *TimeEntryRepository {
	return &TimeEntryRepository{db: db}
}

func (r *TimeEntryRepository) WithTx(tx *gorm.DB) *TimeEntryRepository {
	return &TimeEntryRepository{db: tx}
}

func (r *TimeEntryRepository) Create(ctx context.Context, entry *model.TimeEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *TimeEntryRepository) FindByID(ctx context.Context, id int64) (*model.TimeEntry, error) {
	var entry model.TimeEntry
	err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *TimeEntryRepository) ListByTask(ctx context.Context, taskID int64) ([]model.TimeEntry, error) {
	var entries []model.TimeEntry
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("started_at, id").
		Find(&entries).Error
	return entries, err
}

func (r *TimeEntryRepository) List(ctx context.Context) ([]model.TimeEntry, error) {
	var entries []model.TimeEntry
	err := r.db.WithContext(ctx).Order("started_at, id").Find(&entries).Error
	return entries, err
}

// ListOpen returns every entry without an end, oldest first.
func (r *TimeEntryRepository) ListOpen(ctx context.Context) ([]model.TimeEntry, error) {
	var entries []model.TimeEntry
	err := r.db.WithContext(ctx).
		Where("ended_at IS NULL").
		Order("started_at, id").
		Find(&entries).Error
	return entries, err
}

// ListInRange returns entries overlapping [from, to]: started before to and
// either still open or ended after from. Bounds are timestamp strings.
func (r *TimeEntryRepository) ListInRange(ctx context.Context, from, to string) ([]model.TimeEntry, error) {
	var entries []model.TimeEntry
	err := r.db.WithContext(ctx).
		Where("started_at < ? AND (ended_at IS NULL OR ended_at > ?)", to, from).
		Order("started_at, id").
		Find(&entries).Error
	return entries, err
}

func (r *TimeEntryRepository) Update(ctx context.Context, entry *model.TimeEntry) error {
	res := r.db.WithContext(ctx).Model(&model.TimeEntry{}).
		Where("id = ?", entry.ID).
		Updates(map[string]interface{}{
			"task_id":    entry.TaskID,
			"started_at": entry.StartedAt,
			"ended_at":   entry.EndedAt,
			"source":     entry.Source,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CloseOpen sets ended_at on the given entries that are still open and
// returns how many rows changed.
func (r *TimeEntryRepository) CloseOpen(ctx context.Context, ids []int64, endedAt string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Model(&model.TimeEntry{}).
		Where("id IN ? AND ended_at IS NULL", ids).
		Update("ended_at", endedAt)
	return res.RowsAffected, res.Error
}

func (r *TimeEntryRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.TimeEntry{})
	return res.RowsAffected > 0, res.Error
}
