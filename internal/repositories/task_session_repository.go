package repository

import (
	"context"

	"gorm.io/gorm"

	model "log-owl.com/log-owl/pkg/models"
)

type TaskSessionRepository struct {
	db *gorm.DB
}

func NewTaskSessionRepository(db *gorm.DB) *TaskSessionRepository {
	return &TaskSessionRepository{db: db}
}

func (r *TaskSessionRepository) WithTx(tx *gorm.DB) *TaskSessionRepository {
	return &TaskSessionRepository{db: tx}
}

func (r *TaskSessionRepository) Create(ctx context.Context, session *model.TaskSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *TaskSessionRepository) FindByID(ctx context.Context, id int64) (*model.TaskSession, error) {
	var session model.TaskSession
	err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *TaskSessionRepository) ListByTask(ctx context.Context, taskID int64) ([]model.TaskSession, error) {
	var sessions []model.TaskSession
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("opened_at, id").
		Find(&sessions).Error
	return sessions, err
}

func (r *TaskSessionRepository) ListOpenByTask(ctx context.Context, taskID int64) ([]model.TaskSession, error) {
	var sessions []model.TaskSession
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND closed_at IS NULL", taskID).
		Order("opened_at, id").
		Find(&sessions).Error
	return sessions, err
}

func (r *TaskSessionRepository) Update(ctx context.Context, session *model.TaskSession) error {
	res := r.db.WithContext(ctx).Model(&model.TaskSession{}).
		Where("id = ?", session.ID).
		Updates(map[string]interface{}{
			"task_id":   session.TaskID,
			"opened_at": session.OpenedAt,
			"closed_at": session.ClosedAt,
			"last_seen": session.LastSeen,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CloseOpenByTask closes every open session of one task.
func (r *TaskSessionRepository) CloseOpenByTask(ctx context.Context, taskID int64, closedAt string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.TaskSession{}).
		Where("task_id = ? AND closed_at IS NULL", taskID).
		Update("closed_at", closedAt)
	return res.RowsAffected, res.Error
}

// CloseAllOpen closes every open session across all tasks.
func (r *TaskSessionRepository) CloseAllOpen(ctx context.Context, closedAt string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.TaskSession{}).
		Where("closed_at IS NULL").
		Update("closed_at", closedAt)
	return res.RowsAffected, res.Error
}

func (r *TaskSessionRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.TaskSession{})
	return res.RowsAffected > 0, res.Error
}
