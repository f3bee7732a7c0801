package services

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"log-owl.com/log-owl/internal/constants"
	apperrors "log-owl.com/log-owl/internal/errors"
	"log-owl.com/log-owl/internal/logger"
	repository "log-owl.com/log-owl/internal/repositories"
	"log-owl.com/log-owl/pkg/clock"
	model "log-owl.com/log-owl/pkg/models"
	"log-owl.com/log-owl/pkg/timestamp"
)

// TaskService owns task lifecycle and keeps exactly one non-completed
// service task around at all times.
type TaskService struct {
	db    *gorm.DB
	repo  *repository.TaskRepository
	clock clock.Clock
}

// TaskChanges lists the editable fields; nil leaves a field untouched and an
// empty Comment clears it.
type TaskChanges struct {
	Title   *string
	Comment *string
}

func NewTaskService(db *gorm.DB, repo *repository.TaskRepository, clk clock.Clock) *TaskService {
	return &TaskService{
		db:    db,
		repo:  repo,
		clock: clk,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, title string, comment *string) (*model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.ErrTitleRequired
	}

	now := timestamp.Format(s.clock.Now())
	task := &model.Task{
		Title:     title,
		Comment:   normalizeComment(comment),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, apperrors.ErrTaskNotFound)
	}
	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context) ([]model.Task, error) {
	return s.repo.List(ctx)
}

func (s *TaskService) UpdateTask(ctx context.Context, id int64, changes TaskChanges) (*model.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if changes.Title != nil {
		title := strings.TrimSpace(*changes.Title)
		if title == "" {
			return nil, apperrors.ErrTitleRequired
		}
		task.Title = title
	}
	if changes.Comment != nil {
		task.Comment = normalizeComment(changes.Comment)
	}
	task.UpdatedAt = timestamp.Format(s.clock.Now())

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, translate(err, apperrors.ErrTaskNotFound)
	}
	return task, nil
}

// CompleteTask marks the task done. Completing the service task creates its
// replacement in the same transaction.
func (s *TaskService) CompleteTask(ctx context.Context, id int64) (*model.Task, error) {
	var completed *model.Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		task, err := repo.FindByID(ctx, id)
		if err != nil {
			return translate(err, apperrors.ErrTaskNotFound)
		}
		if task.IsCompleted() {
			return apperrors.ErrTaskCompleted
		}

		now := timestamp.Format(s.clock.Now())
		task.CompletedAt = &now
		task.UpdatedAt = now
		if err := repo.Update(ctx, task); err != nil {
			return err
		}

		if task.IsService {
			if _, err := s.ensureServiceTask(ctx, repo); err != nil {
				return err
			}
		}
		completed = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return completed, nil
}

// ReopenTask clears the completion time. A reopened service task gives up
// its flag when another service task is already active.
func (s *TaskService) ReopenTask(ctx context.Context, id int64) (*model.Task, error) {
	var reopened *model.Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		task, err := repo.FindByID(ctx, id)
		if err != nil {
			return translate(err, apperrors.ErrTaskNotFound)
		}
		if !task.IsCompleted() {
			reopened = task
			return nil
		}

		if task.IsService {
			current, err := repo.FindServiceTask(ctx)
			if err != nil {
				return err
			}
			if current != nil {
				task.IsService = false
			}
		}

		task.CompletedAt = nil
		task.UpdatedAt = timestamp.Format(s.clock.Now())
		if err := repo.Update(ctx, task); err != nil {
			return err
		}
		reopened = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reopened, nil
}

// DeleteTask removes the task with its entries and sessions. Deleting the
// service task creates its replacement in the same transaction.
func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		task, err := repo.FindByID(ctx, id)
		if err != nil {
			return translate(err, apperrors.ErrTaskNotFound)
		}

		if _, err := repo.Delete(ctx, id); err != nil {
			return err
		}

		if task.IsService && !task.IsCompleted() {
			if _, err := s.ensureServiceTask(ctx, repo); err != nil {
				return err
			}
		}
		return nil
	})
}

// IsServiceTask reports whether id is the current service task.
func (s *TaskService) IsServiceTask(ctx context.Context, id int64) (bool, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return false, err
	}
	return task.IsService && !task.IsCompleted(), nil
}

// EnsureServiceTask returns the active service task, creating it if needed.
func (s *TaskService) EnsureServiceTask(ctx context.Context) (*model.Task, error) {
	var task *model.Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		task, err = s.ensureServiceTask(ctx, s.repo.WithTx(tx))
		return err
	})
	return task, err
}

func (s *TaskService) ensureServiceTask(ctx context.Context, repo *repository.TaskRepository) (*model.Task, error) {
	existing, err := repo.FindServiceTask(ctx)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := timestamp.Format(s.clock.Now())
	task := &model.Task{
		Title:     constants.ServiceTaskTitle,
		CreatedAt: now,
		UpdatedAt: now,
		IsService: true,
	}
	if err := repo.Create(ctx, task); err != nil {
		return nil, err
	}

	logger.Info("Tasks: created service task", zap.Int64("task_id", task.ID))
	return task, nil
}

func normalizeComment(comment *string) *string {
	if comment == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*comment)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
