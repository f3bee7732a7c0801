package services

import (
	"context"

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

type TimeEntryService struct {
	db      *gorm.DB
	entries *repository.TimeEntryRepository
	tasks   *repository.TaskRepository
	clock   clock.Clock
}

// NewTimeEntry describes a manually entered interval. Timestamps are
// RFC 3339 and are normalized before storage.
type NewTimeEntry struct {
	TaskID    int64
	StartedAt string
	EndedAt   *string
	Source    *string
}

// TimeEntryChanges lists editable fields; nil leaves a field untouched.
type TimeEntryChanges struct {
	StartedAt *string
	EndedAt   *string
}

func NewTimeEntryService(
	db *gorm.DB,
	entries *repository.TimeEntryRepository,
	tasks *repository.TaskRepository,
	clk clock.Clock,
) *TimeEntryService {
	return &TimeEntryService{
		db:      db,
		entries: entries,
		tasks:   tasks,
		clock:   clk,
	}
}

// StartTimer stops whatever entry is running and opens a new one for the
// task, in one transaction.
func (s *TimeEntryService) StartTimer(ctx context.Context, taskID int64) (*model.TimeEntry, error) {
	var started *model.TimeEntry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entries := s.entries.WithTx(tx)

		if _, err := s.tasks.WithTx(tx).FindByID(ctx, taskID); err != nil {
			return translate(err, apperrors.ErrTaskNotFound)
		}

		now := timestamp.Format(s.clock.Now())
		running, err := entries.ListOpen(ctx)
		if err != nil {
			return err
		}
		if len(running) > 0 {
			ids := make([]int64, 0, len(running))
			for _, e := range running {
				ids = append(ids, e.ID)
			}
			if _, err := entries.CloseOpen(ctx, ids, now); err != nil {
				return err
			}
			logger.Info("Timer: stopped running entries", zap.Int64s("time_entry_ids", ids))
		}

		source := constants.SourceTimer
		started = &model.TimeEntry{
			TaskID:    taskID,
			StartedAt: now,
			Source:    &source,
		}
		return entries.Create(ctx, started)
	})
	if err != nil {
		return nil, err
	}
	return started, nil
}

// StopTimer ends a running entry now. Stopping a stopped entry is a no-op.
func (s *TimeEntryService) StopTimer(ctx context.Context, id int64) (*model.TimeEntry, error) {
	entry, err := s.GetTimeEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entry.IsOpen() {
		return entry, nil
	}

	now := timestamp.Format(s.clock.Now())
	if now < entry.StartedAt {
		now = entry.StartedAt
	}
	entry.EndedAt = &now
	if err := s.entries.Update(ctx, entry); err != nil {
		return nil, translate(err, apperrors.ErrTimeEntryNotFound)
	}
	return entry, nil
}

func (s *TimeEntryService) CreateTimeEntry(ctx context.Context, in NewTimeEntry) (*model.TimeEntry, error) {
	startedAt, err := timestamp.Normalize(in.StartedAt)
	if err != nil {
		return nil, apperrors.ErrInvalidTimestamp
	}
	endedAt, err := timestamp.NormalizePtr(in.EndedAt)
	if err != nil {
		return nil, apperrors.ErrInvalidTimestamp
	}
	if endedAt != nil && *endedAt < startedAt {
		return nil, apperrors.ErrInvalidRange
	}

	if _, err := s.tasks.FindByID(ctx, in.TaskID); err != nil {
		return nil, translate(err, apperrors.ErrTaskNotFound)
	}

	entry := &model.TimeEntry{
		TaskID:    in.TaskID,
		StartedAt: startedAt,
		EndedAt:   endedAt,
		Source:    in.Source,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *TimeEntryService) GetTimeEntry(ctx context.Context, id int64) (*model.TimeEntry, error) {
	entry, err := s.entries.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, apperrors.ErrTimeEntryNotFound)
	}
	return entry, nil
}

func (s *TimeEntryService) ListByTask(ctx context.Context, taskID int64) ([]model.TimeEntry, error) {
	return s.entries.ListByTask(ctx, taskID)
}

func (s *TimeEntryService) ListTimeEntries(ctx context.Context) ([]model.TimeEntry, error) {
	return s.entries.List(ctx)
}

func (s *TimeEntryService) ListOpen(ctx context.Context) ([]model.TimeEntry, error) {
	return s.entries.ListOpen(ctx)
}

func (s *TimeEntryService) UpdateTimeEntry(ctx context.Context, id int64, changes TimeEntryChanges) (*model.TimeEntry, error) {
	entry, err := s.GetTimeEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	if changes.StartedAt != nil {
		startedAt, err := timestamp.Normalize(*changes.StartedAt)
		if err != nil {
			return nil, apperrors.ErrInvalidTimestamp
		}
		entry.StartedAt = startedAt
	}
	if changes.EndedAt != nil {
		endedAt, err := timestamp.Normalize(*changes.EndedAt)
		if err != nil {
			return nil, apperrors.ErrInvalidTimestamp
		}
		entry.EndedAt = &endedAt
	}
	if entry.EndedAt != nil && *entry.EndedAt < entry.StartedAt {
		return nil, apperrors.ErrInvalidRange
	}

	if err := s.entries.Update(ctx, entry); err != nil {
		return nil, translate(err, apperrors.ErrTimeEntryNotFound)
	}
	return entry, nil
}

func (s *TimeEntryService) DeleteTimeEntry(ctx context.Context, id int64) error {
	deleted, err := s.entries.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrTimeEntryNotFound
	}
	return nil
}
