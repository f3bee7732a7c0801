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

// SessionService tracks presence sessions: one open session per task while
// its detail view is active.
type SessionService struct {
	db       *gorm.DB
	sessions *repository.TaskSessionRepository
	entries  *repository.TimeEntryRepository
	tasks    *repository.TaskRepository
	clock    clock.Clock
}

func NewSessionService(
	db *gorm.DB,
	sessions *repository.TaskSessionRepository,
	entries *repository.TimeEntryRepository,
	tasks *repository.TaskRepository,
	clk clock.Clock,
) *SessionService {
	return &SessionService{
		db:       db,
		sessions: sessions,
		entries:  entries,
		tasks:    tasks,
		clock:    clk,
	}
}

// OpenSession closes whatever sessions are still open for the task and
// opens a fresh one. Both steps share a transaction, so concurrent callers
// can never leave two sessions open for the same task.
func (s *SessionService) OpenSession(ctx context.Context, taskID int64) (*model.TaskSession, error) {
	var opened *model.TaskSession
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sessions := s.sessions.WithTx(tx)

		if _, err := s.tasks.WithTx(tx).FindByID(ctx, taskID); err != nil {
			return translate(err, apperrors.ErrTaskNotFound)
		}

		now := timestamp.Format(s.clock.Now())
		stale, err := sessions.CloseOpenByTask(ctx, taskID, now)
		if err != nil {
			return err
		}
		if stale > 0 {
			logger.Info("Sessions: closed stale sessions",
				zap.Int64("task_id", taskID),
				zap.Int64("count", stale))
		}

		opened = &model.TaskSession{TaskID: taskID, OpenedAt: now}
		return sessions.Create(ctx, opened)
	})
	if err != nil {
		return nil, err
	}
	return opened, nil
}

// CloseSession sets the session's close time.
func (s *SessionService) CloseSession(ctx context.Context, id int64, closedAt string) (*model.TaskSession, error) {
	closedAt, err := timestamp.Normalize(closedAt)
	if err != nil {
		return nil, apperrors.ErrInvalidTimestamp
	}

	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if closedAt < session.OpenedAt {
		return nil, apperrors.ErrInvalidRange
	}

	session.ClosedAt = &closedAt
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, translate(err, apperrors.ErrSessionNotFound)
	}
	return session, nil
}

// CloseSessionNow closes the session at the current time.
func (s *SessionService) CloseSessionNow(ctx context.Context, id int64) (*model.TaskSession, error) {
	return s.CloseSession(ctx, id, timestamp.Format(s.clock.Now()))
}

func (s *SessionService) CloseOpenByTask(ctx context.Context, taskID int64) (int64, error) {
	return s.sessions.CloseOpenByTask(ctx, taskID, timestamp.Format(s.clock.Now()))
}

// CloseAllOpen closes every open session across all tasks and returns how
// many were closed.
func (s *SessionService) CloseAllOpen(ctx context.Context, closedAt string) (int64, error) {
	closedAt, err := timestamp.Normalize(closedAt)
	if err != nil {
		return 0, apperrors.ErrInvalidTimestamp
	}
	return s.sessions.CloseAllOpen(ctx, closedAt)
}

// CloseAllOpenOnExit is the shutdown backstop. It never fails: a missed
// close is repaired the next time the task's view opens, so errors are
// only logged.
func (s *SessionService) CloseAllOpenOnExit(ctx context.Context) int64 {
	closed, err := s.CloseAllOpen(ctx, timestamp.Format(s.clock.Now()))
	if err != nil {
		logger.Warn("Sessions: close on exit failed", zap.Error(err))
		return 0
	}
	logger.Info("Sessions: closed on exit", zap.Int64("count", closed))
	return closed
}

// ConvertToInterval turns a closed session into a time entry tagged as
// session-derived. An open session is left alone and nil is returned.
func (s *SessionService) ConvertToInterval(ctx context.Context, session *model.TaskSession) (*model.TimeEntry, error) {
	if session.IsOpen() {
		return nil, nil
	}

	source := constants.SourceSessionConvert
	endedAt := *session.ClosedAt
	entry := &model.TimeEntry{
		TaskID:    session.TaskID,
		StartedAt: session.OpenedAt,
		EndedAt:   &endedAt,
		Source:    &source,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ConvertByID loads the session and converts it.
func (s *SessionService) ConvertByID(ctx context.Context, id int64) (*model.TimeEntry, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.ConvertToInterval(ctx, session)
}

// TouchSession records that the session's view is still active.
func (s *SessionService) TouchSession(ctx context.Context, id int64) (*model.TaskSession, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	now := timestamp.Format(s.clock.Now())
	session.LastSeen = &now
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, translate(err, apperrors.ErrSessionNotFound)
	}
	return session, nil
}

func (s *SessionService) GetSession(ctx context.Context, id int64) (*model.TaskSession, error) {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, apperrors.ErrSessionNotFound)
	}
	return session, nil
}

func (s *SessionService) ListByTask(ctx context.Context, taskID int64) ([]model.TaskSession, error) {
	return s.sessions.ListByTask(ctx, taskID)
}

func (s *SessionService) DeleteSession(ctx context.Context, id int64) error {
	deleted, err := s.sessions.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrSessionNotFound
	}
	return nil
}
