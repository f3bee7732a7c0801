package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"log-owl.com/log-owl/internal/constants"
	"log-owl.com/log-owl/internal/logger"
	repository "log-owl.com/log-owl/internal/repositories"
	"log-owl.com/log-owl/pkg/clock"
	"log-owl.com/log-owl/pkg/timestamp"
)

// RecoveryService closes time entries left open by an ungraceful shutdown.
// It must run once at startup, after migrations and before the heartbeat
// or any client can touch the store.
type RecoveryService struct {
	db      *gorm.DB
	entries *repository.TimeEntryRepository
	state   *repository.AppStateRepository
	clock   clock.Clock
}

func NewRecoveryService(
	db *gorm.DB,
	entries *repository.TimeEntryRepository,
	state *repository.AppStateRepository,
	clk clock.Clock,
) *RecoveryService {
	return &RecoveryService{
		db:      db,
		entries: entries,
		state:   state,
		clock:   clk,
	}
}

// Recover ends every open time entry at the last heartbeat, or now when no
// heartbeat was ever written, and returns the ids it closed. An entry that
// started after the last heartbeat is closed at its own start instead, so
// no interval ends before it begins.
func (s *RecoveryService) Recover(ctx context.Context) ([]int64, error) {
	open, err := s.entries.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("list open time entries: %w", err)
	}
	if len(open) == 0 {
		return []int64{}, nil
	}

	lastSeen, found, err := s.state.Get(ctx, constants.LastSeenKey)
	if err != nil {
		return nil, fmt.Errorf("read last seen: %w", err)
	}
	if !found {
		lastSeen = timestamp.Format(s.clock.Now())
		logger.Warn("Recovery: no heartbeat recorded, closing at current time")
	}

	closedIDs := make([]int64, 0, len(open))
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entries := s.entries.WithTx(tx)

		atLastSeen := make([]int64, 0, len(open))
		for i := range open {
			entry := &open[i]
			if entry.StartedAt > lastSeen {
				logger.Warn("Recovery: entry started after last heartbeat",
					zap.Int64("time_entry_id", entry.ID),
					zap.String("started_at", entry.StartedAt),
					zap.String("last_seen", lastSeen))
				entry.EndedAt = &entry.StartedAt
				if err := entries.Update(ctx, entry); err != nil {
					return err
				}
			} else {
				atLastSeen = append(atLastSeen, entry.ID)
			}
			closedIDs = append(closedIDs, entry.ID)
		}

		_, err := entries.CloseOpen(ctx, atLastSeen, lastSeen)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("close open time entries: %w", err)
	}

	logger.Info("Recovery: closed open time entries",
		zap.Int("count", len(closedIDs)),
		zap.String("ended_at", lastSeen))
	return closedIDs, nil
}
