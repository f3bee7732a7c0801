package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"log-owl.com/log-owl/internal/constants"
	"log-owl.com/log-owl/internal/liveness"
	"log-owl.com/log-owl/internal/logger"
	"log-owl.com/log-owl/pkg/clock"
	"log-owl.com/log-owl/pkg/timestamp"
)

const DefaultHeartbeatInterval = 45 * time.Second

// StateWriter is the slice of the app state store the heartbeat needs.
type StateWriter interface {
	Set(ctx context.Context, key, value string) error
}

// HeartbeatService periodically stamps the last time the process was known
// to be alive. The value is coarse on purpose: recovery uses it as the end
// of intervals left open by a crash.
type HeartbeatService struct {
	state    StateWriter
	mirrors  []liveness.Publisher
	clock    clock.Clock
	interval time.Duration
}

func NewHeartbeatService(state StateWriter, clk clock.Clock, interval time.Duration, mirrors ...liveness.Publisher) *HeartbeatService {
	if interval <= 0 {
		interval = DefaultHeartbeatInterval
	}
	return &HeartbeatService{
		state:    state,
		mirrors:  mirrors,
		clock:    clk,
		interval: interval,
	}
}

// Start beats once immediately and then on every interval until ctx is
// done. Failed beats are logged and the loop keeps going.
func (h *HeartbeatService) Start(ctx context.Context) {
	_ = h.Beat(ctx)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = h.Beat(ctx)
		case <-ctx.Done():
			logger.Info("Heartbeat: stopping")
			return
		}
	}
}

// Beat writes the current time to the state store and every mirror.
func (h *HeartbeatService) Beat(ctx context.Context) error {
	now := timestamp.Format(h.clock.Now())

	if err := h.state.Set(ctx, constants.LastSeenKey, now); err != nil {
		logger.Warn("Heartbeat: failed to persist last seen", zap.Error(err))
		return err
	}

	for _, mirror := range h.mirrors {
		if err := mirror.Publish(ctx, now); err != nil {
			logger.Warn("Heartbeat: failed to publish liveness", zap.Error(err))
		}
	}

	logger.Debug("Heartbeat: beat", zap.String("last_seen", now))
	return nil
}
