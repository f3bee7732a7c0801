package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"log-owl.com/log-owl/internal/constants"
	"log-owl.com/log-owl/pkg/clock"
	"log-owl.com/log-owl/pkg/timestamp"
)

type memoryState struct {
	mu     sync.Mutex
	values map[string]string
	writes int
	err    error
}

func newMemoryState() *memoryState {
	return &memoryState{values: make(map[string]string)}
}

func (m *memoryState) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.values[key] = value
	m.writes++
	return nil
}

func (m *memoryState) get(key string) (string, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], m.writes
}

type recordingPublisher struct {
	mu        sync.Mutex
	published []string
	err       error
}

func (p *recordingPublisher) Publish(_ context.Context, lastSeen string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.published = append(p.published, lastSeen)
	return p.err
}

func TestBeat_WritesLastSeenAndMirrors(t *testing.T) {
	state := newMemoryState()
	mirror := &recordingPublisher{}
	clk := clock.NewFake(epoch)
	hb := NewHeartbeatService(state, clk, time.Minute, mirror)

	require.NoError(t, hb.Beat(context.Background()))

	value, _ := state.get(constants.LastSeenKey)
	assert.Equal(t, timestamp.Format(epoch), value)
	assert.Equal(t, []string{timestamp.Format(epoch)}, mirror.published)
}

func TestBeat_MirrorFailureIsNotFatal(t *testing.T) {
	state := newMemoryState()
	mirror := &recordingPublisher{err: errors.New("connection refused")}
	hb := NewHeartbeatService(state, clock.NewFake(epoch), time.Minute, mirror)

	assert.NoError(t, hb.Beat(context.Background()))
}

func TestBeat_StoreFailure(t *testing.T) {
	state := newMemoryState()
	state.err = errors.New("disk I/O error")
	mirror := &recordingPublisher{}
	hb := NewHeartbeatService(state, clock.NewFake(epoch), time.Minute, mirror)

	assert.Error(t, hb.Beat(context.Background()))
	assert.Empty(t, mirror.published)
}

func TestStart_BeatsImmediatelyAndStopsOnCancel(t *testing.T) {
	state := newMemoryState()
	hb := NewHeartbeatService(state, clock.NewFake(epoch), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hb.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		_, writes := state.get(constants.LastSeenKey)
		return writes == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("heartbeat did not stop after cancel")
	}
}

func TestStart_KeepsBeating(t *testing.T) {
	state := newMemoryState()
	hb := NewHeartbeatService(state, clock.NewFake(epoch), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hb.Start(ctx)

	require.Eventually(t, func() bool {
		_, writes := state.get(constants.LastSeenKey)
		return writes >= 3
	}, time.Second, 5*time.Millisecond)
}

func TestBeat_PersistsToAppState(t *testing.T) {
	f := newFixture(t)
	hb := NewHeartbeatService(f.state, f.clock, time.Hour)

	require.NoError(t, hb.Beat(context.Background()))

	value, found, err := f.state.Get(context.Background(), constants.LastSeenKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, timestamp.Format(epoch), value)
}

func TestNewHeartbeatService_DefaultInterval(t *testing.T) {
	hb := NewHeartbeatService(newMemoryState(), clock.Real(), 0)
	assert.Equal(t, DefaultHeartbeatInterval, hb.interval)
}
