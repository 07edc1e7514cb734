package poller

import (
	"context"
	"sync"
	"testing"
	"time"

	"parkhub/internal/logger"
)

type countingSink struct {
	mu    sync.Mutex
	ticks []time.Time
}

func (s *countingSink) tick(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ticks = append(s.ticks, now)
}

func (s *countingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ticks)
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestPollerFirstTickImmediate(t *testing.T) {
	sink := &countingSink{}
	p := New(time.Hour, nil, logger.Nop(), sink.tick)
	defer p.Stop()

	p.Start(context.Background())
	waitFor(t, func() bool { return sink.count() == 1 }, "first tick never fired")
}

func TestPollerPeriodicTicks(t *testing.T) {
	sink := &countingSink{}
	p := New(20*time.Millisecond, nil, logger.Nop(), sink.tick)
	defer p.Stop()

	p.Start(context.Background())
	waitFor(t, func() bool { return sink.count() >= 3 }, "ticker never advanced")
}

func TestPollerRefreshIsOutOfBand(t *testing.T) {
	sink := &countingSink{}
	p := New(time.Hour, nil, logger.Nop(), sink.tick)
	defer p.Stop()

	p.Start(context.Background())
	waitFor(t, func() bool { return sink.count() == 1 }, "first tick never fired")

	p.Refresh()
	waitFor(t, func() bool { return sink.count() == 2 }, "refresh tick never fired")
}

func TestPollerStop(t *testing.T) {
	sink := &countingSink{}
	p := New(10*time.Millisecond, nil, logger.Nop(), sink.tick)

	p.Start(context.Background())
	waitFor(t, func() bool { return sink.count() >= 2 }, "ticker never advanced")

	p.Stop()
	p.Stop() // idempotent

	time.Sleep(30 * time.Millisecond)
	after := sink.count()
	time.Sleep(50 * time.Millisecond)
	if sink.count() != after {
		t.Error("ticks kept arriving after Stop")
	}
}

func TestPollerContextCancel(t *testing.T) {
	sink := &countingSink{}
	p := New(10*time.Millisecond, nil, logger.Nop(), sink.tick)

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	waitFor(t, func() bool { return sink.count() >= 1 }, "first tick never fired")

	cancel()
	time.Sleep(30 * time.Millisecond)
	after := sink.count()
	time.Sleep(50 * time.Millisecond)
	if sink.count() != after {
		t.Error("ticks kept arriving after context cancellation")
	}
}

func TestPollerStartTwiceSpawnsOneLoop(t *testing.T) {
	sink := &countingSink{}
	p := New(time.Hour, nil, logger.Nop(), sink.tick)
	defer p.Stop()

	p.Start(context.Background())
	p.Start(context.Background())

	waitFor(t, func() bool { return sink.count() >= 1 }, "first tick never fired")
	time.Sleep(50 * time.Millisecond)
	if sink.count() != 1 {
		t.Errorf("ticks = %d, a second Start must not spawn another loop", sink.count())
	}
}
