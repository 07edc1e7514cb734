// Package view holds the active-reservations view state: partitioning into
// ongoing and locally-expired rows, the expiry reconciliation coordinator,
// and the load sequencing that keeps an older response from overwriting a
// newer one.
package view

import (
	"context"
	"sync"
	"time"

	"parkhub/internal/client"
	"parkhub/internal/logger"
	"parkhub/internal/poller"
)

// Fetcher queries the authoritative store for the caller's active
// reservation set.
type Fetcher func(ctx context.Context) ([]client.Reservation, error)

// ActiveView owns one mounted active-reservations surface. All rows exposed
// by Rows were derived against the same captured now; a fresh Tick replaces
// the whole derived set.
type ActiveView struct {
	fetch Fetcher
	clock poller.Clock
	coord *Coordinator
	log   logger.Logger

	mu   sync.Mutex
	seq  uint64
	raw  []client.Reservation
	rows []Row
	tick time.Time
}

func NewActive(fetch Fetcher, clock poller.Clock, coord *Coordinator, log logger.Logger) *ActiveView {
	if clock == nil {
		clock = poller.SystemClock()
	}
	return &ActiveView{fetch: fetch, clock: clock, coord: coord, log: log}
}

// Load re-queries the active set and applies the result, unless a newer load
// started while this one was in flight; stale responses are dropped on the
// floor rather than clobbering fresher state.
func (v *ActiveView) Load(ctx context.Context) error {
	v.mu.Lock()
	v.seq++
	my := v.seq
	v.mu.Unlock()

	list, err := v.fetch(ctx)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if my != v.seq {
		if v.log != nil {
			v.log.Debug("dropping superseded load", logger.Int64("seq", int64(my)))
		}
		return nil
	}
	v.raw = list
	v.applyLocked(ctx, v.clock.Now())
	return nil
}

// Tick re-derives the current list against a new now without re-fetching.
func (v *ActiveView) Tick(ctx context.Context, now time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.applyLocked(ctx, now)
}

// applyLocked derives every row against one now and raises the expiry
// signal when a row has lapsed under a still-active persisted status.
func (v *ActiveView) applyLocked(ctx context.Context, now time.Time) {
	rows, anyExpired := Partition(v.raw, now)
	v.rows = rows
	v.tick = now
	if anyExpired && v.coord != nil {
		v.coord.NotifyExpired(ctx)
	}
}

// Rows returns the derived rows of the last apply.
func (v *ActiveView) Rows() []Row {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]Row, len(v.rows))
	copy(out, v.rows)
	return out
}

// TickTime returns the now the current rows were derived against.
func (v *ActiveView) TickTime() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tick
}

// Close tears down the coordinator so no stale callback fires after the
// view unmounts.
func (v *ActiveView) Close() {
	if v.coord != nil {
		v.coord.Close()
	}
}
