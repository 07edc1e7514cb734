package view

import (
	"context"
	"errors"
	"sync"
	"time"

	"parkhub/internal/logger"
)

// ErrResyncFailed marks a failed best-effort re-query of the active set.
// The coordinator discards it deliberately: the next poll tick or manual
// refresh retries, and the active view must never crash over it.
var ErrResyncFailed = errors.New("active set resync failed")

// DefaultDebounce is the single-shot delay before reconciling, so rapid
// repeated expiry signals collapse into one re-fetch.
const DefaultDebounce = 300 * time.Millisecond

// Coordinator reacts to the partitioner's locally-expired signal. After the
// debounce it re-queries the authoritative active set, letting the store's
// status catch up, then redirects the viewer to the history surface. The
// redirect only happens when the resync succeeded, and at most once per
// mount: the surface unmounts on redirect, so the coordinator latches.
type Coordinator struct {
	delay    time.Duration
	resync   func(ctx context.Context) error
	redirect func()
	log      logger.Logger

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
}

func NewCoordinator(delay time.Duration, log logger.Logger, resync func(ctx context.Context) error, redirect func()) *Coordinator {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Coordinator{
		delay:    delay,
		resync:   resync,
		redirect: redirect,
		log:      log,
	}
}

// NotifyExpired arms the debounce. A pending timer is superseded, so bursts
// of signals from consecutive ticks trigger a single reconciliation.
func (c *Coordinator) NotifyExpired(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.delay, func() { c.fire(ctx) })
}

func (c *Coordinator) fire(ctx context.Context) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	if err := c.resync(ctx); err != nil {
		// Best-effort contract: drop the error, keep the view alive.
		if c.log != nil {
			c.log.Debug("discarding reconciliation failure",
				logger.Error(errors.Join(ErrResyncFailed, err)))
		}
		return
	}

	// Latch before redirecting. The resync re-partitions the fetched list,
	// and a row the sweep has not flipped yet re-arms the debounce while we
	// are still here; without the latch that second timer would redirect
	// again into an unmounted surface.
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()

	c.redirect()
}

// Close cancels any pending debounce. No resync or redirect fires after
// Close.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
