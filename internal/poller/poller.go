// Package poller owns the shared "now" tick that drives re-derivation of a
// mounted view. One poller per view instance: starting it spawns a single
// timer loop, stopping it tears that loop down deterministically.
package poller

import (
	"context"
	"sync"
	"time"

	"parkhub/internal/logger"
)

// DefaultInterval is the cadence the active view re-derives at.
const DefaultInterval = 30 * time.Second

// Clock supplies the current instant. Injected so ticks can be driven
// deterministically in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall-clock time source.
func SystemClock() Clock { return systemClock{} }

// Poller invokes onTick with a freshly sampled now on a fixed period, and
// immediately on Refresh. All invocations happen on the poller's own
// goroutine, so every row derived inside one callback sees the same now.
type Poller struct {
	interval time.Duration
	clock    Clock
	onTick   func(now time.Time)
	log      logger.Logger

	refreshCh chan struct{}
	stopCh    chan struct{}
	stopOnce  sync.Once
	started   bool
	mu        sync.Mutex
}

func New(interval time.Duration, clock Clock, log logger.Logger, onTick func(now time.Time)) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if clock == nil {
		clock = SystemClock()
	}
	return &Poller{
		interval:  interval,
		clock:     clock,
		onTick:    onTick,
		log:       log,
		refreshCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
	}
}

// Start begins the tick loop. The first tick fires immediately. Calling
// Start twice is a no-op; there is never more than one live timer.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go p.run(ctx)
}

func (p *Poller) run(ctx context.Context) {
	p.onTick(p.clock.Now())

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.onTick(p.clock.Now())
		case <-p.refreshCh:
			p.onTick(p.clock.Now())
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Refresh requests an immediate out-of-band tick. Coalesces if one is
// already pending.
func (p *Poller) Refresh() {
	select {
	case p.refreshCh <- struct{}{}:
	default:
	}
}

// Stop cancels the timer loop. Safe to call more than once; the loop exits
// on its next select pass and no tick fires after that.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopCh)
		if p.log != nil {
			p.log.Debug("poller stopped", logger.Duration("interval", p.interval))
		}
	})
}
