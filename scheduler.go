package clusterplay

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is the auto-run cadence.
const DefaultInterval = 700 * time.Millisecond

// Ticker delivers ticks on C until stopped. *time.Ticker satisfies it through
// NewTimeTicker; tests inject manual tickers.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a Ticker firing every d.
type TickerFunc func(d time.Duration) Ticker

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker is the wall-clock TickerFunc.
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// Scheduler runs a task at a fixed cadence until stopped. At most one run is
// active; starting a new one cancels the previous run first.
//
// Stop cancels the context handed to the task synchronously. A task that checks
// that context while holding the lock its caller uses for Stop can never execute
// after Stop returns.
type Scheduler struct {
	interval  time.Duration
	newTicker TickerFunc

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewScheduler(interval time.Duration, newTicker TickerFunc) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}

	if newTicker == nil {
		newTicker = NewTimeTicker
	}

	return &Scheduler{
		interval:  interval,
		newTicker: newTicker,
	}
}

func (s *Scheduler) Interval() time.Duration { return s.interval }

// Start begins invoking task once per tick. Each tick runs the task to
// completion before the next is accepted; ticks arriving meanwhile are dropped.
func (s *Scheduler) Start(task func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	var (
		ctx, cancel = context.WithCancel(context.Background())
		done        = make(chan struct{})
		t           = s.newTicker(s.interval)
	)

	s.cancel = cancel
	s.done = done

	go func() {
		defer close(done)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C():
				if ctx.Err() != nil {
					return
				}

				task(ctx)
			}
		}
	}()
}

// Stop cancels the active run, if any. It does not wait for the loop to exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
}

func (s *Scheduler) stopLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Running reports whether a run is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cancel != nil
}

// Wait blocks until the most recent run's loop has exited. Call it after Stop,
// never while holding a lock the task takes.
func (s *Scheduler) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if done != nil {
		<-done
	}
}
