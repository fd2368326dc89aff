package clusterplay

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualTicker struct {
	c       chan time.Time
	stopped atomic.Bool
}

func (m *manualTicker) C() <-chan time.Time { return m.c }
func (m *manualTicker) Stop()               { m.stopped.Store(true) }

// tick delivers a tick unless one is already pending.
func (m *manualTicker) tick() {
	select {
	case m.c <- time.Now():
	default:
	}
}

// manualClock hands out manual tickers and records them in creation order.
type manualClock struct {
	tickers chan *manualTicker
}

func newManualClock() *manualClock {
	return &manualClock{tickers: make(chan *manualTicker, 16)}
}

func (c *manualClock) NewTicker(time.Duration) Ticker {
	t := &manualTicker{c: make(chan time.Time, 1)}
	c.tickers <- t
	return t
}

func (c *manualClock) next(t *testing.T) *manualTicker {
	t.Helper()
	select {
	case tk := <-c.tickers:
		return tk
	case <-time.After(time.Second):
		t.Fatal("no ticker created")
		return nil
	}
}

const (
	waitFor = time.Second
	pollAt  = 5 * time.Millisecond
)

func TestSchedulerRunsTaskPerTick(t *testing.T) {
	clock := newManualClock()
	s := NewScheduler(time.Second, clock.NewTicker)

	var n atomic.Int32
	s.Start(func(context.Context) { n.Add(1) })
	require.True(t, s.Running())

	tk := clock.next(t)

	tk.tick()
	assert.Eventually(t, func() bool { return n.Load() == 1 }, waitFor, pollAt)

	tk.tick()
	assert.Eventually(t, func() bool { return n.Load() == 2 }, waitFor, pollAt)

	s.Stop()
	s.Wait()

	assert.False(t, s.Running())
	assert.True(t, tk.stopped.Load())

	tk.tick()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(2), n.Load())
}

func TestSchedulerStartCancelsPreviousRun(t *testing.T) {
	clock := newManualClock()
	s := NewScheduler(time.Second, clock.NewTicker)

	var first, second atomic.Int32
	s.Start(func(context.Context) { first.Add(1) })
	t1 := clock.next(t)

	s.Start(func(context.Context) { second.Add(1) })
	t2 := clock.next(t)

	assert.Eventually(t, t1.stopped.Load, waitFor, pollAt)

	t1.tick()
	t2.tick()
	assert.Eventually(t, func() bool { return second.Load() == 1 }, waitFor, pollAt)
	assert.Equal(t, int32(0), first.Load())

	s.Stop()
	s.Wait()
}

func TestSchedulerTaskSeesCancellation(t *testing.T) {
	clock := newManualClock()
	s := NewScheduler(time.Second, clock.NewTicker)

	var (
		entered = make(chan struct{})
		release = make(chan struct{})
		errc    = make(chan error, 1)
	)

	s.Start(func(ctx context.Context) {
		close(entered)
		<-release
		errc <- ctx.Err()
	})

	clock.next(t).tick()
	<-entered

	s.Stop()
	close(release)

	assert.ErrorIs(t, <-errc, context.Canceled)
	s.Wait()
}

func TestSchedulerDefaults(t *testing.T) {
	s := NewScheduler(0, nil)
	assert.Equal(t, DefaultInterval, s.Interval())
	assert.False(t, s.Running())

	s.Stop()
	s.Wait()
}
