package clusterplay

import "time"

// Bounds are the parameter ranges the playground clamps host input to.
type Bounds struct {
	MinK, MaxK           int
	MinEps, MaxEps       float64
	MinMinPts, MaxMinPts int
}

// DefaultBounds mirrors the slider ranges of the interactive playground.
var DefaultBounds = Bounds{
	MinK: 1, MaxK: 6,
	MinEps: 10, MaxEps: 100,
	MinMinPts: 2, MaxMinPts: 12,
}

const (
	DefaultK      = 3
	DefaultEps    = 38.0
	DefaultMinPts = 5
	DefaultSeed   = 1
)

type options struct {
	mode      Mode
	k         int
	eps       float64
	minpts    int
	seed      int64
	onion     bool
	interval  time.Duration
	newTicker TickerFunc
	bounds    Bounds
	logger    *Logger
	observer  func(State)
}

func defaultOptions() options {
	return options{
		mode:      ModeKMeans,
		k:         DefaultK,
		eps:       DefaultEps,
		minpts:    DefaultMinPts,
		seed:      DefaultSeed,
		interval:  DefaultInterval,
		newTicker: NewTimeTicker,
		bounds:    DefaultBounds,
		logger:    NoopLogger(),
	}
}

// Option configures a Playground.
type Option func(*options)

func WithMode(m Mode) Option {
	return func(o *options) {
		if m.Valid() {
			o.mode = m
		}
	}
}

func WithK(k int) Option {
	return func(o *options) { o.k = k }
}

func WithEps(eps float64) Option {
	return func(o *options) { o.eps = eps }
}

func WithMinPts(minPts int) Option {
	return func(o *options) { o.minpts = minPts }
}

func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// WithOnion exposes the previous centroid positions in State.
func WithOnion(enabled bool) Option {
	return func(o *options) { o.onion = enabled }
}

// WithInterval sets the auto-run cadence.
func WithInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.interval = d
		}
	}
}

// WithTicker replaces the wall-clock ticker used by auto-run.
func WithTicker(f TickerFunc) Option {
	return func(o *options) {
		if f != nil {
			o.newTicker = f
		}
	}
}

// WithBounds overrides the parameter clamping ranges.
func WithBounds(b Bounds) Option {
	return func(o *options) { o.bounds = b }
}

// WithLogger configures the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithObserver registers a callback receiving the state after every k-means
// step, manual or automatic. It runs outside the playground lock.
func WithObserver(f func(State)) Option {
	return func(o *options) { o.observer = f }
}
