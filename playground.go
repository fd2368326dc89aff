package clusterplay

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// State is an immutable snapshot of a playground for display.
type State struct {
	Mode      Mode
	Dataset   uuid.UUID
	Points    []Point
	Centroids []Centroid
	// Previous is only populated while onion-skin display is enabled.
	Previous []Centroid

	Step      int
	NextPhase Phase
	LastPhase Phase
	Cost      float64

	K      int
	Seed   int64
	Eps    float64
	MinPts int

	Auto  bool
	Onion bool

	Clusters int
	Noise    int
}

// Playground is the host-facing session tying a point set to the two engines.
// All operations are serialised by one lock, so engine state only ever has a
// single writer, whether the call comes from the host or from auto-run.
type Playground struct {
	mu sync.Mutex

	mode   Mode
	points *PointSet
	km     *KMeans
	db     *DBSCAN
	sched  *Scheduler

	auto   bool
	onion  bool
	bounds Bounds

	logger   *Logger
	observer func(State)
}

func NewPlayground(points []Point, opts ...Option) *Playground {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	b := o.bounds

	p := &Playground{
		mode:     o.mode,
		points:   NewPointSet(points),
		sched:    NewScheduler(o.interval, o.newTicker),
		onion:    o.onion,
		bounds:   b,
		logger:   o.logger,
		observer: o.observer,
	}

	// Clamped values are always valid, so the constructors cannot fail.
	p.km, _ = NewKMeans(clampInt(o.k, b.MinK, b.MaxK), o.seed)
	p.db, _ = NewDBSCAN(clampFloat(o.eps, b.MinEps, b.MaxEps), clampInt(o.minpts, b.MinMinPts, b.MaxMinPts))

	p.km.Reseed(p.points)
	p.enterMode(context.Background())

	return p
}

func (p *Playground) Mode() Mode {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.mode
}

// SetMode switches the active engine. Auto-run is always stopped.
func (p *Playground) SetMode(m Mode) error {
	if !m.Valid() {
		return ErrWrongMode
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ctx := context.Background()

	p.stopAutoLocked(ctx)

	if m == p.mode {
		return nil
	}

	p.logger.LogMode(ctx, p.mode, m)
	p.mode = m
	p.enterMode(ctx)

	return nil
}

// enterMode brings the point labels in line with the active engine.
func (p *Playground) enterMode(ctx context.Context) {
	switch p.mode {
	case ModeDBSCAN:
		p.recomputeLocked(ctx)
	case ModeKMeans:
		p.km.Assign(p.points)
	}
}

// SetK clamps k and reseeds the centroids.
func (p *Playground) SetK(k int) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	k = clampInt(k, p.bounds.MinK, p.bounds.MaxK)
	_ = p.km.SetK(k, p.points)
	p.afterReseed(context.Background())

	return k
}

// SetSeed changes the random seed and reseeds the centroids.
func (p *Playground) SetSeed(seed int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.km.SetSeed(seed, p.points)
	p.afterReseed(context.Background())
}

// Reshuffle advances the seed by one.
func (p *Playground) Reshuffle() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	seed := p.km.Seed() + 1
	p.km.SetSeed(seed, p.points)
	p.afterReseed(context.Background())

	return seed
}

func (p *Playground) afterReseed(ctx context.Context) {
	p.logger.LogReset(ctx, p.km.K(), p.km.Seed(), p.points.Len())

	if p.mode == ModeKMeans {
		p.km.Assign(p.points)
	}
}

// SetEps clamps eps and recomputes DBSCAN when it is active.
func (p *Playground) SetEps(eps float64) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	eps = clampFloat(eps, p.bounds.MinEps, p.bounds.MaxEps)
	_ = p.db.SetEps(eps)
	p.invalidateLocked(context.Background())

	return eps
}

// SetMinPts clamps minPts and recomputes DBSCAN when it is active.
func (p *Playground) SetMinPts(minPts int) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	minPts = clampInt(minPts, p.bounds.MinMinPts, p.bounds.MaxMinPts)
	_ = p.db.SetMinPts(minPts)
	p.invalidateLocked(context.Background())

	return minPts
}

// LoadPoints replaces the dataset. Auto-run stops and the centroids reseed.
func (p *Playground) LoadPoints(points []Point) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ctx := context.Background()

	p.stopAutoLocked(ctx)
	p.points.Replace(points)
	p.logger.LogDataset(ctx, len(points), nil)

	p.km.Reseed(p.points)
	p.afterReseed(ctx)
	p.invalidateLocked(ctx)
}

// AddPoint appends a point. Under k-means it stays unassigned until the next
// Assign phase.
func (p *Playground) AddPoint(x, y float64) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.points.Add(x, y)
	p.invalidateLocked(context.Background())

	return i
}

func (p *Playground) RemovePoint(i int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.points.Remove(i); err != nil {
		return err
	}

	p.invalidateLocked(context.Background())

	return nil
}

// RemoveNearest removes the point closest to (x, y) and returns its index.
func (p *Playground) RemoveNearest(x, y float64) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	i, ok := p.points.Nearest(x, y)
	if !ok {
		return -1, ErrEmptySet
	}

	_ = p.points.Remove(i)
	p.invalidateLocked(context.Background())

	return i, nil
}

func (p *Playground) invalidateLocked(ctx context.Context) {
	if p.mode == ModeDBSCAN && p.db.Stale(p.points) {
		p.recomputeLocked(ctx)
	}
}

// MoveCentroid drags centroid i to (x, y) and reassigns points without
// advancing the step counter.
func (p *Playground) MoveCentroid(i int, x, y float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mode != ModeKMeans {
		return ErrWrongMode
	}

	return p.km.MoveCentroid(i, x, y, p.points)
}

// Step executes one k-means phase.
func (p *Playground) Step() (Phase, error) {
	p.mu.Lock()

	if p.mode != ModeKMeans {
		p.mu.Unlock()
		return PhaseNone, ErrWrongMode
	}

	phase := p.stepLocked(context.Background())
	s := p.stateLocked()
	p.mu.Unlock()

	p.notify(s)

	return phase, nil
}

func (p *Playground) stepLocked(ctx context.Context) Phase {
	phase := p.km.Step(p.points)
	p.logger.LogStep(ctx, p.km.StepNumber(), phase, p.km.Cost(p.points))

	return phase
}

// ToggleAuto flips auto-run and reports whether it is now on. Outside k-means
// mode it does nothing and returns false.
func (p *Playground) ToggleAuto() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	ctx := context.Background()

	if p.auto {
		p.stopAutoLocked(ctx)
		return false
	}

	if p.mode != ModeKMeans {
		return false
	}

	p.auto = true
	p.sched.Start(p.autoStep)
	p.logger.LogAuto(ctx, true)

	return true
}

// autoStep is the scheduler task. The context check happens under the lock
// that stopAutoLocked holds while cancelling, so a cancelled run never steps.
func (p *Playground) autoStep(ctx context.Context) {
	p.mu.Lock()

	if ctx.Err() != nil || !p.auto || p.mode != ModeKMeans {
		p.mu.Unlock()
		return
	}

	p.stepLocked(ctx)
	s := p.stateLocked()
	p.mu.Unlock()

	p.notify(s)
}

func (p *Playground) stopAutoLocked(ctx context.Context) {
	if !p.auto {
		return
	}

	p.sched.Stop()
	p.auto = false
	p.logger.LogAuto(ctx, false)
}

// Reset reseeds the centroids, stops auto-run and assigns points.
func (p *Playground) Reset() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mode != ModeKMeans {
		return ErrWrongMode
	}

	ctx := context.Background()

	p.stopAutoLocked(ctx)
	p.km.Reset(p.points)
	p.logger.LogReset(ctx, p.km.K(), p.km.Seed(), p.points.Len())

	return nil
}

// RecomputeDBSCAN forces a full DBSCAN run.
func (p *Playground) RecomputeDBSCAN() (Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mode != ModeDBSCAN {
		return Result{}, ErrWrongMode
	}

	return p.recomputeLocked(context.Background()), nil
}

func (p *Playground) recomputeLocked(ctx context.Context) Result {
	r := p.db.Run(p.points)
	p.logger.LogDBSCAN(ctx, p.db.Eps(), p.db.MinPts(), r)

	return r
}

// SetOnion toggles exposure of the previous centroid positions.
func (p *Playground) SetOnion(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.onion = enabled
}

func (p *Playground) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.stateLocked()
}

func (p *Playground) stateLocked() State {
	s := State{
		Mode:      p.mode,
		Dataset:   p.points.ID(),
		Points:    p.points.Points(),
		Centroids: p.km.Centroids(),
		Step:      p.km.StepNumber(),
		NextPhase: p.km.NextPhase(),
		LastPhase: p.km.LastPhase(),
		K:         p.km.K(),
		Seed:      p.km.Seed(),
		Eps:       p.db.Eps(),
		MinPts:    p.db.MinPts(),
		Auto:      p.auto,
		Onion:     p.onion,
	}

	if p.onion {
		s.Previous = p.km.Previous()
	}

	switch p.mode {
	case ModeKMeans:
		s.Cost = p.km.Cost(p.points)
	case ModeDBSCAN:
		if r, ok := p.db.Result(); ok {
			s.Clusters = r.Clusters
			s.Noise = r.Noise()
		}
	}

	return s
}

func (p *Playground) notify(s State) {
	if p.observer != nil {
		p.observer(s)
	}
}

// Close stops auto-run and waits for the scheduler loop to exit.
func (p *Playground) Close() {
	p.mu.Lock()
	p.stopAutoLocked(context.Background())
	p.mu.Unlock()

	p.sched.Wait()
}
