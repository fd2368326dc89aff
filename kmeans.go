package clusterplay

import (
	"gonum.org/v1/gonum/floats"
)

// KMeans is the steppable centroid-assignment engine. Steps alternate between
// an Assign phase (odd step numbers) and an Update phase (even step numbers).
//
// The engine owns its centroids; labels live on the PointSet passed to each call.
// It is not safe for concurrent use.
type KMeans struct {
	k    int
	seed int64

	// Step counter. 0 means nothing has been stepped since the last reseed.
	step int
	last Phase

	c []Centroid

	// Centroid positions as they were right before the latest Update phase.
	prev []Centroid
}

func NewKMeans(k int, seed int64) (*KMeans, error) {
	if k < 1 {
		return nil, ErrInvalidK
	}

	return &KMeans{
		k:    k,
		seed: seed,
	}, nil
}

func (m *KMeans) K() int           { return m.k }
func (m *KMeans) Seed() int64      { return m.seed }
func (m *KMeans) StepNumber() int  { return m.step }
func (m *KMeans) LastPhase() Phase { return m.last }

// NextPhase is the phase the next Step will execute.
func (m *KMeans) NextPhase() Phase {
	return phaseFor(m.step + 1)
}

// Centroids returns a copy of the current centroids.
func (m *KMeans) Centroids() []Centroid {
	return cloneCentroids(m.c)
}

// Previous returns the centroids captured before the last Update phase, or nil.
func (m *KMeans) Previous() []Centroid {
	return cloneCentroids(m.prev)
}

// SetK changes the number of clusters and reseeds.
func (m *KMeans) SetK(k int, ps *PointSet) error {
	if k < 1 {
		return ErrInvalidK
	}

	m.k = k
	m.Reseed(ps)

	return nil
}

// SetSeed changes the random seed and reseeds.
func (m *KMeans) SetSeed(seed int64, ps *PointSet) {
	m.seed = seed
	m.Reseed(ps)
}

// Reseed draws fresh centroids from ps, drops the previous snapshot and rewinds
// the step counter. Labels are left alone.
func (m *KMeans) Reseed(ps *PointSet) {
	m.c = seedCentroids(ps.points, m.k, NewSource(m.seed))
	m.prev = nil
	m.step = 0
	m.last = PhaseNone
}

// Reset reseeds and runs an immediate Assign pass so every point has a group to
// display.
func (m *KMeans) Reset(ps *PointSet) {
	m.Reseed(ps)
	m.Assign(ps)
}

// Step advances the counter and executes exactly one phase.
func (m *KMeans) Step(ps *PointSet) Phase {
	if m.c == nil {
		m.Reseed(ps)
	}

	m.step++
	m.last = phaseFor(m.step)

	switch m.last {
	case PhaseAssign:
		m.Assign(ps)
	case PhaseUpdate:
		m.update(ps)
	}

	return m.last
}

// Assign labels every point with its nearest centroid. It does not touch the
// step counter, so hosts may call it out of band (e.g. after a centroid drag).
func (m *KMeans) Assign(ps *PointSet) {
	if m.c == nil {
		m.Reseed(ps)
	}

	for i := range ps.points {
		ps.points[i].Label = Cluster(nearestCentroid(ps.points[i], m.c))
		ps.points[i].Core = false
	}
}

// MoveCentroid relocates centroid i and reassigns points out of band.
func (m *KMeans) MoveCentroid(i int, x, y float64, ps *PointSet) error {
	if i < 0 || i >= len(m.c) {
		return ErrIndexOutOfRange
	}

	m.c[i].X, m.c[i].Y = x, y
	m.Assign(ps)

	return nil
}

// Cost is the sum of squared distances from assigned points to their centroid.
func (m *KMeans) Cost(ps *PointSet) float64 {
	var s float64

	for _, p := range ps.points {
		if id, ok := p.Label.ID(); ok && id < len(m.c) {
			s += squaredDistance(p, m.c[id].point())
		}
	}

	return s
}

// update moves each centroid to the mean of its members. Empty centroids stay
// where they are.
func (m *KMeans) update(ps *PointSet) {
	var (
		s = make([][]float64, len(m.c))
		n = make([]int, len(m.c))
	)

	for i := range s {
		s[i] = make([]float64, 2)
	}

	for _, p := range ps.points {
		id, ok := p.Label.ID()
		if !ok || id >= len(m.c) {
			continue
		}

		floats.Add(s[id], []float64{p.X, p.Y})
		n[id]++
	}

	m.prev = cloneCentroids(m.c)

	for i := range m.c {
		if n[i] == 0 {
			continue
		}

		floats.Scale(1/float64(n[i]), s[i])

		m.c[i].X, m.c[i].Y = s[i][0], s[i][1]
	}
}
