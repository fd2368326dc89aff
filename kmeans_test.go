package clusterplay

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomPoints scatters n points over the playground canvas.
func randomPoints(n int, rng *rand.Rand) []Point {
	p := make([]Point, n)
	for i := range p {
		p[i] = Point{X: rng.Float64() * 960, Y: rng.Float64() * 600}
	}
	return p
}

// blobs places n points on rings around three fixed centers.
func blobs(n int, rng *rand.Rand) []Point {
	centers := [][2]float64{{260, 320}, {540, 200}, {720, 360}}
	p := make([]Point, n)
	for i := range p {
		c := centers[i%len(centers)]
		p[i] = Point{X: c[0] + (rng.Float64()-0.5)*80, Y: c[1] + (rng.Float64()-0.5)*80}
	}
	return p
}

func labelsOf(ps *PointSet) []Label {
	l := make([]Label, ps.Len())
	for i := range l {
		l[i] = ps.At(i).Label
	}
	return l
}

func newKMeans(t *testing.T, k int, seed int64) *KMeans {
	t.Helper()
	m, err := NewKMeans(k, seed)
	require.NoError(t, err)
	return m
}

func TestNewKMeansRejectsZeroK(t *testing.T) {
	_, err := NewKMeans(0, 1)
	assert.ErrorIs(t, err, ErrInvalidK)

	m := newKMeans(t, 2, 1)
	assert.ErrorIs(t, m.SetK(0, NewPointSet(nil)), ErrInvalidK)
	assert.Equal(t, 2, m.K())
}

func TestKMeansPhaseAlternation(t *testing.T) {
	ps := NewPointSet(blobs(30, rand.New(rand.NewPCG(1, 0))))
	m := newKMeans(t, 3, 7)
	m.Reset(ps)

	assert.Equal(t, 0, m.StepNumber())
	assert.Equal(t, PhaseAssign, m.NextPhase())
	assert.Equal(t, PhaseNone, m.LastPhase())

	for i := 1; i <= 6; i++ {
		want := PhaseAssign
		if i%2 == 0 {
			want = PhaseUpdate
		}

		assert.Equal(t, want, m.Step(ps))
		assert.Equal(t, i, m.StepNumber())
		assert.Equal(t, want, m.LastPhase())
	}
}

func TestKMeansAssignIsIdempotent(t *testing.T) {
	ps := NewPointSet(randomPoints(100, rand.New(rand.NewPCG(2, 0))))
	m := newKMeans(t, 4, 3)
	m.Reset(ps)

	first := labelsOf(ps)
	m.Assign(ps)
	assert.Equal(t, first, labelsOf(ps))
	assert.Equal(t, 0, m.StepNumber(), "out-of-band assign must not advance the counter")
}

func TestKMeansUpdateNeverIncreasesCost(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 0))

	for trial := 0; trial < 20; trial++ {
		ps := NewPointSet(randomPoints(50+trial, rng))
		m := newKMeans(t, 1+trial%6, int64(trial))
		m.Reset(ps)

		for i := 0; i < 10; i++ {
			before := m.Cost(ps)
			phase := m.Step(ps)

			if phase == PhaseUpdate {
				assert.LessOrEqual(t, m.Cost(ps), before+1e-9, "trial %d step %d", trial, m.StepNumber())
			}
		}
	}
}

func TestKMeansLabelsInRangeAfterReset(t *testing.T) {
	rng := rand.New(rand.NewPCG(4, 0))

	for k := 1; k <= 8; k++ {
		for _, n := range []int{0, 1, 2, 17, 120} {
			ps := NewPointSet(randomPoints(n, rng))
			m := newKMeans(t, k, int64(k*n))
			m.Reset(ps)
			m.Step(ps)

			require.Len(t, m.Centroids(), k)

			for i := 0; i < ps.Len(); i++ {
				id, ok := ps.At(i).Label.ID()
				require.True(t, ok)
				assert.GreaterOrEqual(t, id, 0)
				assert.Less(t, id, k)
			}
		}
	}
}

// Two nearby points and one far point: whenever the seeding picks the far point
// and a near point as centers, the near pair must end up together.
func TestKMeansSeparatesFarPoint(t *testing.T) {
	var (
		far   = Point{X: 100, Y: 100}
		tried int
	)

	for seed := int64(0); seed < 100; seed++ {
		ps := NewPointSet(PointsFromCoords([][2]float64{{0, 0}, {0, 1}, {100, 100}}))
		m := newKMeans(t, 2, seed)
		m.Reset(ps)

		c := m.Centroids()
		farSeeded := c[0].point() == far || c[1].point() == far
		nearSeeded := c[0].point() != far || c[1].point() != far

		if !farSeeded || !nearSeeded {
			continue
		}

		tried++
		m.Step(ps)

		a, b, f := ps.At(0).Label, ps.At(1).Label, ps.At(2).Label
		assert.Equal(t, a, b, "seed %d", seed)
		assert.NotEqual(t, a, f, "seed %d", seed)
	}

	require.Positive(t, tried, "no seed produced a separating initialisation")
}

func TestKMeansSinglePoint(t *testing.T) {
	ps := NewPointSet(PointsFromCoords([][2]float64{{42, 24}}))
	m := newKMeans(t, 1, 5)
	m.Reset(ps)

	c := m.Centroids()
	require.Len(t, c, 1)
	assert.Equal(t, 42.0, c[0].X)
	assert.Equal(t, 24.0, c[0].Y)

	m.Step(ps)

	v, ok := ps.At(0).Label.Int()
	require.True(t, ok)
	assert.Equal(t, 0, v)
}

func TestKMeansEmptyPointSetFallback(t *testing.T) {
	ps := NewPointSet(nil)
	m := newKMeans(t, 3, 9)
	m.Reset(ps)

	assert.Equal(t, []Centroid{
		{X: 200, Y: 200, Color: 0},
		{X: 320, Y: 240, Color: 1},
		{X: 440, Y: 280, Color: 2},
	}, m.Centroids())

	m.Step(ps)
	m.Step(ps)
	assert.Len(t, m.Centroids(), 3)
}

func TestKMeansResetIsDeterministic(t *testing.T) {
	pts := randomPoints(40, rand.New(rand.NewPCG(5, 0)))

	a := newKMeans(t, 4, 11)
	b := newKMeans(t, 4, 11)
	a.Reset(NewPointSet(pts))
	b.Reset(NewPointSet(pts))

	assert.Equal(t, a.Centroids(), b.Centroids())

	before := a.Centroids()
	a.Reset(NewPointSet(pts))
	assert.Equal(t, before, a.Centroids())
}

func TestKMeansPaletteCycles(t *testing.T) {
	ps := NewPointSet(randomPoints(10, rand.New(rand.NewPCG(6, 0))))
	m := newKMeans(t, 8, 1)
	m.Reset(ps)

	c := m.Centroids()
	assert.Equal(t, 0, c[6].Color)
	assert.Equal(t, 1, c[7].Color)
	assert.Equal(t, Palette[1], ColorOf(c[7].Color))
}

func TestKMeansEmptyClusterIsParked(t *testing.T) {
	ps := NewPointSet(PointsFromCoords([][2]float64{{0, 0}, {1, 0}}))
	m := newKMeans(t, 2, 1)
	m.Reset(ps)

	require.NoError(t, m.MoveCentroid(0, 0.5, 0, ps))
	require.NoError(t, m.MoveCentroid(1, 500, 500, ps))

	m.Step(ps) // Assign
	m.Step(ps) // Update

	c := m.Centroids()
	assert.InDelta(t, 0.5, c[0].X, 1e-12)
	assert.Equal(t, 500.0, c[1].X)
	assert.Equal(t, 500.0, c[1].Y)
}

func TestKMeansPreviousSnapshot(t *testing.T) {
	ps := NewPointSet(blobs(30, rand.New(rand.NewPCG(7, 0))))
	m := newKMeans(t, 3, 2)
	m.Reset(ps)

	assert.Nil(t, m.Previous())

	m.Step(ps)
	assert.Nil(t, m.Previous(), "assign must not capture a snapshot")

	before := m.Centroids()
	m.Step(ps)
	assert.Equal(t, before, m.Previous())

	m.Step(ps)
	m.Step(ps)
	assert.NotEqual(t, before, m.Previous(), "only one generation is retained")

	m.Reset(ps)
	assert.Nil(t, m.Previous())

	m.Step(ps)
	m.Step(ps)
	m.SetSeed(3, ps)
	assert.Nil(t, m.Previous())
	assert.Equal(t, 0, m.StepNumber())
}

func TestKMeansMoveCentroidAssignsOutOfBand(t *testing.T) {
	ps := NewPointSet(PointsFromCoords([][2]float64{{0, 0}, {100, 0}}))
	m := newKMeans(t, 2, 1)
	m.Reset(ps)
	m.Step(ps)

	require.NoError(t, m.MoveCentroid(0, 0, 0, ps))
	require.NoError(t, m.MoveCentroid(1, 100, 0, ps))

	assert.Equal(t, 1, m.StepNumber())
	assert.Equal(t, Cluster(0), ps.At(0).Label)
	assert.Equal(t, Cluster(1), ps.At(1).Label)

	assert.ErrorIs(t, m.MoveCentroid(2, 0, 0, ps), ErrIndexOutOfRange)
}

func TestKMeansTieGoesToLowestIndex(t *testing.T) {
	ps := NewPointSet(PointsFromCoords([][2]float64{{5, 0}}))
	m := newKMeans(t, 2, 1)
	m.Reset(ps)

	require.NoError(t, m.MoveCentroid(0, 0, 0, ps))
	require.NoError(t, m.MoveCentroid(1, 10, 0, ps))

	assert.Equal(t, Cluster(0), ps.At(0).Label)
}

func TestKMeansIgnoresUnassignedPointsInUpdate(t *testing.T) {
	ps := NewPointSet(PointsFromCoords([][2]float64{{0, 0}, {2, 0}}))
	m := newKMeans(t, 1, 1)
	m.Reset(ps)
	m.Step(ps)

	ps.Add(1000, 1000)
	m.Step(ps)

	c := m.Centroids()
	assert.InDelta(t, 1.0, c[0].X, 1e-12)
	assert.InDelta(t, 0.0, c[0].Y, 1e-12)
}

// lloyd runs n full assign+update iterations on plain slices.
func lloyd(points []Point, centers []Centroid, n int) ([]int, []Centroid) {
	c := cloneCentroids(centers)
	a := make([]int, len(points))

	for it := 0; it < n; it++ {
		for i, p := range points {
			a[i] = nearestCentroid(p, c)
		}

		sx := make([]float64, len(c))
		sy := make([]float64, len(c))
		cnt := make([]int, len(c))

		for i, p := range points {
			sx[a[i]] += p.X
			sy[a[i]] += p.Y
			cnt[a[i]]++
		}

		for j := range c {
			if cnt[j] > 0 {
				c[j].X = sx[j] / float64(cnt[j])
				c[j].Y = sy[j] / float64(cnt[j])
			}
		}
	}

	return a, c
}

func TestKMeansTwoStepsEqualOneIteration(t *testing.T) {
	pts := blobs(90, rand.New(rand.NewPCG(8, 0)))

	for _, n := range []int{1, 2, 5} {
		ps := NewPointSet(pts)
		m := newKMeans(t, 3, 21)
		m.Reseed(ps)
		start := m.Centroids()

		for i := 0; i < 2*n; i++ {
			m.Step(ps)
		}

		wantA, wantC := lloyd(pts, start, n)

		for i := range wantA {
			assert.Equal(t, Cluster(wantA[i]), ps.At(i).Label, "n=%d point %d", n, i)
		}

		got := m.Centroids()
		for j := range wantC {
			assert.InDelta(t, wantC[j].X, got[j].X, 1e-9)
			assert.InDelta(t, wantC[j].Y, got[j].Y, 1e-9)
		}
	}
}
