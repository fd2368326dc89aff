package clusterplay

import "github.com/google/uuid"

// Result is the outcome of one DBSCAN run, indexed like the input points.
type Result struct {
	Labels   []Label
	Core     []bool
	Clusters int
}

// Noise counts the points labelled as noise.
func (r Result) Noise() int {
	var n int
	for _, l := range r.Labels {
		if l.IsNoise() {
			n++
		}
	}

	return n
}

// Apply writes labels and core flags into ps. The result must have been computed
// for the current contents of ps.
func (r Result) Apply(ps *PointSet) {
	for i := range ps.points {
		if i >= len(r.Labels) {
			ps.setLabel(i, Unset)
			continue
		}

		ps.points[i].Label = r.Labels[i]
		ps.points[i].Core = r.Core[i]
	}
}

// RunDBSCAN clusters points by density reachability. A point is core when its
// eps-neighborhood, itself included, holds at least minPts points. Clusters are
// grown breadth-first from core points in index order; border points are
// labelled but not expanded, and a point labelled noise earlier is taken over as
// a border member when a later cluster reaches it.
func RunDBSCAN(points []Point, eps float64, minPts int) Result {
	var (
		n      = len(points)
		g      = NewNeighborGraph(points, eps)
		labels = make([]Label, n)
		core   = make([]bool, n)
		q      = newIndexQueue(n)
		cid    int
	)

	for i := 0; i < n; i++ {
		core[i] = g.Degree(i)+1 >= minPts
	}

	for i := 0; i < n; i++ {
		if labels[i].IsSet() {
			continue
		}

		if !core[i] {
			labels[i] = Noise
			continue
		}

		labels[i] = Cluster(cid)
		q.Push(i)

		for q.NotEmpty() {
			p := q.Pop()

			for _, nb := range g.Neighbors(p) {
				if labels[nb].IsCluster() {
					continue
				}

				visited := labels[nb].IsSet()
				labels[nb] = Cluster(cid)

				if core[nb] && !visited {
					q.Push(nb)
				}
			}
		}

		cid++
	}

	return Result{
		Labels:   labels,
		Core:     core,
		Clusters: cid,
	}
}

// DBSCAN holds the density parameters and the last result. Every Run recomputes
// from scratch; Stale reports whether the stored result still matches.
type DBSCAN struct {
	minpts int
	eps    float64

	result *Result

	// What the stored result was computed for.
	dataset uuid.UUID
	version uint64
	reps    float64
	rminpts int
}

func NewDBSCAN(eps float64, minpts int) (*DBSCAN, error) {
	if eps <= 0 {
		return nil, ErrZeroEpsilon
	}

	if minpts < 1 {
		return nil, ErrZeroMinpts
	}

	return &DBSCAN{
		minpts: minpts,
		eps:    eps,
	}, nil
}

func (d *DBSCAN) Eps() float64 { return d.eps }
func (d *DBSCAN) MinPts() int  { return d.minpts }

func (d *DBSCAN) SetEps(eps float64) error {
	if eps <= 0 {
		return ErrZeroEpsilon
	}

	d.eps = eps

	return nil
}

func (d *DBSCAN) SetMinPts(minpts int) error {
	if minpts < 1 {
		return ErrZeroMinpts
	}

	d.minpts = minpts

	return nil
}

// Run recomputes DBSCAN over ps and writes the labels back.
func (d *DBSCAN) Run(ps *PointSet) Result {
	r := RunDBSCAN(ps.points, d.eps, d.minpts)
	r.Apply(ps)

	d.result = &r
	d.dataset = ps.ID()
	d.version = ps.Version()
	d.reps = d.eps
	d.rminpts = d.minpts

	return r
}

// Result returns the last computed result, if any.
func (d *DBSCAN) Result() (Result, bool) {
	if d.result == nil {
		return Result{}, false
	}

	return *d.result, true
}

// Stale reports whether ps or the parameters changed since the last Run.
func (d *DBSCAN) Stale(ps *PointSet) bool {
	return d.result == nil ||
		d.dataset != ps.ID() ||
		d.version != ps.Version() ||
		d.reps != d.eps ||
		d.rminpts != d.minpts
}
