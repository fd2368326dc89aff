package clusterplay

import (
	"math"

	"github.com/google/uuid"
)

type labelKind uint8

const (
	labelUnset labelKind = iota
	labelNoise
	labelCluster
)

// Label is the cluster membership of a point. Under k-means it is either unset or
// a centroid index; under DBSCAN it is a cluster id or noise once the run finishes.
type Label struct {
	kind labelKind
	id   int
}

var (
	// Unset marks a point not yet assigned (k-means) or not yet visited (DBSCAN).
	Unset = Label{}
	// Noise marks a point DBSCAN could not attach to any cluster.
	Noise = Label{kind: labelNoise, id: -1}
)

// Cluster returns the label for cluster (or centroid) id.
func Cluster(id int) Label {
	return Label{kind: labelCluster, id: id}
}

func (l Label) IsSet() bool     { return l.kind != labelUnset }
func (l Label) IsNoise() bool   { return l.kind == labelNoise }
func (l Label) IsCluster() bool { return l.kind == labelCluster }

// ID returns the cluster id and whether the label denotes a cluster.
func (l Label) ID() (int, bool) {
	return l.id, l.kind == labelCluster
}

// Int returns the integer form used by hosts: the cluster id, or -1 for noise.
// ok is false for an unset label.
func (l Label) Int() (v int, ok bool) {
	switch l.kind {
	case labelCluster:
		return l.id, true
	case labelNoise:
		return -1, true
	default:
		return 0, false
	}
}

func (l Label) String() string {
	switch l.kind {
	case labelCluster:
		return "cluster(" + itoa(l.id) + ")"
	case labelNoise:
		return "noise"
	default:
		return "unset"
	}
}

// Point is a 2-D observation. Core is only meaningful while Label is set.
type Point struct {
	X, Y  float64
	Label Label
	Core  bool
}

// PointSet is the mutable, ordered collection of points shared between the host
// and the active engine. Engines write labels in place; only the host changes
// the set's shape. Every shape change bumps the version, and Replace also issues
// a new identity, so derived structures can tell when they are stale.
type PointSet struct {
	id      uuid.UUID
	version uint64
	points  []Point
}

func NewPointSet(points []Point) *PointSet {
	ps := &PointSet{id: uuid.New()}
	ps.points = append(make([]Point, 0, len(points)), points...)

	return ps
}

// PointsFromCoords builds unlabelled points from (x, y) pairs.
func PointsFromCoords(coords [][2]float64) []Point {
	p := make([]Point, len(coords))
	for i, c := range coords {
		p[i] = Point{X: c[0], Y: c[1]}
	}

	return p
}

func (ps *PointSet) ID() uuid.UUID   { return ps.id }
func (ps *PointSet) Version() uint64 { return ps.version }
func (ps *PointSet) Len() int        { return len(ps.points) }

func (ps *PointSet) At(i int) Point {
	return ps.points[i]
}

// Points returns a copy of the current points.
func (ps *PointSet) Points() []Point {
	return append([]Point(nil), ps.points...)
}

// Add appends an unlabelled point and returns its index.
func (ps *PointSet) Add(x, y float64) int {
	ps.points = append(ps.points, Point{X: x, Y: y})
	ps.version++

	return len(ps.points) - 1
}

func (ps *PointSet) Remove(i int) error {
	if i < 0 || i >= len(ps.points) {
		return ErrIndexOutOfRange
	}

	ps.points = append(ps.points[:i], ps.points[i+1:]...)
	ps.version++

	return nil
}

// Replace swaps in a new dataset. The set gets a fresh identity.
func (ps *PointSet) Replace(points []Point) {
	ps.points = append(ps.points[:0:0], points...)
	ps.id = uuid.New()
	ps.version++
}

// Nearest returns the index of the point closest to (x, y).
func (ps *PointSet) Nearest(x, y float64) (int, bool) {
	var (
		n = -1
		m = math.Inf(1)
		q = Point{X: x, Y: y}
	)

	for i := range ps.points {
		if d := squaredDistance(ps.points[i], q); d < m {
			m = d
			n = i
		}
	}

	return n, n >= 0
}

// ClearLabels resets every label (and core flag) to unset.
func (ps *PointSet) ClearLabels() {
	for i := range ps.points {
		ps.points[i].Label = Unset
		ps.points[i].Core = false
	}
}

func (ps *PointSet) setLabel(i int, l Label) {
	ps.points[i].Label = l
	if !l.IsSet() {
		ps.points[i].Core = false
	}
}
