package clusterplay

// Centroid is a k-means center. Color is an index into Palette.
type Centroid struct {
	X, Y  float64
	Color int
}

func (c Centroid) point() Point {
	return Point{X: c.X, Y: c.Y}
}

// seedCentroids draws k initial centers uniformly, with replacement, from the
// points. Without points it falls back to a fixed diagonal layout.
func seedCentroids(points []Point, k int, src *Source) []Centroid {
	c := make([]Centroid, k)

	for i := 0; i < k; i++ {
		c[i].Color = i % len(Palette)

		if len(points) == 0 {
			c[i].X = 200 + float64(i)*120
			c[i].Y = 200 + float64(i)*40
			continue
		}

		p := points[src.Intn(len(points))]
		c[i].X, c[i].Y = p.X, p.Y
	}

	return c
}

func cloneCentroids(c []Centroid) []Centroid {
	if c == nil {
		return nil
	}

	return append(make([]Centroid, 0, len(c)), c...)
}

// nearestCentroid returns the index of the centroid closest to p; ties go to
// the lowest index.
func nearestCentroid(p Point, c []Centroid) int {
	var (
		n int
		m = squaredDistance(p, c[0].point())
	)

	for i := 1; i < len(c); i++ {
		if d := squaredDistance(p, c[i].point()); d < m {
			m = d
			n = i
		}
	}

	return n
}
