package clusterplay

// NeighborGraph is the symmetric eps-adjacency of a point snapshot. It is valid
// only for the points and eps it was built from and is never patched.
type NeighborGraph struct {
	eps float64
	adj [][]int
}

// NewNeighborGraph connects every unordered pair whose squared distance is at
// most eps². Quadratic in the number of points.
func NewNeighborGraph(points []Point, eps float64) *NeighborGraph {
	var (
		n    = len(points)
		eps2 = eps * eps
		adj  = make([][]int, n)
	)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if squaredDistance(points[i], points[j]) <= eps2 {
				adj[i] = append(adj[i], j)
				adj[j] = append(adj[j], i)
			}
		}
	}

	return &NeighborGraph{eps: eps, adj: adj}
}

func (g *NeighborGraph) Eps() float64 { return g.eps }
func (g *NeighborGraph) Len() int     { return len(g.adj) }

// Neighbors returns the indices within eps of point i, excluding i itself.
func (g *NeighborGraph) Neighbors(i int) []int {
	return g.adj[i]
}

func (g *NeighborGraph) Degree(i int) int {
	return len(g.adj[i])
}

func (g *NeighborGraph) Contains(i, j int) bool {
	for _, v := range g.adj[i] {
		if v == j {
			return true
		}
	}

	return false
}
