// Package clusterplay implements a steppable clustering engine for exploring
// k-means and DBSCAN on 2-D point sets.
//
// # Engines
//
// KMeans alternates an Assign phase (points join their nearest centroid) and an
// Update phase (centroids move to the mean of their members), one phase per
// Step. The positions before the latest Update are kept for onion-skin display.
//
// RunDBSCAN is a pure function of points, eps and minPts. The DBSCAN type wraps
// it with parameters and staleness tracking; every run recomputes from scratch.
//
// # Playground
//
// Playground is the host boundary: it owns the point set, clamps parameters,
// switches between the engines and drives k-means on a fixed cadence while
// auto-run is on.
//
//	pg := clusterplay.NewPlayground(points, clusterplay.WithK(3))
//	defer pg.Close()
//
//	pg.Step()         // Assign
//	pg.Step()         // Update
//	pg.ToggleAuto()   // one step every 700ms until toggled off
//	s := pg.State()
package clusterplay
