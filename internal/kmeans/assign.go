package kmeans

import (
	"math"

	"github.com/hupe1980/elbow/distance"
)

// Assign returns, for every point, the index of its nearest centroid.
// Ties go to the lowest centroid index.
func Assign(points, centroids [][]float64) []int {
	assignments := make([]int, len(points))
	for i := range assignments {
		assignments[i] = -1
	}
	assignInto(assignments, points, centroids)
	return assignments
}

// assignInto recomputes dst in full and reports how many entries changed.
func assignInto(dst []int, points, centroids [][]float64) int {
	changed := 0
	for i, p := range points {
		best := nearest(p, centroids)
		if dst[i] != best {
			dst[i] = best
			changed++
		}
	}
	return changed
}

func nearest(p []float64, centroids [][]float64) int {
	best := -1
	minDist := math.Inf(1)
	for j, c := range centroids {
		// Strict comparison keeps the lowest index on ties.
		if d := distance.SquaredL2(p, c); d < minDist {
			minDist = d
			best = j
		}
	}
	return best
}
