package kmeans

import (
	"math/rand/v2"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
)

// Reseed records an empty cluster whose centroid was replaced by a data point.
type Reseed struct {
	Cluster int
	Point   int
}

// Update computes the centroid set implied by assignments. Empty clusters are
// reseeded from a point that is not the exact centroid of another cluster.
func Update(points [][]float64, assignments []int, k int, rng *rand.Rand) ([][]float64, []Reseed) {
	dim := len(points[0])
	data := make([]float64, k*dim)
	centroids := make([][]float64, k)
	for j := range centroids {
		centroids[j] = data[j*dim : (j+1)*dim : (j+1)*dim]
	}
	u := newUpdater(k, dim)
	reseeds := u.update(centroids, points, assignments, rng)
	return centroids, reseeds
}

// updater holds the scratch buffers of one run.
type updater struct {
	counts []int
	sums   []float64
	dim    int
}

func newUpdater(k, dim int) *updater {
	return &updater{
		counts: make([]int, k),
		sums:   make([]float64, k*dim),
		dim:    dim,
	}
}

// update overwrites centroids in place.
func (u *updater) update(centroids, points [][]float64, assignments []int, rng *rand.Rand) []Reseed {
	clear(u.counts)
	clear(u.sums)

	dim := u.dim
	for i, p := range points {
		c := assignments[i]
		sum := u.sums[c*dim : (c+1)*dim]
		for d, v := range p {
			sum[d] += v
		}
		u.counts[c]++
	}

	var empty []int
	for j, centroid := range centroids {
		if u.counts[j] == 0 {
			empty = append(empty, j)
			continue
		}
		scale := 1 / float64(u.counts[j])
		sum := u.sums[j*dim : (j+1)*dim]
		for d := range centroid {
			centroid[d] = sum[d] * scale
		}
	}
	if len(empty) == 0 {
		return nil
	}

	return reseedEmpty(centroids, points, empty, rng)
}

// reseedEmpty replaces the centroids listed in empty, in index order.
func reseedEmpty(centroids, points [][]float64, empty []int, rng *rand.Rand) []Reseed {
	n := len(points)
	isEmpty := make([]bool, len(centroids))
	for _, j := range empty {
		isEmpty[j] = true
	}

	// Points that coincide with a settled centroid are not eligible.
	taken := roaring.New()
	for i, p := range points {
		for j, c := range centroids {
			if !isEmpty[j] && slices.Equal(p, c) {
				taken.Add(uint32(i))
				break
			}
		}
	}

	reseeds := make([]Reseed, 0, len(empty))
	for _, j := range empty {
		candidates := roaring.New()
		candidates.AddRange(0, uint64(n))
		candidates.AndNot(taken)

		var idx int
		if card := candidates.GetCardinality(); card > 0 {
			pos, err := candidates.Select(uint32(rng.IntN(int(card))))
			if err != nil {
				idx = rng.IntN(n)
			} else {
				idx = int(pos)
			}
		} else {
			// Every point already is a centroid; a duplicate is unavoidable.
			idx = rng.IntN(n)
		}

		copy(centroids[j], points[idx])
		isEmpty[j] = false
		for i, p := range points {
			if slices.Equal(p, points[idx]) {
				taken.Add(uint32(i))
			}
		}
		reseeds = append(reseeds, Reseed{Cluster: j, Point: idx})
	}
	return reseeds
}
