package kmeans

import (
	"math/rand/v2"
	"slices"
)

// InitializeCentroids selects k distinct points uniformly at random without
// replacement. Points whose values duplicate an already selected centroid are
// skipped while enough distinct values remain.
func InitializeCentroids(points [][]float64, k int, rng *rand.Rand) ([][]float64, error) {
	n := len(points)
	if k <= 0 || k > n {
		return nil, invalidK(k, n)
	}

	perm := rng.Perm(n)
	chosen := make([]int, 0, k)
	var skipped []int
	for _, idx := range perm {
		if len(chosen) == k {
			break
		}
		if containsValue(points, chosen, points[idx]) {
			skipped = append(skipped, idx)
			continue
		}
		chosen = append(chosen, idx)
	}
	// Fewer than k distinct values: fall back to duplicates in draw order.
	for i := 0; len(chosen) < k; i++ {
		chosen = append(chosen, skipped[i])
	}

	return copyRows(points, chosen), nil
}

func containsValue(points [][]float64, indices []int, v []float64) bool {
	for _, idx := range indices {
		if slices.Equal(points[idx], v) {
			return true
		}
	}
	return false
}

// copyRows copies the selected rows into a single backing array.
func copyRows(points [][]float64, indices []int) [][]float64 {
	dim := len(points[indices[0]])
	data := make([]float64, len(indices)*dim)
	rows := make([][]float64, len(indices))
	for i, idx := range indices {
		row := data[i*dim : (i+1)*dim : (i+1)*dim]
		copy(row, points[idx])
		rows[i] = row
	}
	return rows
}

func newRand(seed uint64, k int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(k)))
}
