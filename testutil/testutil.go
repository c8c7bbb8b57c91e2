package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/elbow/distance"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// UniformPoints generates points with values in range [0, 1).
// Uses a single backing array for efficiency.
func (r *RNG) UniformPoints(num, dimensions int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dimensions)
	points := make([][]float64, num)
	for i := range num {
		p := data[i*dimensions : (i+1)*dimensions]
		for j := range p {
			p[j] = r.rand.Float64()
		}
		points[i] = p
	}
	return points
}

// Blobs generates num points around `clusters` centers spread 10 units apart
// on a diagonal, with Gaussian noise of the given standard deviation. It
// returns the points and the index of the center each was drawn from.
func (r *RNG) Blobs(num, dim, clusters int, spread float64) ([][]float64, []int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dim)
	points := make([][]float64, num)
	labels := make([]int, num)
	for i := range num {
		c := i % clusters
		p := data[i*dim : (i+1)*dim]
		for j := range p {
			p[j] = float64(c)*10 + r.rand.NormFloat64()*spread
		}
		points[i] = p
		labels[i] = c
	}
	return points, labels
}

// Mean returns the coordinate-wise mean of points.
func Mean(points [][]float64) []float64 {
	mean := make([]float64, len(points[0]))
	for _, p := range points {
		for j, v := range p {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= float64(len(points))
	}
	return mean
}

// TotalSS returns the sum of squared distances of points to their mean.
func TotalSS(points [][]float64) float64 {
	mean := Mean(points)
	var total float64
	for _, p := range points {
		total += distance.SquaredL2(p, mean)
	}
	return total
}

// SamePartition reports whether two labelings induce the same partition,
// independent of label numbering.
func SamePartition(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	ab := make(map[int]int)
	ba := make(map[int]int)
	for i := range a {
		if x, ok := ab[a[i]]; ok && x != b[i] {
			return false
		}
		if y, ok := ba[b[i]]; ok && y != a[i] {
			return false
		}
		ab[a[i]] = b[i]
		ba[b[i]] = a[i]
	}
	return true
}
