package distance

import (
	"errors"
	"fmt"
)

// ErrDimensionMismatch is the sentinel matched by every length or index
// inconsistency reported by this package.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// DimensionMismatchError carries the offending lengths.
type DimensionMismatchError struct {
	Expected int
	Actual   int
	// Detail names the offending element, e.g. "point 3".
	Detail string
}

func (e *DimensionMismatchError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("dimension mismatch: %s: expected %d, got %d", e.Detail, e.Expected, e.Actual)
	}
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Is reports whether target is ErrDimensionMismatch.
func (e *DimensionMismatchError) Is(target error) bool {
	return target == ErrDimensionMismatch
}

// SquaredL2 calculates the squared L2 (Euclidean) distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func SquaredL2(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// Checked is SquaredL2 with a length check.
func Checked(point, centroid []float64) (float64, error) {
	if len(point) != len(centroid) {
		return 0, &DimensionMismatchError{Expected: len(centroid), Actual: len(point)}
	}
	return SquaredL2(point, centroid), nil
}

// WithinClusterSS sums the squared distance of every point to the centroid it
// is assigned to.
func WithinClusterSS(points [][]float64, assignments []int, centroids [][]float64) (float64, error) {
	if len(assignments) != len(points) {
		return 0, &DimensionMismatchError{Expected: len(points), Actual: len(assignments), Detail: "assignment count"}
	}

	var wcss float64
	for i, p := range points {
		c := assignments[i]
		if c < 0 || c >= len(centroids) {
			return 0, fmt.Errorf("%w: point %d assigned to cluster %d of %d", ErrDimensionMismatch, i, c, len(centroids))
		}
		if len(p) != len(centroids[c]) {
			return 0, &DimensionMismatchError{
				Expected: len(centroids[c]),
				Actual:   len(p),
				Detail:   fmt.Sprintf("point %d", i),
			}
		}
		wcss += SquaredL2(p, centroids[c])
	}
	return wcss, nil
}
