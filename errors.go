package elbow

import (
	"errors"
	"fmt"

	"github.com/hupe1980/elbow/blobstore"
	"github.com/hupe1980/elbow/distance"
	"github.com/hupe1980/elbow/internal/kmeans"
	"github.com/hupe1980/elbow/matrix"
)

var (
	// ErrInvalidK is returned when k <= 0, k exceeds the number of samples,
	// or a sweep is requested with kMax <= 0.
	ErrInvalidK = kmeans.ErrInvalidK

	// ErrNonFiniteInput is returned when the input contains NaN or ±Inf.
	ErrNonFiniteInput = matrix.ErrNonFiniteInput

	// ErrEmptyMatrix is returned when the input has no samples or no features.
	ErrEmptyMatrix = matrix.ErrEmpty

	// ErrNotFound is returned when a blob does not exist.
	ErrNotFound = blobstore.ErrNotFound

	// ErrEmptyClusterRecovered marks an Anomaly. It is never returned as an error.
	ErrEmptyClusterRecovered = kmeans.ErrEmptyClusterRecovered
)

// ErrDimensionMismatch indicates rows or centroids of differing length.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var dm *distance.DimensionMismatchError
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Expected: dm.Expected, Actual: dm.Actual, cause: err}
	}

	return err
}
