package kmeans

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidK is returned when k <= 0 or k exceeds the number of points.
	ErrInvalidK = errors.New("invalid k")

	// ErrEmptyClusterRecovered marks a reseeded empty cluster. It is never
	// returned by Run; it appears in Anomaly.Err for logging.
	ErrEmptyClusterRecovered = errors.New("empty cluster recovered")
)

func invalidK(k, n int) error {
	return fmt.Errorf("%w: k=%d with %d points", ErrInvalidK, k, n)
}
