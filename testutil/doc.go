// Package testutil provides testing utilities for elbow.
//
// This package is intended for use in tests and benchmarks only.
// It generates reproducible sample matrices with known cluster structure.
//
//	rng := testutil.NewRNG(4711)
//	points, labels := rng.Blobs(300, 4, 3, 0.5)
//	total := testutil.TotalSS(points)
package testutil
