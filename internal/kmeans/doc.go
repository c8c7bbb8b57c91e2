// Package kmeans implements Lloyd's k-means over dense float64 points and the
// k = 1..K sweep that feeds elbow-based model selection.
//
// A run is self-contained: it owns its centroid set and assignment vector and
// only reads the shared points, so sweep entries execute concurrently without
// locking. Randomness comes from an explicit seed; the PCG stream for a run is
// derived from (seed, k), which makes the sweep entry for k identical to a
// stand-alone run with the same seed.
package kmeans
