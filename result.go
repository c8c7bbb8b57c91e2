package elbow

import (
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/elbow/internal/kmeans"
)

// DefaultMaxIterations bounds a run when WithMaxIterations is not set.
const DefaultMaxIterations = kmeans.DefaultMaxIterations

// State is the termination state of a run.
type State = kmeans.State

const (
	Running        = kmeans.Running
	Converged      = kmeans.Converged
	MaxIterReached = kmeans.MaxIterReached
	Cancelled      = kmeans.Cancelled
)

// Anomaly is a non-fatal event recorded during a run: an empty cluster that
// was reseeded from Point at Iteration.
type Anomaly = kmeans.Anomaly

// RunResult is the outcome of one k-means run over a named matrix.
type RunResult struct {
	K           int
	Centroids   [][]float64
	Assignments []int
	WCSS        float64
	Iterations  int
	State       State
	Seed        uint64
	Anomalies   []Anomaly
	Duration    time.Duration

	samples []string
}

func newRunResult(r *kmeans.Result, samples []string) *RunResult {
	return &RunResult{
		K:           r.K,
		Centroids:   r.Centroids,
		Assignments: r.Assignments,
		WCSS:        r.WCSS,
		Iterations:  r.Iterations,
		State:       r.State,
		Seed:        r.Seed,
		Anomalies:   r.Anomalies,
		Duration:    r.Duration,
		samples:     samples,
	}
}

// Converged reports whether the assignments reached a fixed point.
func (r *RunResult) Converged() bool { return r.State == Converged }

// Samples returns the sample IDs in row order.
func (r *RunResult) Samples() []string { return append([]string(nil), r.samples...) }

// Sizes returns the number of samples per cluster.
func (r *RunResult) Sizes() []int {
	sizes := make([]int, r.K)
	for _, c := range r.Assignments {
		sizes[c]++
	}
	return sizes
}

// Membership maps each sample ID to its cluster index.
func (r *RunResult) Membership() map[string]int {
	m := make(map[string]int, len(r.samples))
	for i, name := range r.samples {
		m[name] = r.Assignments[i]
	}
	return m
}

// Members returns the row indices assigned to cluster c.
func (r *RunResult) Members(c int) *roaring.Bitmap {
	bm := roaring.New()
	for i, a := range r.Assignments {
		if a == c {
			bm.Add(uint32(i))
		}
	}
	return bm
}

// Clusters returns the sample IDs of each cluster, in row order.
func (r *RunResult) Clusters() [][]string {
	clusters := make([][]string, r.K)
	for c := range clusters {
		it := r.Members(c).Iterator()
		for it.HasNext() {
			clusters[c] = append(clusters[c], r.samples[it.Next()])
		}
	}
	return clusters
}

// SweepEntry is the outcome for one k. Exactly one of Result and Err is set.
type SweepEntry struct {
	K      int
	Result *RunResult
	Err    error
}

// CurvePoint is one point of the WCSS-vs-k curve.
type CurvePoint = kmeans.CurvePoint

// SweepResult holds one entry per k = 1..KMax in ascending order.
type SweepResult struct {
	KMax     int
	Entries  []SweepEntry
	Seed     uint64
	Duration time.Duration
}

// Entry returns the entry for k.
func (s *SweepResult) Entry(k int) (SweepEntry, bool) {
	if k < 1 || k > len(s.Entries) {
		return SweepEntry{}, false
	}
	return s.Entries[k-1], true
}

// Curve returns (k, WCSS) for every successful entry in k order.
func (s *SweepResult) Curve() []CurvePoint {
	curve := make([]CurvePoint, 0, len(s.Entries))
	for _, e := range s.Entries {
		if e.Err == nil {
			curve = append(curve, CurvePoint{K: e.K, WCSS: e.Result.WCSS})
		}
	}
	return curve
}

// Failed returns the entries that carry an error.
func (s *SweepResult) Failed() []SweepEntry {
	var failed []SweepEntry
	for _, e := range s.Entries {
		if e.Err != nil {
			failed = append(failed, e)
		}
	}
	return failed
}
