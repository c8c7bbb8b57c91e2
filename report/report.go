package report

import (
	"time"

	"github.com/hupe1980/elbow"
	"github.com/hupe1980/elbow/catalog"
)

// Anomaly is an empty-cluster recovery.
type Anomaly struct {
	Iteration int    `json:"iteration"`
	Cluster   int    `json:"cluster"`
	Point     int    `json:"point"`
	Sample    string `json:"sample"`
}

// Cluster describes one cluster of a run.
type Cluster struct {
	Index    int       `json:"index"`
	Size     int       `json:"size"`
	Centroid []float64 `json:"centroid"`
	Samples  []string  `json:"samples"`
}

// Run is the serialisable form of elbow.RunResult.
type Run struct {
	K          int           `json:"k"`
	State      string        `json:"state"`
	Converged  bool          `json:"converged"`
	Iterations int           `json:"iterations"`
	WCSS       float64       `json:"wcss"`
	Seed       uint64        `json:"seed"`
	Duration   time.Duration `json:"duration_ns"`
	Samples    []string      `json:"samples"`
	Membership []int         `json:"membership"`
	Clusters   []Cluster     `json:"clusters"`
	Anomalies  []Anomaly     `json:"anomalies,omitempty"`
}

// FromRun converts a run result.
func FromRun(r *elbow.RunResult) *Run {
	samples := r.Samples()

	out := &Run{
		K:          r.K,
		State:      r.State.String(),
		Converged:  r.Converged(),
		Iterations: r.Iterations,
		WCSS:       r.WCSS,
		Seed:       r.Seed,
		Duration:   r.Duration,
		Samples:    samples,
		Membership: append([]int(nil), r.Assignments...),
		Clusters:   make([]Cluster, r.K),
	}

	members := r.Clusters()
	for c := range out.Clusters {
		out.Clusters[c] = Cluster{
			Index:    c,
			Size:     len(members[c]),
			Centroid: append([]float64(nil), r.Centroids[c]...),
			Samples:  members[c],
		}
	}

	for _, a := range r.Anomalies {
		out.Anomalies = append(out.Anomalies, Anomaly{
			Iteration: a.Iteration,
			Cluster:   a.Cluster,
			Point:     a.Point,
			Sample:    samples[a.Point],
		})
	}
	return out
}

// MembershipMap maps each sample to its cluster.
func (r *Run) MembershipMap() map[string]int {
	m := make(map[string]int, len(r.Samples))
	for i, s := range r.Samples {
		m[s] = r.Membership[i]
	}
	return m
}

// SweepEntry is the outcome for one k. Exactly one of Run and Error is set.
type SweepEntry struct {
	K     int    `json:"k"`
	Run   *Run   `json:"run,omitempty"`
	Error string `json:"error,omitempty"`
}

// Sweep is the serialisable form of elbow.SweepResult.
type Sweep struct {
	Dataset  string          `json:"dataset"`
	KMax     int             `json:"k_max"`
	Seed     uint64          `json:"seed"`
	Duration time.Duration   `json:"duration_ns"`
	Curve    []catalog.Point `json:"curve"`
	Failed   []int           `json:"failed,omitempty"`
	Entries  []SweepEntry    `json:"entries"`
}

// FromSweep converts a sweep result for dataset.
func FromSweep(dataset string, s *elbow.SweepResult) *Sweep {
	out := &Sweep{
		Dataset:  dataset,
		KMax:     s.KMax,
		Seed:     s.Seed,
		Duration: s.Duration,
		Entries:  make([]SweepEntry, len(s.Entries)),
	}

	for _, p := range s.Curve() {
		out.Curve = append(out.Curve, catalog.Point{K: p.K, WCSS: p.WCSS})
	}

	for i, e := range s.Entries {
		out.Entries[i].K = e.K
		if e.Err != nil {
			out.Entries[i].Error = e.Err.Error()
			out.Failed = append(out.Failed, e.K)
			continue
		}
		out.Entries[i].Run = FromRun(e.Result)
	}
	return out
}

// CatalogEntry summarises the sweep for a catalog. reportName is the blob the
// full report was saved under, or "".
func (s *Sweep) CatalogEntry(reportName string) catalog.Entry {
	return catalog.Entry{
		Dataset: s.Dataset,
		KMax:    s.KMax,
		Seed:    s.Seed,
		Curve:   append([]catalog.Point(nil), s.Curve...),
		Failed:  append([]int(nil), s.Failed...),
		Report:  reportName,
	}
}
