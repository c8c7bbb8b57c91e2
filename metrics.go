package elbow

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    runCounter    *prometheus.CounterVec
//	    runHistogram  prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordRun(k, iterations int, state elbow.State, duration time.Duration, err error) {
//	    p.runCounter.WithLabelValues(state.String()).Inc()
//	    p.runHistogram.Observe(duration.Seconds())
//	}
type MetricsCollector interface {
	// RecordRun is called after each k-means run, including every run of a
	// sweep. err is nil if the run produced a result.
	RecordRun(k, iterations int, state State, duration time.Duration, err error)

	// RecordEmptyClusterRecovered is called once per reseeded empty cluster.
	RecordEmptyClusterRecovered(k int)

	// RecordSweep is called after each sweep. failed is the number of k
	// values that produced an error.
	RecordSweep(kMax, failed int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRun(int, int, State, time.Duration, error) {}
func (NoopMetricsCollector) RecordEmptyClusterRecovered(int)                 {}
func (NoopMetricsCollector) RecordSweep(int, int, time.Duration)             {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RunCount               atomic.Int64
	RunErrors              atomic.Int64
	RunConverged           atomic.Int64
	RunMaxIterReached      atomic.Int64
	RunCancelled           atomic.Int64
	RunIterations          atomic.Int64
	RunTotalNanos          atomic.Int64
	EmptyClustersRecovered atomic.Int64
	SweepCount             atomic.Int64
	SweepFailedEntries     atomic.Int64
	SweepTotalNanos        atomic.Int64
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(k, iterations int, state State, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
		return
	}
	b.RunIterations.Add(int64(iterations))
	switch state {
	case Converged:
		b.RunConverged.Add(1)
	case MaxIterReached:
		b.RunMaxIterReached.Add(1)
	case Cancelled:
		b.RunCancelled.Add(1)
	}
}

// RecordEmptyClusterRecovered implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEmptyClusterRecovered(k int) {
	b.EmptyClustersRecovered.Add(1)
}

// RecordSweep implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSweep(kMax, failed int, duration time.Duration) {
	b.SweepCount.Add(1)
	b.SweepFailedEntries.Add(int64(failed))
	b.SweepTotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RunCount:               b.RunCount.Load(),
		RunErrors:              b.RunErrors.Load(),
		RunConverged:           b.RunConverged.Load(),
		RunMaxIterReached:      b.RunMaxIterReached.Load(),
		RunCancelled:           b.RunCancelled.Load(),
		RunAvgIterations:       b.avg(b.RunIterations.Load(), b.RunCount.Load()-b.RunErrors.Load()),
		RunAvgNanos:            b.avg(b.RunTotalNanos.Load(), b.RunCount.Load()),
		EmptyClustersRecovered: b.EmptyClustersRecovered.Load(),
		SweepCount:             b.SweepCount.Load(),
		SweepFailedEntries:     b.SweepFailedEntries.Load(),
		SweepAvgNanos:          b.avg(b.SweepTotalNanos.Load(), b.SweepCount.Load()),
	}
}

func (b *BasicMetricsCollector) avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RunCount               int64
	RunErrors              int64
	RunConverged           int64
	RunMaxIterReached      int64
	RunCancelled           int64
	RunAvgIterations       int64
	RunAvgNanos            int64
	EmptyClustersRecovered int64
	SweepCount             int64
	SweepFailedEntries     int64
	SweepAvgNanos          int64
}
