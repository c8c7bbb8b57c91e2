package elbow

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBasicMetricsCollector(t *testing.T) {
	mc := &BasicMetricsCollector{}

	mc.RecordRun(2, 4, Converged, 10*time.Millisecond, nil)
	mc.RecordRun(3, 8, MaxIterReached, 30*time.Millisecond, nil)
	mc.RecordRun(4, 1, Cancelled, 20*time.Millisecond, nil)
	mc.RecordRun(9, 0, Running, 0, errors.New("invalid k"))
	mc.RecordEmptyClusterRecovered(3)
	mc.RecordSweep(9, 1, time.Second)

	stats := mc.GetStats()
	assert.Equal(t, int64(4), stats.RunCount)
	assert.Equal(t, int64(1), stats.RunErrors)
	assert.Equal(t, int64(1), stats.RunConverged)
	assert.Equal(t, int64(1), stats.RunMaxIterReached)
	assert.Equal(t, int64(1), stats.RunCancelled)
	assert.Equal(t, int64(13/3), stats.RunAvgIterations)
	assert.Equal(t, (15 * time.Millisecond).Nanoseconds(), stats.RunAvgNanos)
	assert.Equal(t, int64(1), stats.EmptyClustersRecovered)
	assert.Equal(t, int64(1), stats.SweepCount)
	assert.Equal(t, int64(1), stats.SweepFailedEntries)
	assert.Equal(t, time.Second.Nanoseconds(), stats.SweepAvgNanos)
}

func TestBasicMetricsCollector_Empty(t *testing.T) {
	stats := (&BasicMetricsCollector{}).GetStats()
	assert.Zero(t, stats.RunAvgNanos)
	assert.Zero(t, stats.RunAvgIterations)
	assert.Zero(t, stats.SweepAvgNanos)
}

func TestNoopMetricsCollector(t *testing.T) {
	var mc MetricsCollector = NoopMetricsCollector{}
	mc.RecordRun(1, 1, Converged, time.Millisecond, nil)
	mc.RecordEmptyClusterRecovered(1)
	mc.RecordSweep(1, 0, time.Millisecond)
}
