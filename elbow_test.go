package elbow

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/hupe1980/elbow/blobstore"
	"github.com/hupe1980/elbow/distance"
	"github.com/hupe1980/elbow/internal/compression"
	"github.com/hupe1980/elbow/matrix"
	"github.com/hupe1980/elbow/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fourSamples(t *testing.T) *matrix.Matrix {
	t.Helper()
	m, err := matrix.New(
		[]string{"A", "B", "C", "D"},
		[]string{"g1", "g2"},
		[][]float64{{0, 0}, {0, 1}, {10, 10}, {10, 11}},
	)
	require.NoError(t, err)
	return m
}

func TestRunKMeans(t *testing.T) {
	ctx := context.Background()
	m := fourSamples(t)

	t.Run("TwoClusters", func(t *testing.T) {
		res, err := RunKMeans(ctx, m, 2, WithSeed(42))
		require.NoError(t, err)

		assert.True(t, res.Converged())
		assert.InDelta(t, 1.0, res.WCSS, 1e-9)
		assert.Equal(t, uint64(42), res.Seed)

		membership := res.Membership()
		assert.Equal(t, membership["A"], membership["B"])
		assert.Equal(t, membership["C"], membership["D"])
		assert.NotEqual(t, membership["A"], membership["C"])

		clusters := res.Clusters()
		require.Len(t, clusters, 2)
		for _, c := range clusters {
			assert.Len(t, c, 2)
		}
		assert.Equal(t, []int{2, 2}, res.Sizes())
		assert.Equal(t, []string{"A", "B", "C", "D"}, res.Samples())

		bm := res.Members(membership["C"])
		assert.Equal(t, []uint32{2, 3}, bm.ToArray())
	})

	t.Run("SingleCluster", func(t *testing.T) {
		res, err := RunKMeans(ctx, m, 1, WithSeed(1))
		require.NoError(t, err)

		assert.Equal(t, []float64{5, 5.5}, res.Centroids[0])
		assert.InDelta(t, testutil.TotalSS(m.Points()), res.WCSS, 1e-9)
	})

	t.Run("InvalidK", func(t *testing.T) {
		for _, k := range []int{0, -1, 5} {
			_, err := RunKMeans(ctx, m, k)
			assert.ErrorIs(t, err, ErrInvalidK, "k=%d", k)
		}
	})

	t.Run("NilMatrix", func(t *testing.T) {
		_, err := RunKMeans(ctx, nil, 1)
		assert.ErrorIs(t, err, ErrEmptyMatrix)
	})

	t.Run("Deterministic", func(t *testing.T) {
		points := testutil.NewRNG(7).UniformPoints(100, 3)
		pm, err := matrix.FromRows(points)
		require.NoError(t, err)

		a, err := RunKMeans(ctx, pm, 4, WithSeed(99))
		require.NoError(t, err)
		b, err := RunKMeans(ctx, pm, 4, WithSeed(99))
		require.NoError(t, err)

		assert.Equal(t, a.Assignments, b.Assignments)
		assert.Equal(t, a.Centroids, b.Centroids)
		assert.Equal(t, a.WCSS, b.WCSS)
	})

	t.Run("MaxIterations", func(t *testing.T) {
		points, _ := testutil.NewRNG(3).Blobs(300, 2, 6, 3)
		pm, err := matrix.FromRows(points)
		require.NoError(t, err)

		res, err := RunKMeans(ctx, pm, 6, WithSeed(5), WithMaxIterations(1))
		require.NoError(t, err)
		assert.Equal(t, 1, res.Iterations)
		if !res.Converged() {
			assert.Equal(t, MaxIterReached, res.State)
		}
	})

	t.Run("Cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		res, err := RunKMeans(cctx, m, 2, WithSeed(1))
		require.NoError(t, err)
		assert.Equal(t, Cancelled, res.State)
		assert.False(t, res.Converged())
	})
}

func TestRunSweep(t *testing.T) {
	ctx := context.Background()
	m := fourSamples(t)

	t.Run("Curve", func(t *testing.T) {
		sr, err := RunSweep(ctx, m, 4, WithSeed(42), WithWorkers(2))
		require.NoError(t, err)

		require.Len(t, sr.Entries, 4)
		assert.Equal(t, 4, sr.KMax)
		assert.Equal(t, uint64(42), sr.Seed)
		assert.Empty(t, sr.Failed())

		curve := sr.Curve()
		require.Len(t, curve, 4)
		assert.InDelta(t, 201.0, curve[0].WCSS, 1e-9)
		assert.InDelta(t, 1.0, curve[1].WCSS, 1e-9)
		assert.InDelta(t, 0.0, curve[3].WCSS, 1e-9)
		for i, p := range curve {
			assert.Equal(t, i+1, p.K)
		}

		e, ok := sr.Entry(2)
		require.True(t, ok)
		assert.Equal(t, 2, e.Result.K)
		assert.Len(t, e.Result.Membership(), 4)

		_, ok = sr.Entry(5)
		assert.False(t, ok)
	})

	t.Run("PartialFailure", func(t *testing.T) {
		sr, err := RunSweep(ctx, m, 6, WithSeed(1))
		require.NoError(t, err)

		require.Len(t, sr.Entries, 6)
		failed := sr.Failed()
		require.Len(t, failed, 2)
		assert.Equal(t, 5, failed[0].K)
		assert.Equal(t, 6, failed[1].K)
		assert.ErrorIs(t, failed[0].Err, ErrInvalidK)
		assert.Len(t, sr.Curve(), 4)
	})

	t.Run("InvalidKMax", func(t *testing.T) {
		_, err := RunSweep(ctx, m, 0)
		assert.ErrorIs(t, err, ErrInvalidK)
	})

	t.Run("MatchesRunKMeans", func(t *testing.T) {
		points, _ := testutil.NewRNG(11).Blobs(120, 3, 4, 2)
		pm, err := matrix.FromRows(points)
		require.NoError(t, err)

		sr, err := RunSweep(ctx, pm, 5, WithSeed(123))
		require.NoError(t, err)

		for k := 1; k <= 5; k++ {
			single, err := RunKMeans(ctx, pm, k, WithSeed(123))
			require.NoError(t, err)

			e, ok := sr.Entry(k)
			require.True(t, ok)
			require.NoError(t, e.Err)
			assert.Equal(t, single.Assignments, e.Result.Assignments, "k=%d", k)
			assert.Equal(t, single.WCSS, e.Result.WCSS, "k=%d", k)
		}
	})

	t.Run("SharedController", func(t *testing.T) {
		rc := NewResourceController(ResourceConfig{MaxRuns: 1})

		sr, err := RunSweep(ctx, m, 4, WithSeed(3), WithResourceController(rc))
		require.NoError(t, err)
		assert.Empty(t, sr.Failed())
		assert.Zero(t, rc.Running())
	})
}

func TestRunSweep_Metrics(t *testing.T) {
	ctx := context.Background()
	mc := &BasicMetricsCollector{}

	m, err := matrix.FromRows([][]float64{{0}, {0}, {0}, {5}})
	require.NoError(t, err)

	sr, err := RunSweep(ctx, m, 5, WithSeed(8), WithMetricsCollector(mc))
	require.NoError(t, err)

	anomalies := 0
	for _, e := range sr.Entries {
		if e.Err == nil {
			anomalies += len(e.Result.Anomalies)
		}
	}

	stats := mc.GetStats()
	assert.Equal(t, int64(5), stats.RunCount)
	assert.Equal(t, int64(1), stats.RunErrors)
	assert.Equal(t, int64(1), stats.SweepCount)
	assert.Equal(t, int64(1), stats.SweepFailedEntries)
	assert.Equal(t, int64(anomalies), stats.EmptyClustersRecovered)
	assert.Positive(t, stats.EmptyClustersRecovered)
}

func TestRunKMeans_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	m, err := matrix.FromRows([][]float64{{0}, {0}, {0}, {5}})
	require.NoError(t, err)

	_, err = RunKMeans(context.Background(), m, 3, WithSeed(8), WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"empty cluster recovered"`)
	assert.Contains(t, out, `"msg":"kmeans completed"`)
	assert.Contains(t, out, `"k":3`)
}

func TestLoadMatrix(t *testing.T) {
	ctx := context.Background()
	text := "sample\tg1\tg2\nA\t0\t0\nB\t0\t1\nC\t10\t10\nD\t10\t11\n"

	for _, ct := range []compression.Type{compression.None, compression.Gzip, compression.ZSTD, compression.LZ4} {
		t.Run(ct.String(), func(t *testing.T) {
			store := blobstore.NewMemoryStore()
			data, err := compression.Compress([]byte(text), ct)
			require.NoError(t, err)
			require.NoError(t, store.Put(ctx, "expr.tsv"+ct.Extension(), data))

			m, err := LoadMatrix(ctx, store, "expr.tsv"+ct.Extension())
			require.NoError(t, err)
			assert.Equal(t, 4, m.Rows())
			assert.Equal(t, []string{"g1", "g2"}, m.ColNames())

			res, err := RunKMeans(ctx, m, 2, WithSeed(1))
			require.NoError(t, err)
			assert.InDelta(t, 1.0, res.WCSS, 1e-9)
		})
	}

	t.Run("CSV", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		require.NoError(t, store.Put(ctx, "expr.csv", []byte(strings.ReplaceAll(text, "\t", ","))))

		m, err := LoadMatrix(ctx, store, "expr.csv", WithTextOptions(matrix.WithDelimiter(',')))
		require.NoError(t, err)
		assert.Equal(t, 2, m.Cols())
	})

	t.Run("RateLimited", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		require.NoError(t, store.Put(ctx, "expr.tsv", []byte(text)))

		rc := NewResourceController(ResourceConfig{IOLimitBytesPerSec: 1 << 20})
		m, err := LoadMatrix(ctx, store, "expr.tsv", WithResourceController(rc))
		require.NoError(t, err)
		assert.Equal(t, 4, m.Rows())
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := LoadMatrix(ctx, blobstore.NewMemoryStore(), "missing.tsv")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("NonFinite", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		require.NoError(t, store.Put(ctx, "bad.tsv", []byte("sample\tg1\nA\tNaN\n")))

		_, err := LoadMatrix(ctx, store, "bad.tsv")
		assert.ErrorIs(t, err, ErrNonFiniteInput)
	})

	t.Run("Ragged", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		require.NoError(t, store.Put(ctx, "ragged.tsv", []byte("sample\tg1\tg2\nA\t1\t2\nB\t3\n")))

		_, err := LoadMatrix(ctx, store, "ragged.tsv")
		require.Error(t, err)
	})
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))

	_, err := distance.Checked([]float64{1}, []float64{1, 2})
	require.Error(t, err)

	translated := translateError(err)
	var dm *ErrDimensionMismatch
	require.ErrorAs(t, translated, &dm)
	assert.Equal(t, 2, dm.Expected)
	assert.Equal(t, 1, dm.Actual)
	assert.ErrorIs(t, translated, distance.ErrDimensionMismatch)

	plain := errors.New("boom")
	assert.Equal(t, plain, translateError(plain))
}
