package elbow

import (
	"context"
	"io"

	"github.com/hupe1980/elbow/blobstore"
	"github.com/hupe1980/elbow/internal/compression"
	"github.com/hupe1980/elbow/internal/kmeans"
	"github.com/hupe1980/elbow/internal/resource"
	"github.com/hupe1980/elbow/matrix"
)

// RunKMeans partitions the samples (rows) of m into k clusters.
//
// Errors: ErrInvalidK if k <= 0 or k > m.Rows(). Non-convergence and
// cancellation are reported through RunResult.State, not as errors.
func RunKMeans(ctx context.Context, m *matrix.Matrix, k int, optFns ...Option) (*RunResult, error) {
	o := newOptions(optFns)
	if m == nil {
		return nil, ErrEmptyMatrix
	}

	res, err := kmeans.Run(ctx, m.Points(), k, o.runConfig())
	if err != nil {
		err = translateError(err)
		o.metricsCollector.RecordRun(k, 0, Running, 0, err)
		o.logger.LogRun(ctx, k, nil, err)
		return nil, err
	}

	out := newRunResult(res, m.RowNames())
	o.record(out)
	o.logger.LogRun(ctx, k, out, nil)
	return out, nil
}

// RunSweep runs k = 1..kMax independently over m and collects every result.
//
// A k that fails (for example k > m.Rows()) is recorded in its entry and does
// not stop the others. kMax <= 0 fails the whole sweep with ErrInvalidK.
func RunSweep(ctx context.Context, m *matrix.Matrix, kMax int, optFns ...Option) (*SweepResult, error) {
	o := newOptions(optFns)
	if m == nil {
		return nil, ErrEmptyMatrix
	}

	cfg := kmeans.SweepConfig{
		Config:  o.runConfig(),
		Workers: o.workers,
	}
	if o.controller != nil {
		cfg.Slots = o.controller
	}

	sr, err := kmeans.Sweep(ctx, m.Points(), kMax, cfg)
	if err != nil {
		return nil, translateError(err)
	}

	samples := m.RowNames()
	out := &SweepResult{
		KMax:     kMax,
		Entries:  make([]SweepEntry, len(sr.Entries)),
		Seed:     sr.Seed,
		Duration: sr.Duration,
	}
	for i, e := range sr.Entries {
		out.Entries[i].K = e.K
		if e.Err != nil {
			out.Entries[i].Err = translateError(e.Err)
			o.metricsCollector.RecordRun(e.K, 0, Running, 0, out.Entries[i].Err)
			continue
		}
		out.Entries[i].Result = newRunResult(e.Result, samples)
		o.record(out.Entries[i].Result)
	}

	o.metricsCollector.RecordSweep(kMax, len(out.Failed()), out.Duration)
	o.logger.LogSweep(ctx, out)
	return out, nil
}

// LoadMatrix reads a delimited text matrix from store. Gzip, zstd and lz4
// content is detected and decompressed transparently.
func LoadMatrix(ctx context.Context, store blobstore.Store, name string, optFns ...Option) (*matrix.Matrix, error) {
	o := newOptions(optFns)

	m, err := loadMatrix(ctx, store, name, o)
	if err != nil {
		err = translateError(err)
		o.logger.LogLoad(ctx, name, 0, 0, err)
		return nil, err
	}

	o.logger.LogLoad(ctx, name, m.Rows(), m.Cols(), nil)
	return m, nil
}

func loadMatrix(ctx context.Context, store blobstore.Store, name string, o options) (*matrix.Matrix, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	var r io.Reader = blob
	if o.controller != nil {
		r = resource.NewRateLimitedReader(ctx, r, o.controller)
	}

	zr, _, err := compression.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	return matrix.Read(zr, o.textOptions...)
}

func (o options) runConfig() kmeans.Config {
	return kmeans.Config{
		MaxIterations: o.maxIterations,
		Seed:          o.seed,
		Logger:        o.logger.Logger,
	}
}

func (o options) record(r *RunResult) {
	o.metricsCollector.RecordRun(r.K, r.Iterations, r.State, r.Duration, nil)
	for range r.Anomalies {
		o.metricsCollector.RecordEmptyClusterRecovered(r.K)
	}
}

