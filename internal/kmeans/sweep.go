package kmeans

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Slots bounds how many runs execute at once across callers.
// *resource.Controller implements it.
type Slots interface {
	AcquireRun(ctx context.Context) error
	ReleaseRun()
}

// SweepConfig controls a sweep.
type SweepConfig struct {
	Config

	// Workers caps concurrent runs within this sweep.
	// If <= 0, runtime.GOMAXPROCS(0).
	Workers int

	// Slots optionally bounds runs across sweeps sharing it.
	Slots Slots
}

// Entry is the outcome for one k. Exactly one of Result and Err is set.
type Entry struct {
	K      int
	Result *Result
	Err    error
}

// CurvePoint is one point of the WCSS-vs-k curve.
type CurvePoint struct {
	K    int
	WCSS float64
}

// SweepResult holds one entry per k, ordered by k ascending.
type SweepResult struct {
	Entries  []Entry
	Seed     uint64
	Duration time.Duration
}

// Entry returns the entry for k.
func (s *SweepResult) Entry(k int) (Entry, bool) {
	if k < 1 || k > len(s.Entries) {
		return Entry{}, false
	}
	return s.Entries[k-1], true
}

// Curve returns the WCSS of every successful entry in k order.
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
func (s *SweepResult) Failed() []Entry {
	var failed []Entry
	for _, e := range s.Entries {
		if e.Err != nil {
			failed = append(failed, e)
		}
	}
	return failed
}

// Sweep runs k = 1..kMax independently and collects one entry per k.
//
// A failing k is recorded in its entry and does not stop the others. When
// ctx is done, in-flight runs return their partial state as Cancelled and runs
// that have not started carry the context error.
func Sweep(ctx context.Context, points [][]float64, kMax int, cfg SweepConfig) (*SweepResult, error) {
	if kMax <= 0 {
		return nil, fmt.Errorf("%w: kMax=%d", ErrInvalidK, kMax)
	}
	start := time.Now()

	// One seed for the whole sweep; runs differ by their stream (k).
	seed := cfg.seed()
	runCfg := cfg.Config
	runCfg.Seed = &seed
	logger := cfg.logger()

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	entries := make([]Entry, kMax)
	var g errgroup.Group
	g.SetLimit(workers)

	for i := range entries {
		k := i + 1
		entries[i].K = k
		g.Go(func() error {
			entries[i].Result, entries[i].Err = runSlot(ctx, points, k, runCfg, cfg.Slots)
			return nil
		})
	}
	_ = g.Wait()

	res := &SweepResult{
		Entries:  entries,
		Seed:     seed,
		Duration: time.Since(start),
	}
	logger.Debug("sweep finished",
		"k_max", kMax,
		"failed", len(res.Failed()),
		"duration", res.Duration,
	)
	return res, nil
}

func runSlot(ctx context.Context, points [][]float64, k int, cfg Config, slots Slots) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if slots != nil {
		if err := slots.AcquireRun(ctx); err != nil {
			return nil, err
		}
		defer slots.ReleaseRun()
	}
	return Run(ctx, points, k, cfg)
}
