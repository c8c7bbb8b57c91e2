package kmeans

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/hupe1980/elbow/distance"
	"github.com/hupe1980/elbow/matrix"
)

// DefaultMaxIterations bounds a run when Config.MaxIterations is not set.
const DefaultMaxIterations = 10000

// Config controls a single run.
type Config struct {
	// MaxIterations is the iteration budget. If <= 0, DefaultMaxIterations.
	MaxIterations int

	// Seed makes the run reproducible. If nil, a seed is drawn from the
	// runtime's random source and reported in Result.Seed.
	Seed *uint64

	// Logger receives anomaly and completion events. If nil, discarded.
	Logger *slog.Logger
}

func (c Config) maxIterations() int {
	if c.MaxIterations <= 0 {
		return DefaultMaxIterations
	}
	return c.MaxIterations
}

func (c Config) seed() uint64 {
	if c.Seed != nil {
		return *c.Seed
	}
	return rand.Uint64()
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// State is the convergence controller's state.
type State int

const (
	Running State = iota
	Converged
	MaxIterReached
	Cancelled
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Converged:
		return "converged"
	case MaxIterReached:
		return "max_iter_reached"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Anomaly is a non-fatal event recorded during a run.
type Anomaly struct {
	Iteration int
	Reseed
}

// Err describes the anomaly as an error wrapping ErrEmptyClusterRecovered.
func (a Anomaly) Err() error {
	return fmt.Errorf("%w: cluster %d reseeded from point %d at iteration %d",
		ErrEmptyClusterRecovered, a.Cluster, a.Point, a.Iteration)
}

// Result is the outcome of one run. It is not modified after Run returns.
type Result struct {
	K           int
	Centroids   [][]float64
	Assignments []int
	WCSS        float64
	Iterations  int
	State       State
	Seed        uint64
	Anomalies   []Anomaly
	Duration    time.Duration
}

// Converged reports whether the assignment vector reached a fixed point.
func (r *Result) Converged() bool { return r.State == Converged }

// Sizes returns the number of points per cluster.
func (r *Result) Sizes() []int {
	sizes := make([]int, r.K)
	for _, c := range r.Assignments {
		sizes[c]++
	}
	return sizes
}

// Run clusters points into k clusters.
//
// Each iteration updates centroids from the current assignments and then
// reassigns every point. The run stops when no assignment changes, when the
// iteration budget is spent, or when ctx is done; the last two return the
// partial state with Converged() == false and no error.
func Run(ctx context.Context, points [][]float64, k int, cfg Config) (*Result, error) {
	start := time.Now()

	dim, err := matrix.Validate(points)
	if err != nil {
		return nil, err
	}
	n := len(points)
	if k <= 0 || k > n {
		return nil, invalidK(k, n)
	}

	seed := cfg.seed()
	rng := newRand(seed, k)
	logger := cfg.logger().With("k", k)
	maxIter := cfg.maxIterations()

	centroids, err := InitializeCentroids(points, k, rng)
	if err != nil {
		return nil, err
	}
	assignments := Assign(points, centroids)

	u := newUpdater(k, dim)
	res := &Result{K: k, Seed: seed, State: Running}

	for res.State == Running {
		if ctx.Err() != nil {
			res.State = Cancelled
			break
		}
		res.Iterations++

		for _, rs := range u.update(centroids, points, assignments, rng) {
			a := Anomaly{Iteration: res.Iterations, Reseed: rs}
			res.Anomalies = append(res.Anomalies, a)
			logger.Warn("empty cluster recovered",
				"cluster", rs.Cluster,
				"point", rs.Point,
				"iteration", res.Iterations,
			)
		}

		changed := assignInto(assignments, points, centroids)
		switch {
		case changed == 0:
			res.State = Converged
		case res.Iterations >= maxIter:
			res.State = MaxIterReached
			logger.Warn("kmeans did not converge",
				"iterations", res.Iterations,
				"changed", changed,
			)
		}
	}

	wcss, err := distance.WithinClusterSS(points, assignments, centroids)
	if err != nil {
		return nil, err
	}

	res.Centroids = centroids
	res.Assignments = assignments
	res.WCSS = wcss
	res.Duration = time.Since(start)

	logger.Debug("kmeans run finished",
		"state", res.State,
		"iterations", res.Iterations,
		"wcss", wcss,
		"anomalies", len(res.Anomalies),
	)
	return res, nil
}
