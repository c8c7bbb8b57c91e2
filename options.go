package elbow

import (
	"github.com/hupe1980/elbow/internal/resource"
	"github.com/hupe1980/elbow/matrix"
)

type options struct {
	maxIterations    int
	seed             *uint64
	workers          int
	logger           *Logger
	metricsCollector MetricsCollector
	controller       *resource.Controller
	textOptions      []matrix.TextOption
}

// Option configures RunKMeans, RunSweep and LoadMatrix.
type Option func(*options)

func newOptions(optFns []Option) options {
	o := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

// WithMaxIterations sets the iteration budget of each run.
// If n <= 0, DefaultMaxIterations is used.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithSeed makes runs reproducible.
//
// For a sweep, every k draws from its own stream of the same seed, so the
// entry for k equals RunKMeans with the same seed and k.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = &seed
	}
}

// WithWorkers caps the number of concurrent runs within a sweep.
// If n <= 0, runtime.GOMAXPROCS(0) is used.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLogger sets the logger. If nil, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector. If nil, metrics are discarded.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithResourceController shares run slots and IO bandwidth limits between
// concurrent sweeps and loads.
func WithResourceController(rc *ResourceController) Option {
	return func(o *options) {
		o.controller = rc
	}
}

// WithTextOptions configures how LoadMatrix parses delimited text.
func WithTextOptions(opts ...matrix.TextOption) Option {
	return func(o *options) {
		o.textOptions = append(o.textOptions, opts...)
	}
}

// ResourceController limits concurrent runs and blob throughput.
type ResourceController = resource.Controller

// ResourceConfig holds resource limits.
type ResourceConfig = resource.Config

// NewResourceController creates a controller from cfg.
func NewResourceController(cfg ResourceConfig) *ResourceController {
	return resource.NewController(cfg)
}
