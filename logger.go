package elbow

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with the field names used for clustering runs.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, logs go to stderr as text at info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger writing JSON lines to w (stderr if nil).
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(orStderr(w), &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger writing logfmt-style text to w (stderr if nil).
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(orStderr(w), &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

func orStderr(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// WithDataset tags every record with the dataset name.
func (l *Logger) WithDataset(name string) *Logger {
	return &Logger{Logger: l.Logger.With("dataset", name)}
}

// WithK adds the cluster count.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{Logger: l.Logger.With("k", k)}
}

// LogLoad logs a matrix load.
func (l *Logger) LogLoad(ctx context.Context, name string, rows, cols int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "matrix load failed", "name", name, "error", err)
		return
	}
	l.InfoContext(ctx, "matrix loaded", "name", name, "rows", rows, "cols", cols)
}

// LogRun logs a single k-means invocation.
func (l *Logger) LogRun(ctx context.Context, k int, res *RunResult, err error) {
	if err != nil {
		l.ErrorContext(ctx, "kmeans failed", "k", k, "error", err)
		return
	}
	l.InfoContext(ctx, "kmeans completed",
		"k", k,
		"state", res.State,
		"iterations", res.Iterations,
		"wcss", res.WCSS,
		"seed", res.Seed,
	)
}

// LogSweep logs the outcome of an elbow sweep. Failed entries are logged
// individually at warn level.
func (l *Logger) LogSweep(ctx context.Context, res *SweepResult) {
	for _, e := range res.Entries {
		if e.Err != nil {
			l.WarnContext(ctx, "sweep entry failed", "k", e.K, "error", e.Err)
		}
	}
	l.InfoContext(ctx, "sweep completed",
		"k_max", res.KMax,
		"failed", len(res.Failed()),
		"seed", res.Seed,
		"duration", res.Duration,
	)
}
