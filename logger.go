package clusterplay

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with clusterplay-specific field helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// WithMode adds the active engine mode to the logger.
func (l *Logger) WithMode(m Mode) *Logger {
	return &Logger{
		Logger: l.Logger.With("mode", string(m)),
	}
}

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithCount adds a point count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogReset logs a k-means reseed.
func (l *Logger) LogReset(ctx context.Context, k int, seed int64, points int) {
	l.InfoContext(ctx, "kmeans reset",
		"k", k,
		"seed", seed,
		"points", points,
	)
}

// LogStep logs a single k-means phase.
func (l *Logger) LogStep(ctx context.Context, step int, phase Phase, cost float64) {
	l.DebugContext(ctx, "kmeans step",
		"step", step,
		"phase", phase.String(),
		"cost", cost,
	)
}

// LogDBSCAN logs a DBSCAN recompute.
func (l *Logger) LogDBSCAN(ctx context.Context, eps float64, minPts int, r Result) {
	l.DebugContext(ctx, "dbscan recomputed",
		"eps", eps,
		"min_pts", minPts,
		"clusters", r.Clusters,
		"noise", r.Noise(),
	)
}

// LogAuto logs auto-run being switched on or off.
func (l *Logger) LogAuto(ctx context.Context, enabled bool) {
	l.InfoContext(ctx, "auto-run toggled",
		"enabled", enabled,
	)
}

// LogMode logs a mode switch.
func (l *Logger) LogMode(ctx context.Context, from, to Mode) {
	l.InfoContext(ctx, "mode switched",
		"from", string(from),
		"to", string(to),
	)
}

// LogDataset logs a dataset replacement.
func (l *Logger) LogDataset(ctx context.Context, points int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "dataset load failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "dataset loaded",
			"points", points,
		)
	}
}
