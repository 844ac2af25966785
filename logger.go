package semanticsim

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with consistent field names for comparer events.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, uses a text handler to stderr at info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that writes JSON to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that writes human-readable text to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger discards all output.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

// WithProvider adds the provider name to every record.
func (l *Logger) WithProvider(name string) *Logger {
	return &Logger{Logger: l.Logger.With("provider", name)}
}

// LogInitialize logs a provider initialization.
func (l *Logger) LogInitialize(ctx context.Context, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "provider initialization failed",
			"elapsed", elapsed,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "provider initialized", "elapsed", elapsed)
}

// LogEmbed logs a single embedding request.
func (l *Logger) LogEmbed(ctx context.Context, textLen, dimension int, cached bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "embed failed",
			"text_len", textLen,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "embed completed",
		"text_len", textLen,
		"dimension", dimension,
		"cached", cached,
	)
}

// LogCompare logs a completed or failed phrase comparison.
func (l *Logger) LogCompare(ctx context.Context, score float64, label string, err error) {
	if err != nil {
		l.WarnContext(ctx, "comparison failed", "error", err)
		return
	}
	l.DebugContext(ctx, "comparison completed",
		"score", score,
		"label", label,
	)
}

// LogBatch logs a ComparePairs run.
func (l *Logger) LogBatch(ctx context.Context, count int, elapsed time.Duration, err error) {
	if err != nil {
		l.WarnContext(ctx, "pair comparison aborted",
			"pairs", count,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "pair comparison completed",
		"pairs", count,
		"elapsed", elapsed,
	)
}
