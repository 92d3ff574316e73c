package partvec

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with partvec-specific context.
// This provides structured logging with consistent field names.
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
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithCollection adds a collection field to the logger.
func (l *Logger) WithCollection(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("collection", name),
	}
}

// WithPartition adds a partition field to the logger.
func (l *Logger) WithPartition(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("partition", name),
	}
}

// LogCreate logs collection construction.
func (l *Logger) LogCreate(dimension int, partitions []string, err error) {
	if err != nil {
		l.Error("create failed",
			"dimension", dimension,
			"error", err,
		)
	} else {
		l.Info("collection created",
			"dimension", dimension,
			"partitions", partitions,
		)
	}
}

// LogUpsert logs an upsert. inserted distinguishes a first insertion from
// an in-place update. Scope the logger with WithPartition to attribute it.
func (l *Logger) LogUpsert(id string, inserted bool, err error) {
	if err != nil {
		l.Error("upsert failed",
			"id", id,
			"error", err,
		)
		return
	}
	op := "updated"
	if inserted {
		op = "inserted"
	}
	l.Debug("upsert completed",
		"id", id,
		"op", op,
	)
}

// LogSearch logs a search operation.
func (l *Logger) LogSearch(k, resultsFound int, err error) {
	if err != nil {
		l.Error("search failed",
			"k", k,
			"error", err,
		)
	} else {
		l.Debug("search completed",
			"k", k,
			"results", resultsFound,
		)
	}
}
