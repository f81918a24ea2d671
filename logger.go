package graphstore

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with repository-specific helpers so backends and
// repositories log operations with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler. If handler is nil,
// a text handler to stderr at info level is used.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{Logger: slog.New(handler)}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{Logger: slog.New(handler)}
}

// WithEntity adds an entity field to the logger.
func (l *Logger) WithEntity(name string) *Logger {
	return &Logger{Logger: l.Logger.With("entity", name)}
}

// LogQuery logs an index query.
func (l *Logger) LogQuery(ctx context.Context, indexName, property string, hits int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "index query failed",
			"index", indexName,
			"property", property,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "index query completed",
			"index", indexName,
			"property", property,
			"hits", hits,
		)
	}
}

// LogDelete logs a delete operation.
func (l *Logger) LogDelete(ctx context.Context, entity string, id int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "delete failed",
			"entity", entity,
			"id", id,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "delete completed",
			"entity", entity,
			"id", id,
		)
	}
}

// LogConnect logs a backend connection attempt.
func (l *Logger) LogConnect(ctx context.Context, backend, target string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "connect failed",
			"backend", backend,
			"target", target,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "connected",
			"backend", backend,
			"target", target,
		)
	}
}
