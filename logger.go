package gridkit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/hupe1980/gridkit/grid"
	"github.com/hupe1980/gridkit/snapshot"
)

// Logger wraps slog.Logger with gridkit-specific context.
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
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// WithSpace tags every record with the name of a space.
func (l *Logger) WithSpace(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("space", name),
	}
}

// WithIndex adds an index field to the logger.
func (l *Logger) WithIndex(i grid.Index) *Logger {
	return &Logger{
		Logger: l.Logger.With("index", uint64(i)),
	}
}

// LogAdd logs an add operation.
func (l *Logger) LogAdd(ctx context.Context, pos fmt.Stringer, index grid.Index, err error) {
	if err != nil {
		l.DebugContext(ctx, "add rejected",
			"position", pos.String(),
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "add completed",
		"position", pos.String(),
		"index", uint64(index),
	)
}

// LogRemove logs a remove operation.
func (l *Logger) LogRemove(ctx context.Context, index grid.Index, removed bool) {
	l.DebugContext(ctx, "remove completed",
		"index", uint64(index),
		"removed", removed,
	)
}

// LogNeighbors logs a neighbor query.
func (l *Logger) LogNeighbors(ctx context.Context, diagonal bool, found int) {
	l.DebugContext(ctx, "neighbors completed",
		"diagonal", diagonal,
		"found", found,
	)
}

// LogSnapshot logs a snapshot operation.
func (l *Logger) LogSnapshot(ctx context.Context, name string, info snapshot.Info, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"name", name,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "snapshot saved",
		"name", name,
		"items", info.Items,
		"bytes", info.Size,
		"compression", info.Compression.String(),
	)
}

// LogRestore logs a restore operation.
func (l *Logger) LogRestore(ctx context.Context, name string, items uint64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "restore failed",
			"name", name,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "restore completed",
		"name", name,
		"items", items,
	)
}
