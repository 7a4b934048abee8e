// Package logging provides the structured logger used by the CLI and adapters.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger with consistent field names for tabular operations.
type Logger struct {
	*slog.Logger
}

// New creates a Logger with the given handler.
// If handler is nil, uses a text handler to stderr at info level.
func New(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSON creates a Logger that writes JSON records to w.
func NewJSON(w io.Writer, level slog.Level) *Logger {
	return New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewText creates a Logger that writes human-readable records to w.
func NewText(w io.Writer, level slog.Level) *Logger {
	return New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Noop creates a Logger that discards all output.
func Noop() *Logger {
	return NewText(io.Discard, slog.Level(1000))
}

// ParseLevel maps "debug", "info", "warn" or "error" to a level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// WithCommand tags every record with the CLI command name.
func (l *Logger) WithCommand(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("command", name),
	}
}

// LogLoad logs reading a dataset from path.
func (l *Logger) LogLoad(ctx context.Context, path string, records int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"path", path,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "dataset loaded",
			"path", path,
			"records", records,
		)
	}
}

// LogSave logs writing output to path.
func (l *Logger) LogSave(ctx context.Context, path string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed",
			"path", path,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "output saved",
			"path", path,
		)
	}
}

// LogAnalyze logs an Analyze call.
func (l *Logger) LogAnalyze(ctx context.Context, records int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "analyze failed",
			"records", records,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "analyze completed",
			"records", records,
		)
	}
}

// LogFilter logs a FilterByThreshold call.
func (l *Logger) LogFilter(ctx context.Context, column string, threshold float64, in, out int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "filter failed",
			"column", column,
			"threshold", threshold,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "filter completed",
			"column", column,
			"threshold", threshold,
			"records", in,
			"matched", out,
		)
	}
}

// LogRender logs drawing a chart to path.
func (l *Logger) LogRender(ctx context.Context, chart, path string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "render failed",
			"chart", chart,
			"path", path,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "chart saved",
			"chart", chart,
			"path", path,
		)
	}
}
