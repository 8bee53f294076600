// Package logging wraps log/slog with sitedeck's output and format options.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Config holds logging configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json or text
	Output string // stdout, stderr, discard, or a file path
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() *Config {
	return &Config{
		Level:  "info",
		Format: "text",
		Output: "stderr",
	}
}

// Logger wraps slog.Logger with sitedeck-specific helpers.
type Logger struct {
	*slog.Logger
	closer io.Closer
}

// NewLogger creates a structured logger from configuration.
// File outputs are opened in append mode; call Close to release them.
func NewLogger(cfg *Config) (*Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	var writer io.Writer
	var closer io.Closer

	switch out := strings.TrimSpace(cfg.Output); strings.ToLower(out) {
	case "stderr", "":
		writer = os.Stderr
	case "stdout":
		writer = os.Stdout
	case "discard", "none":
		writer = io.Discard
	default:
		f, err := os.OpenFile(out, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file %q: %w", out, err)
		}
		writer = f
		closer = f
	}

	l := New(writer, cfg.Level, cfg.Format)
	l.closer = closer
	return l, nil
}

// New creates a logger that writes to w.
func New(w io.Writer, level, format string) *Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String("timestamp", a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return &Logger{Logger: slog.New(handler)}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, "error", "text")
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithComponent adds component context to the logger.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.Logger.With("component", component)}
}

// Request logs a failed remote call with its diagnostic payload.
// body is usually the decoded response body; it may be nil.
func (l *Logger) Request(op string, status int, body interface{}, err error) {
	args := []any{"operation", op}
	if status != 0 {
		args = append(args, "status", status)
	}
	if body != nil {
		args = append(args, "body", body)
	}
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.Logger.Error("request failed", args...)
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
