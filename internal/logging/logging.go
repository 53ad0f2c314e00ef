// Package logging provides structured logging for the skill installer.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/worktree-skill/installer/internal/config"
)

// NewFromConfig creates a new slog.Logger based on configuration.
// Diagnostics go to w (normally stderr) so they never mix with the
// installer's human or JSON output on stdout. Verbose forces debug level.
func NewFromConfig(cfg *config.Config, baseDir string, w io.Writer, verbose bool) (*slog.Logger, io.Closer, error) {
	level := parseLevel(cfg.Logging.Level)
	if verbose {
		level = slog.LevelDebug
	}
	handler := newHandler(cfg.Logging.Format, w, level)

	var closer io.Closer
	if logPath := cfg.LogFile(baseDir); logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			return nil, nil, err
		}

		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, err
		}
		closer = file

		handler = newHandler(cfg.Logging.Format, io.MultiWriter(w, file), level)
	}

	return slog.New(handler), closer, nil
}

// NewDefault creates a default logger writing warnings to stderr.
func NewDefault() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// NewForTest creates a silent logger for tests.
func NewForTest() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// NewWithLevel creates a logger with the specified level.
func NewWithLevel(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// parseLevel converts config log level to slog.Level.
func parseLevel(level config.LogLevel) slog.Level {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelInfo:
		return slog.LevelInfo
	case config.LogLevelWarn:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// newHandler creates a slog.Handler based on format.
func newHandler(format config.LogFormat, w io.Writer, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	switch format {
	case config.LogFormatJSON:
		return slog.NewJSONHandler(w, opts)
	default:
		return slog.NewTextHandler(w, opts)
	}
}

// WithFields returns a logger with the given fields added.
func WithFields(logger *slog.Logger, fields ...any) *slog.Logger {
	return logger.With(fields...)
}

// WithTarget returns a logger with target context.
func WithTarget(logger *slog.Logger, targetID string) *slog.Logger {
	return logger.With("target", targetID)
}

// WithPath returns a logger with destination context.
func WithPath(logger *slog.Logger, targetID, path string) *slog.Logger {
	return logger.With("target", targetID, "path", path)
}
