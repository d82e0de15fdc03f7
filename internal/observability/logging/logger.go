// Package logging provides structured logging utilities using the standard
// library's log/slog package, with consistent configuration and context
// propagation across the crawler and the read API.
package logging

import (
	"context"
	"log/slog"
	"os"

	"newscrawl/internal/handler/http/requestid"
)

// parseLevel maps the LOG_LEVEL environment variable to a slog level.
// Unknown values fall back to info.
func parseLevel() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a structured logger with JSON output.
// The log level is controlled via the LOG_LEVEL environment variable
// (debug, info, warn, error; default info).
func NewLogger() *slog.Logger {
	level := parseLevel()
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	})

	return slog.New(handler)
}

// NewTextLogger creates a structured logger with human-readable text output,
// intended for local development.
func NewTextLogger() *slog.Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(),
	})

	return slog.New(handler)
}

// WithRunID returns a logger that tags every entry with the crawl run ID,
// so the entries of one crawl pass can be correlated.
func WithRunID(logger *slog.Logger, runID string) *slog.Logger {
	if runID == "" {
		return logger
	}
	return logger.With(slog.String("run_id", runID))
}

// WithRequestID returns a logger that includes the request ID from the
// context. Used by the read API for request tracing.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		return logger
	}
	return logger.With(slog.String("request_id", reqID))
}

type contextKey string

const loggerContextKey contextKey = "logger"

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

// FromContext retrieves the logger from the context, or the default logger
// if none was attached.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
