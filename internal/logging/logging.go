// Package logging builds the process-wide zerolog logger and the
// request-scoped helpers the HTTP façade attaches to context,
// grounded on cmd/ollamacron/main.go's initializeLogging and the
// correlation-id propagation pattern used across the teacher's auth
// and tenant packages.
package logging

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Format selects the zerolog writer: structured JSON for production,
// a colorized console writer for local development.
type Format string

const (
	FormatJSON    Format = "json"
	FormatConsole Format = "console"
)

// Config configures the root logger.
type Config struct {
	Level Level
	Format Format
}

type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// New builds the root logger. Invalid levels fall back to info rather
// than erroring — a misconfigured level should never stop the process
// from starting.
func New(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(string(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	writer := os.Stderr
	var logger zerolog.Logger
	if cfg.Format == FormatConsole {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: writer}).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(writer).With().Timestamp().Logger()
	}
	return logger.Level(level)
}

type contextKey int

const requestIDKey contextKey = iota

// NewRequestID mints a correlation id for one inbound HTTP request.
func NewRequestID() string {
	return uuid.NewString()
}

// WithRequestID attaches a request id to ctx, retrievable with
// RequestIDFromContext.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext returns the request id stashed by WithRequestID,
// or "" if none was attached.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithRequest returns a child logger tagged with the request's
// correlation id; the request logging middleware writes its
// per-request line through it.
func WithRequest(logger zerolog.Logger, ctx context.Context) zerolog.Logger {
	requestID := RequestIDFromContext(ctx)
	if requestID == "" {
		return logger
	}
	return logger.With().Str("request_id", requestID).Logger()
}

// SolveFields builds an info-level event carrying a solve run's
// iteration count and final cost. Neither the CLI nor the HTTP handler
// calls it; each logs (or omits) its own completion line.
func SolveFields(logger zerolog.Logger, iterations uint32, finalCost uint64) *zerolog.Event {
	return logger.Info().
		Uint32("iterations", iterations).
		Uint64("final_cost", finalCost)
}
