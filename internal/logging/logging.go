// Package logging builds the zerolog logger shared by armada services.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/armada/internal/config"
	"github.com/example/armada/internal/ctxutil"
)

// New creates a logger from the log section of the config, writing to stderr.
func New(cfg config.Log) (zerolog.Logger, error) {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter creates a logger writing to out.
func NewWithWriter(cfg config.Log, out io.Writer) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	switch cfg.Format {
	case "", "console":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	case "json":
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q", cfg.Format)
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

// WithActor returns a child logger tagged with the actor carried by ctx.
func WithActor(ctx context.Context, logger zerolog.Logger) zerolog.Logger {
	return logger.With().Str("actor", ctxutil.ActorFromContext(ctx)).Logger()
}
