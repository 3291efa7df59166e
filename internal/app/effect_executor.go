// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/example/armada/internal/core/effects"
	"github.com/example/armada/internal/logging"
)

// EffectExecutor interprets and executes effects.
// This is the "Imperative Shell" for effects the core returns after a write.
type EffectExecutor interface {
	Execute(ctx context.Context, effs []effects.Effect) error
}

// DefaultEffectExecutor implements EffectExecutor by logging through zerolog.
type DefaultEffectExecutor struct {
	logger zerolog.Logger
}

// NewEffectExecutor creates a new DefaultEffectExecutor.
func NewEffectExecutor(logger zerolog.Logger) *DefaultEffectExecutor {
	return &DefaultEffectExecutor{logger: logger}
}

// Execute processes a slice of effects, executing each in sequence.
func (e *DefaultEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) error {
	for _, eff := range effs {
		if err := e.executeOne(ctx, eff); err != nil {
			return fmt.Errorf("failed to execute %s effect: %w", eff.EffectType(), err)
		}
	}
	return nil
}

func (e *DefaultEffectExecutor) executeOne(ctx context.Context, eff effects.Effect) error {
	switch typed := eff.(type) {
	case effects.LogEffect:
		return e.executeLog(ctx, typed)
	case effects.PersistEffect:
		// Persist effects are performed by the record itself; they are only traced here.
		logger := logging.WithActor(ctx, e.logger)
		logger.Debug().
			Str("entity", typed.Entity).
			Str("operation", typed.Operation).
			Int64("id", typed.ID).
			Msg("persisted")
		return nil
	case effects.CompositeEffect:
		return e.Execute(ctx, typed.Effects)
	case effects.NoEffect:
		return nil
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

func (e *DefaultEffectExecutor) executeLog(ctx context.Context, eff effects.LogEffect) error {
	level, err := zerolog.ParseLevel(eff.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", eff.Level, err)
	}
	logger := logging.WithActor(ctx, e.logger)
	logger.WithLevel(level).Fields(eff.Fields).Msg(eff.Message)
	return nil
}
