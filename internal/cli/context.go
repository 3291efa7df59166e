// Package cli provides CLI commands for the armada application.
package cli

import (
	"context"

	"github.com/example/armada/internal/ctxutil"
)

// globalActorID stores the actor named by --actor for the current CLI invocation.
var globalActorID string

// SetActor stores the actor ID used for every mutation of this invocation.
// Should be called once at CLI startup in PersistentPreRun.
func SetActor(actorID string) {
	globalActorID = actorID
}

// NewContext creates a context.Background() with the current actor ID embedded.
// CLI commands should use this instead of context.Background() directly.
func NewContext() context.Context {
	ctx := context.Background()
	if globalActorID != "" {
		return ctxutil.WithActorID(ctx, globalActorID)
	}
	return ctx
}
