package commands

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/modelkit/pkg/logger"
)

type runIDKey struct{}

// WithRunID stores the identifier of the current invocation in ctx.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

func RunIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

// RunIDExtractor adds the run identifier to log records.
func RunIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		id := RunIDFromContext(ctx)
		return logger.RunID(id), id != ""
	}
}
