package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// FromContext returns the logger attached to ctx, or a disabled one.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext attaches logger to ctx.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// WithComponent tags every log line of one adapter (jsruntime, watcher...).
// Use it on the logger, not on a ctx passed further down, so nested
// components do not emit the field twice.
func WithComponent(ctx context.Context, component string) zerolog.Logger {
	return FromContext(ctx).With().Str("component", component).Logger()
}

// WithRunID returns a ctx whose logger carries the check run id, so the
// manifest, artifact and jsruntime lines of one run can be grouped.
func WithRunID(ctx context.Context, runID string) context.Context {
	if runID == "" {
		return ctx
	}
	logger := FromContext(ctx).With().Str("run_id", runID).Logger()
	return WithContext(ctx, logger)
}
