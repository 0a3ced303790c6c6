package environment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Environment represents the deployment environment of the tool.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Parse accepts the full names and the short aliases dev, stage and prod,
// case-insensitively.
func Parse(s string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "development", "dev", "":
		return Development, nil
	case "staging", "stage":
		return Staging, nil
	case "production", "prod":
		return Production, nil
	}
	return "", fmt.Errorf("unknown environment %q", s)
}

func (e Environment) String() string { return string(e) }

type contextKey struct{}

// WithContext stores the environment in ctx.
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, contextKey{}, env)
}

// FromContext returns the environment stored in ctx, or "" when unset.
func FromContext(ctx context.Context) Environment {
	if ctx == nil {
		return ""
	}
	env, _ := ctx.Value(contextKey{}).(Environment)
	return env
}

func IsProduction(ctx context.Context) bool  { return FromContext(ctx) == Production }
func IsStaging(ctx context.Context) bool     { return FromContext(ctx) == Staging }
func IsDevelopment(ctx context.Context) bool { return FromContext(ctx) == Development }

// LoggerExtractor adds the context environment as the "env" attribute.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if env := FromContext(ctx); env != "" {
			return slog.String("env", string(env)), true
		}
		return slog.Attr{}, false
	}
}
