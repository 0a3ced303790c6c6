package validator

import (
	"log/slog"

	"github.com/dmitrymomot/modelkit/pkg/schema"
)

// Option configures a Validator.
type Option func(*Validator)

// WithHooks registers hooks for fields of the validated schema. Repeated
// calls append in registration order.
func WithHooks(hooks Hooks) Option {
	return func(v *Validator) {
		for name, hs := range hooks {
			v.hooks[name] = append(v.hooks[name], hs...)
		}
	}
}

// WithNestedHooks registers hooks for fields of a schema used through
// schema.Object somewhere below the validated schema.
func WithNestedHooks(s *schema.Schema, hooks Hooks) Option {
	return func(v *Validator) {
		if s == nil {
			return
		}
		merged := v.nested[s]
		if merged == nil {
			merged = make(Hooks, len(hooks))
		}
		for name, hs := range hooks {
			merged[name] = append(merged[name], hs...)
		}
		v.nested[s] = merged
	}
}

// WithCoercion selects the scalar coercion policy. Default is CoerceStandard.
func WithCoercion(c Coercion) Option {
	return func(v *Validator) { v.coercion = c }
}

// WithMutation allows Record.Set on records produced by the validator. Each
// Set re-validates the single affected field.
func WithMutation() Option {
	return func(v *Validator) { v.mutable = true }
}

// WithLogger sets the logger used for debug events. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}
