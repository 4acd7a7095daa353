package registry

import (
	"strings"

	"github.com/rs/zerolog"
)

const defaultName = "default"

// Option configures a Registry at construction.
type Option func(*Registry)

// WithLogger installs a structured logger. Defaults to zerolog.Nop().
func WithLogger(l zerolog.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// WithName sets the name used in logs and metric labels. Invalid UTF-8 is
// replaced since the name becomes a label value.
func WithName(name string) Option {
	return func(r *Registry) {
		if name != "" {
			r.name = strings.ToValidUTF8(name, "\uFFFD")
		}
	}
}
