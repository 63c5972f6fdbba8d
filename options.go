package mailjsx

import (
	"io"
	"log/slog"

	"github.com/dmitrymomot/mailjsx/pkg/jsx"
	"github.com/dmitrymomot/mailjsx/pkg/render"
)

// Option configures a single render call.
type Option func(*config)

type config struct {
	compiler *jsx.Options
	render   *render.Options
	scope    Scope
	logger   *slog.Logger
}

func newConfig(opts []Option) *config {
	c := &config{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithCompilerOptions replaces the default compiler configuration wholesale.
// Fields left at their zero value are not filled from jsx.DefaultOptions.
func WithCompilerOptions(o jsx.Options) Option {
	return func(c *config) { c.compiler = &o }
}

// WithSWCOptions is an alias of WithCompilerOptions.
func WithSWCOptions(o jsx.Options) Option {
	return WithCompilerOptions(o)
}

// WithRenderOptions passes o unchanged to the render stage.
func WithRenderOptions(o render.Options) Option {
	return func(c *config) { c.render = &o }
}

// WithReactEmailRenderOptions is an alias of WithRenderOptions.
func WithReactEmailRenderOptions(o render.Options) Option {
	return WithRenderOptions(o)
}

// WithScope adds names visible to the template. Caller names take
// precedence over the built-in runtime and components. Repeated calls merge
// in order, so a later call wins on collision. The map is copied.
func WithScope(s Scope) Option {
	return func(c *config) {
		if len(s) == 0 {
			return
		}
		if c.scope == nil {
			c.scope = make(Scope, len(s))
		}
		for k, v := range s {
			c.scope[k] = v
		}
	}
}

// WithLogger enables debug-level tracing of the pipeline stages.
// Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
