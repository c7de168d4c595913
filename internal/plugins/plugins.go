// Package plugins holds the side-effecting registrations the shell performs
// at startup: store, filesystem, notifications, opener. The shell only
// configures these collaborators; their features are driven by the frontend.
package plugins

import (
	"context"
	"fmt"

	"stockadvisors/internal/logger"
)

type Plugin interface {
	Name() string
	Init(ctx context.Context) error
	Close() error
}

// Registry initializes plugins in registration order. A failing Init aborts
// startup: the process must not come up partially configured.
type Registry struct {
	plugins []Plugin
	ready   []Plugin
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Register(p Plugin) {
	r.plugins = append(r.plugins, p)
}

func (r *Registry) Init(ctx context.Context) error {
	for _, p := range r.plugins {
		if err := p.Init(ctx); err != nil {
			return fmt.Errorf("plugin %s: %w", p.Name(), err)
		}
		r.ready = append(r.ready, p)
		logger.Plugin.Info().Str("plugin", p.Name()).Msg("plugin initialized")
	}
	return nil
}

// Close shuts down initialized plugins in reverse order. Close errors are
// logged and ignored.
func (r *Registry) Close() {
	for i := len(r.ready) - 1; i >= 0; i-- {
		p := r.ready[i]
		if err := p.Close(); err != nil {
			logger.Plugin.Warn().Err(err).Str("plugin", p.Name()).Msg("plugin close failed")
		}
	}
	r.ready = nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.plugins))
	for _, p := range r.plugins {
		names = append(names, p.Name())
	}
	return names
}

// Func wraps plain functions into a Plugin for simple registrations.
type Func struct {
	PluginName string
	InitFn     func(ctx context.Context) error
	CloseFn    func() error
}

func (f Func) Name() string { return f.PluginName }

func (f Func) Init(ctx context.Context) error {
	if f.InitFn == nil {
		return nil
	}
	return f.InitFn(ctx)
}

func (f Func) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
