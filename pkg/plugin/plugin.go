// Package plugin implements a plugin: its hook registry, its option
// accumulator and the start, process, complete and error lifecycle.
package plugin

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/siujs/cli/pkg/consts"
	"github.com/siujs/cli/pkg/hooks"
	"github.com/siujs/cli/pkg/kv"
	"github.com/siujs/cli/pkg/logger"
	"github.com/siujs/cli/pkg/manifest"
	"github.com/siujs/cli/pkg/metrics"
	"github.com/siujs/cli/pkg/options"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "github.com/siujs/cli/pkg/plugin"

// Factory registers the hooks of a plugin.
type Factory func(api *hooks.API) error

// NewPluginParams contains parameters for creating a new Plugin.
type NewPluginParams struct {
	ID       string
	Store    *kv.Store
	Packages *manifest.Cache
	Console  *logger.Console
	Logger   logger.Logger
	Metrics  metrics.Recorder
	Tracer   trace.Tracer
	// HandlerTimeout bounds every handler invocation. Zero disables it.
	HandlerTimeout time.Duration
}

// Plugin owns the hooks registered by one plugin and runs them.
type Plugin struct {
	id       string
	registry *hooks.Registry
	api      *hooks.API
	store    *kv.Store
	packages *manifest.Cache
	console  *logger.Console
	logger   logger.Logger
	metrics  metrics.Recorder
	tracer   trace.Tracer
	timeout  time.Duration

	mu         sync.Mutex
	opts       map[consts.Command]options.Options
	lastCmd    consts.Command
	cliOptions map[consts.Command][]hooks.CLIOption
}

// New creates a new Plugin.
func New(params NewPluginParams) (*Plugin, error) {
	if params.ID == "" {
		return nil, ErrEmptyID
	}

	p := &Plugin{
		id:         params.ID,
		registry:   hooks.NewRegistry(),
		store:      params.Store,
		packages:   params.Packages,
		console:    params.Console,
		logger:     params.Logger,
		metrics:    params.Metrics,
		tracer:     params.Tracer,
		timeout:    params.HandlerTimeout,
		opts:       make(map[consts.Command]options.Options),
		cliOptions: make(map[consts.Command][]hooks.CLIOption),
	}
	p.api = hooks.NewAPI(p.registry)

	if p.store == nil {
		p.store = kv.New()
	}
	if p.console == nil {
		p.console = logger.NewDiscardConsole()
	}
	if p.logger == nil {
		p.logger = logger.NewNoopLogger()
	}
	p.logger = logger.WithPlugin(p.logger, p.id)
	if p.metrics == nil {
		p.metrics = metrics.NewNoopRecorder()
	}
	if p.tracer == nil {
		p.tracer = noop.NewTracerProvider().Tracer(tracerName)
	}
	return p, nil
}

// ID returns the plugin id.
func (p *Plugin) ID() string {
	return p.id
}

// API returns the registration surface of the plugin.
func (p *Plugin) API() *hooks.API {
	return p.api
}

// Registry returns the hook registry of the plugin.
func (p *Plugin) Registry() *hooks.Registry {
	return p.registry
}

// Apply calls factory with the plugin API.
func (p *Plugin) Apply(factory Factory) error {
	if factory == nil {
		return nil
	}
	if err := factory(p.api); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFactory, p.id, err)
	}
	return nil
}

// HasCommandHooks reports whether the plugin has lifecycle handlers for cmd.
func (p *Plugin) HasCommandHooks(cmd consts.Command) bool {
	return p.registry.HasCommandHooks(cmd)
}

// RefreshOpts replaces the accumulated options of every command present in opts.
func (p *Plugin) RefreshOpts(opts map[consts.Command]options.Options) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for cmd, o := range opts {
		p.opts[cmd] = o.Clone()
	}
}

// Options returns the options accumulated for cmd.
func (p *Plugin) Options(cmd consts.Command) options.Options {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.opts[cmd].Clone()
}

func (p *Plugin) mergeOpts(cmd consts.Command, opts options.Options) options.Options {
	p.mu.Lock()
	defer p.mu.Unlock()

	merged := p.opts[cmd].Merge(opts)
	p.opts[cmd] = merged
	p.lastCmd = cmd
	return merged.Clone()
}

func (p *Plugin) newContext(ctx context.Context, scope hooks.Scope, opts options.Options, console *logger.Console) *hooks.Context {
	return hooks.NewContext(hooks.ContextParams{
		Context:  ctx,
		Scope:    scope,
		Options:  opts,
		Store:    p.store,
		Packages: p.packages,
		Console:  console,
		Logger:   p.logger,
	})
}
