// Package orchestrator materializes the configured plugins and drives them
// over the workspace packages for one command.
package orchestrator

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/siujs/cli/internal/naming"
	"github.com/siujs/cli/pkg/config"
	"github.com/siujs/cli/pkg/consts"
	"github.com/siujs/cli/pkg/fs"
	"github.com/siujs/cli/pkg/hooks"
	"github.com/siujs/cli/pkg/kv"
	"github.com/siujs/cli/pkg/loader"
	"github.com/siujs/cli/pkg/logger"
	"github.com/siujs/cli/pkg/manifest"
	"github.com/siujs/cli/pkg/metrics"
	"github.com/siujs/cli/pkg/options"
	"github.com/siujs/cli/pkg/pkgorder"
	"github.com/siujs/cli/pkg/plugin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	tracerName = "github.com/siujs/cli/pkg/orchestrator"

	// DefaultCleanConcurrency bounds the clean handlers running at once.
	DefaultCleanConcurrency = 8
)

// Args are the arguments of one ApplyPlugins run.
type Args struct {
	Cmd  consts.Command
	Opts options.Options
}

// CommandFallback registers hooks for a command no plugin handles.
type CommandFallback func(api *hooks.CommandAPI) error

// ResolverFunc builds the package order resolver of a workspace.
type ResolverFunc func(workspace string) pkgorder.Resolver

// NewOrchestratorParams contains parameters for creating a new Orchestrator.
type NewOrchestratorParams struct {
	Config config.Config
	// Root is the monorepo root.
	Root   string
	FS     fs.FS
	Reader manifest.Reader
	Loader loader.Loader
	// Resolver overrides the default pkgorder resolver.
	Resolver ResolverFunc
	// Fallback is applied to the default plugin when no plugin is configured.
	Fallback plugin.Factory
	Console  *logger.Console
	Logger   logger.Logger
	Metrics  metrics.Recorder
	Tracer   trace.Tracer
	// CleanConcurrency bounds the clean pool. Zero means DefaultCleanConcurrency.
	CleanConcurrency int
}

// Orchestrator owns the plugins of a run, their shared store and the package cache.
type Orchestrator struct {
	root             string
	loader           loader.Loader
	resolver         ResolverFunc
	fallback         plugin.Factory
	console          *logger.Console
	logger           logger.Logger
	metrics          metrics.Recorder
	tracer           trace.Tracer
	cleanConcurrency int

	store    *kv.Store
	packages *manifest.Cache

	mu      sync.Mutex
	config  config.Config
	plugins []*plugin.Plugin
	loaded  bool
}

// New creates a new Orchestrator.
func New(params NewOrchestratorParams) *Orchestrator {
	o := &Orchestrator{
		root:             params.Root,
		loader:           params.Loader,
		resolver:         params.Resolver,
		fallback:         params.Fallback,
		console:          params.Console,
		logger:           params.Logger,
		metrics:          params.Metrics,
		tracer:           params.Tracer,
		cleanConcurrency: params.CleanConcurrency,
		config:           params.Config,
		store:            kv.New(),
	}

	reader := params.Reader
	if reader == nil {
		reader = manifest.NewReader(params.FS, params.Root)
	}
	o.packages = manifest.NewCache(reader)

	if o.resolver == nil {
		o.resolver = func(workspace string) pkgorder.Resolver {
			return pkgorder.NewResolver(pkgorder.NewResolverParams{
				FS:        params.FS,
				Reader:    reader,
				Root:      params.Root,
				Workspace: workspace,
			})
		}
	}
	if o.console == nil {
		o.console = logger.NewDiscardConsole()
	}
	if o.logger == nil {
		o.logger = logger.NewNoopLogger()
	}
	o.logger = logger.WithComponent(o.logger, "orchestrator")
	if o.metrics == nil {
		o.metrics = metrics.NewNoopRecorder()
	}
	if o.tracer == nil {
		o.tracer = noop.NewTracerProvider().Tracer(tracerName)
	}
	if o.cleanConcurrency <= 0 {
		o.cleanConcurrency = DefaultCleanConcurrency
	}
	return o
}

// Store returns the key/value store shared by the plugins.
func (o *Orchestrator) Store() *kv.Store {
	return o.store
}

// Packages returns the package cache shared by the plugins.
func (o *Orchestrator) Packages() *manifest.Cache {
	return o.packages
}

// Config returns the current configuration.
func (o *Orchestrator) Config() config.Config {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.config
}

// SetConfig replaces the configuration and drops the materialized plugins.
func (o *Orchestrator) SetConfig(cfg config.Config) error {
	o.mu.Lock()
	o.config = cfg
	o.mu.Unlock()
	return o.ClearPlugins()
}

// ClearPlugins drops the materialized plugins and the cached packages.
// The next call to Plugins loads them again.
func (o *Orchestrator) ClearPlugins() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.plugins = nil
	o.loaded = false
	o.packages.Reset()
	if o.loader == nil {
		return nil
	}
	return o.loader.Close()
}

// Plugins returns the configured plugins in config order, loading them on first use.
func (o *Orchestrator) Plugins(ctx context.Context) ([]*plugin.Plugin, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.loaded {
		return o.plugins, nil
	}

	plugins := make([]*plugin.Plugin, 0, len(o.config.Plugins))
	for _, entry := range o.config.Plugins {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		id := entry.ResolvedID()
		if o.loader == nil {
			return nil, fmt.Errorf("%w: %s: no loader", ErrPluginLoad, id)
		}
		factory, err := o.loader.Load(entry.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrPluginLoad, id, err)
		}

		p, err := o.newPlugin(id, factory)
		if err != nil {
			return nil, err
		}
		p.RefreshOpts(o.config.CustomOptions(id))
		plugins = append(plugins, p)
		o.logger.Logf("Loaded plugin %s", id)
	}

	if len(plugins) == 0 && o.fallback != nil {
		p, err := o.newPlugin(consts.DefaultPluginID, o.fallback)
		if err != nil {
			return nil, err
		}
		plugins = append(plugins, p)
		o.logger.Logf("No plugin configured, using the default plugin")
	}

	o.plugins = plugins
	o.loaded = true
	return plugins, nil
}

func (o *Orchestrator) newPlugin(id string, factory plugin.Factory) (*plugin.Plugin, error) {
	p, err := plugin.New(plugin.NewPluginParams{
		ID:             id,
		Store:          o.store,
		Packages:       o.packages,
		Console:        o.console,
		Logger:         o.logger,
		Metrics:        o.metrics,
		Tracer:         o.tracer,
		HandlerTimeout: o.config.HandlerTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrPluginLoad, id, err)
	}
	if err := p.Apply(factory); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrPluginLoad, id, err)
	}
	return p, nil
}

// ResolveCLIOptions collects the CLI options contributed by every plugin, per command.
// Plugins are visited last to first.
func (o *Orchestrator) ResolveCLIOptions(ctx context.Context) (map[consts.Command][]hooks.CLIOption, error) {
	plugins, err := o.Plugins(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[consts.Command][]hooks.CLIOption)
	for i := len(plugins) - 1; i >= 0; i-- {
		p := plugins[i]
		if err := p.ProcessCLIOptions(ctx); err != nil {
			return nil, err
		}
		for cmd, opts := range p.CLIOptions() {
			out[cmd] = append(out[cmd], opts...)
		}
	}
	return out, nil
}

// ApplyPlugins runs every plugin for args.Cmd and returns the failures it captured.
// The returned error is set only when the run could not start or was cancelled.
func (o *Orchestrator) ApplyPlugins(ctx context.Context, args Args, fallback CommandFallback) (*Report, error) {
	report := &Report{RunID: uuid.NewString(), Command: args.Cmd}
	log := logger.WithRun(o.logger, report.RunID)

	ctx, span := o.tracer.Start(ctx, "orchestrator.apply",
		trace.WithAttributes(
			attribute.String("siu.run_id", report.RunID),
			attribute.String("siu.command", string(args.Cmd)),
		))
	defer span.End()

	err := o.apply(ctx, log, args, fallback, report)
	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case report.Failed():
		span.SetStatus(codes.Error, fmt.Sprintf("%d failures", len(report.Failures)))
	}
	return report, err
}

func (o *Orchestrator) apply(ctx context.Context, log logger.Logger, args Args, fallback CommandFallback, report *Report) error {
	plugins, err := o.Plugins(ctx)
	if err != nil {
		return err
	}
	if len(plugins) == 0 {
		log.Logf("No plugin to apply for %s", args.Cmd)
		return nil
	}

	if fallback != nil && !anyHooks(plugins, args.Cmd) {
		log.Logf("No plugin handles %s, registering the fallback on %s", args.Cmd, plugins[0].ID())
		if err := fallback(plugins[0].API().Command(args.Cmd)); err != nil {
			return fmt.Errorf("%w: %w", ErrFallback, err)
		}
	}

	if !args.Cmd.IsPackageScoped() {
		return o.applyWorkspace(ctx, log, plugins, args, report)
	}
	return o.applyPackages(ctx, log, plugins, args, report)
}

func anyHooks(plugins []*plugin.Plugin, cmd consts.Command) bool {
	for _, p := range plugins {
		if p.HasCommandHooks(cmd) {
			return true
		}
	}
	return false
}

func (o *Orchestrator) applyWorkspace(
	ctx context.Context, log logger.Logger, plugins []*plugin.Plugin, args Args, report *Report,
) error {
	jobs := make([]cleanJob, 0, len(plugins))
	var runErr error
	for _, p := range plugins {
		if runErr = ctx.Err(); runErr != nil {
			break
		}
		if err := p.Process(ctx, args.Cmd, args.Opts, ""); err != nil {
			report.addFailure(Failure{PluginID: p.ID(), Command: args.Cmd, Err: err})
		}
		jobs = append(jobs, cleanJob{plugin: p})
	}

	if err := o.clean(ctx, log, args.Cmd, jobs, report); err != nil {
		return err
	}
	return runErr
}

type packageRun struct {
	dir     string
	plugins []*plugin.Plugin
}

func (o *Orchestrator) applyPackages(
	ctx context.Context, log logger.Logger, plugins []*plugin.Plugin, args Args, report *Report,
) error {
	cfg := o.Config()
	workspace := args.Opts.WorkspaceOrDefault(cfg.WorkspaceOrDefault())

	var (
		dirs []string
		err  error
	)
	if args.Cmd == consts.Create && args.Opts.Pkg != "" {
		dirs = o.synthesizePackages(workspace, args.Opts.Pkg)
	} else {
		dirs, err = o.resolver(workspace).Sort(cfg.PkgsOrder.Order(), args.Opts.Pkg)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrPackageOrder, err)
		}
	}

	runs := make([]packageRun, 0, len(dirs))
	for _, dir := range dirs {
		run := packageRun{dir: dir}
		for _, p := range plugins {
			if cfg.IsPkgExcluded(dir, p.ID(), args.Cmd) {
				log.Logf("Skipping %s for plugin %s", dir, p.ID())
				continue
			}
			run.plugins = append(run.plugins, p)
		}
		if len(run.plugins) > 0 {
			runs = append(runs, run)
		}
	}

	rest := args.Opts.WithoutPkg()
	var (
		jobs   []cleanJob
		runErr error
	)
	for _, run := range runs {
		if runErr = ctx.Err(); runErr != nil {
			break
		}

		name := run.dir
		if pkg, err := o.packages.Load(run.dir, workspace); err == nil {
			name = pkg.Name
		} else {
			log.Logf("Could not read package %s: %v", run.dir, err)
		}
		report.Packages = append(report.Packages, name)

		o.console.Blank()
		o.console.OpenTag(name)
		for _, p := range run.plugins {
			if err := p.Process(ctx, args.Cmd, rest, name); err != nil {
				report.addFailure(Failure{PluginID: p.ID(), Command: args.Cmd, Package: name, Err: err})
			}
			jobs = append(jobs, cleanJob{plugin: p, pkg: name})
		}
		o.console.CloseTag(name)
	}

	if err := o.clean(ctx, log, args.Cmd, jobs, report); err != nil {
		return err
	}
	return runErr
}

// synthesizePackages caches a bare manifest for every requested name and
// returns their directories in request order.
func (o *Orchestrator) synthesizePackages(workspace, list string) []string {
	names := naming.SplitList(list)
	dirs := make([]string, 0, len(names))
	for _, name := range names {
		pkg := manifest.NewPackage(o.root, workspace, name, map[string]any{"name": name})
		o.packages.Put(pkg)
		dirs = append(dirs, pkg.DirName)
	}
	return dirs
}

type cleanJob struct {
	plugin *plugin.Plugin
	pkg    string
}

func (o *Orchestrator) clean(ctx context.Context, log logger.Logger, cmd consts.Command, jobs []cleanJob, report *Report) error {
	if len(jobs) == 0 {
		return nil
	}

	pool, err := ants.NewPool(o.cleanConcurrency)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCleanPool, err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for _, job := range jobs {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			if err := job.plugin.Clean(ctx, job.pkg); err != nil {
				report.addFailure(Failure{PluginID: job.plugin.ID(), Command: cmd, Package: job.pkg, Clean: true, Err: err})
			}
		}
		if err := pool.Submit(task); err != nil {
			wg.Done()
			report.addFailure(Failure{PluginID: job.plugin.ID(), Command: cmd, Package: job.pkg, Clean: true, Err: err})
		}
	}
	wg.Wait()

	log.Logf("Cleaned %d plugin scopes", len(jobs))
	return nil
}
