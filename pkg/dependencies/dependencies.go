// Package dependencies provides a centralized dependency container for the siu CLI.
// Related dependencies are grouped together and configured through a fluent API.
package dependencies

import (
	"errors"
	"os"

	"github.com/siujs/cli/pkg/builtins"
	"github.com/siujs/cli/pkg/config"
	"github.com/siujs/cli/pkg/consts"
	"github.com/siujs/cli/pkg/fs"
	"github.com/siujs/cli/pkg/git"
	"github.com/siujs/cli/pkg/loader"
	"github.com/siujs/cli/pkg/logger"
	"github.com/siujs/cli/pkg/manifest"
	"github.com/siujs/cli/pkg/metrics"
	"github.com/siujs/cli/pkg/orchestrator"
	"github.com/siujs/cli/pkg/plugin"
	"github.com/siujs/cli/pkg/prompt"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Validation errors for missing dependencies.
var (
	ErrFSMissing      = errors.New("fs dependency is required but not set")
	ErrGitMissing     = errors.New("git dependency is required but not set")
	ErrConfigMissing  = errors.New("config dependency is required but not set")
	ErrRootMissing    = errors.New("root dependency is required but not set")
	ErrLoggerMissing  = errors.New("logger dependency is required but not set")
	ErrConsoleMissing = errors.New("console dependency is required but not set")
	ErrPromptMissing  = errors.New("prompt dependency is required but not set")
	ErrMetricsMissing = errors.New("metrics dependency is required but not set")
)

// Dependencies holds shared dependencies across the application.
type Dependencies struct {
	FS      fs.FS
	Git     git.Git
	Config  config.Manager
	Logger  logger.Logger
	Console *logger.Console
	Prompt  prompt.Prompter
	Metrics metrics.Recorder
	Tracer  trace.Tracer
	// Root is the monorepo root every relative path is resolved from.
	Root string
	// Getenv reads the git hook environment of the builtins.
	Getenv func(key string) string
}

// New creates a new Dependencies instance with sensible defaults.
func New() *Dependencies {
	return &Dependencies{
		FS:      fs.NewFS(),
		Git:     git.NewGit(),
		Logger:  logger.NewNoopLogger(),
		Console: logger.NewConsole(os.Stdout),
		Prompt:  prompt.NewPrompt(),
		Metrics: metrics.NewNoopRecorder(),
		Tracer:  noop.NewTracerProvider().Tracer("github.com/siujs/cli"),
		// Config and Root depend on the working directory and are set via With* methods
	}
}

// WithFS sets the filesystem and returns the instance for chaining.
func (d *Dependencies) WithFS(fs fs.FS) *Dependencies {
	d.FS = fs
	return d
}

// WithGit sets the git instance and returns the instance for chaining.
func (d *Dependencies) WithGit(git git.Git) *Dependencies {
	d.Git = git
	return d
}

// WithConfig sets the config manager and returns the instance for chaining.
func (d *Dependencies) WithConfig(cfg config.Manager) *Dependencies {
	d.Config = cfg
	return d
}

// WithRoot sets the monorepo root and returns the instance for chaining.
func (d *Dependencies) WithRoot(root string) *Dependencies {
	d.Root = root
	return d
}

// WithLogger sets the logger and returns the instance for chaining.
func (d *Dependencies) WithLogger(logger logger.Logger) *Dependencies {
	d.Logger = logger
	return d
}

// WithConsole sets the plugin console and returns the instance for chaining.
func (d *Dependencies) WithConsole(console *logger.Console) *Dependencies {
	d.Console = console
	return d
}

// WithPrompt sets the prompt and returns the instance for chaining.
func (d *Dependencies) WithPrompt(prompt prompt.Prompter) *Dependencies {
	d.Prompt = prompt
	return d
}

// WithMetrics sets the metrics recorder and returns the instance for chaining.
func (d *Dependencies) WithMetrics(recorder metrics.Recorder) *Dependencies {
	d.Metrics = recorder
	return d
}

// WithTracer sets the tracer and returns the instance for chaining.
func (d *Dependencies) WithTracer(tracer trace.Tracer) *Dependencies {
	d.Tracer = tracer
	return d
}

// WithGetenv sets the environment lookup and returns the instance for chaining.
func (d *Dependencies) WithGetenv(getenv func(key string) string) *Dependencies {
	d.Getenv = getenv
	return d
}

// dependencyCheck represents a dependency validation check.
type dependencyCheck struct {
	missing bool
	err     error
}

// Validate checks that all required dependencies are set and returns an error if any are missing.
func (d *Dependencies) Validate() error {
	checks := []dependencyCheck{
		{d.FS == nil, ErrFSMissing},
		{d.Git == nil, ErrGitMissing},
		{d.Config == nil, ErrConfigMissing},
		{d.Root == "", ErrRootMissing},
		{d.Logger == nil, ErrLoggerMissing},
		{d.Console == nil, ErrConsoleMissing},
		{d.Prompt == nil, ErrPromptMissing},
		{d.Metrics == nil, ErrMetricsMissing},
	}

	for _, check := range checks {
		if check.missing {
			return check.err
		}
	}
	return nil
}

// Builtins creates the builtin plugin and fallbacks bound to these dependencies.
func (d *Dependencies) Builtins() *builtins.Builtins {
	return builtins.New(builtins.NewBuiltinsParams{
		FS:     d.FS,
		Git:    d.Git,
		Root:   d.Root,
		Logger: d.Logger,
		Getenv: d.Getenv,
	})
}

// Orchestrator creates an orchestrator running cfg with these dependencies.
// The builtin plugin is both the fallback plugin and the target of the default id.
func (d *Dependencies) Orchestrator(cfg config.Config) *orchestrator.Orchestrator {
	b := d.Builtins()
	reader := manifest.NewReader(d.FS, d.Root)

	return orchestrator.New(orchestrator.NewOrchestratorParams{
		Config: cfg,
		Root:   d.Root,
		FS:     d.FS,
		Reader: reader,
		Loader: loader.NewLoader(loader.NewLoaderParams{
			FS:        d.FS,
			Root:      d.Root,
			Builtins:  map[string]plugin.Factory{consts.DefaultPluginID: b.Plugin},
			AllowExec: cfg.AllowExec,
			Logger:    d.Logger,
		}),
		Fallback: b.Plugin,
		Console:  d.Console,
		Logger:   d.Logger,
		Metrics:  d.Metrics,
		Tracer:   d.Tracer,
	})
}
