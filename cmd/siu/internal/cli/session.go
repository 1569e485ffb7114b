package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/siujs/cli/internal/naming"
	"github.com/siujs/cli/pkg/builtins"
	"github.com/siujs/cli/pkg/config"
	"github.com/siujs/cli/pkg/consts"
	"github.com/siujs/cli/pkg/dependencies"
	"github.com/siujs/cli/pkg/hooks"
	"github.com/siujs/cli/pkg/logger"
	"github.com/siujs/cli/pkg/manifest"
	"github.com/siujs/cli/pkg/metrics"
	"github.com/siujs/cli/pkg/options"
	"github.com/siujs/cli/pkg/orchestrator"
	"github.com/spf13/cobra"
)

// Session holds everything a siu invocation needs once the configuration is known.
type Session struct {
	Globals      Globals
	Root         string
	Config       config.Config
	Manager      config.Manager
	Deps         *dependencies.Dependencies
	Orchestrator *orchestrator.Orchestrator
	// Interactive enables prompts for plugin options left empty.
	Interactive bool

	builtins    *builtins.Builtins
	registry    *prometheus.Registry
	pluginFlags map[consts.Command][]pluginFlag
}

// NewSession looks the configuration up from cwd and builds the engine.
// When a configuration is found, the process moves to its directory.
func NewSession(g Globals, cwd string) (*Session, error) {
	path, err := config.Lookup(cwd, config.DefaultLookupDepth)
	switch {
	case err == nil:
	case errors.Is(err, config.ErrConfigNotFound) && g.NoStrict:
		path = ""
	case errors.Is(err, config.ErrConfigNotFound):
		return nil, fmt.Errorf("%w in %s or its parents, use --no-strict to run anyway", ErrNoConfig, cwd)
	default:
		return nil, err
	}

	root := cwd
	if path != "" {
		root = config.Root(path)
		if err := os.Chdir(root); err != nil {
			return nil, err
		}
	}

	manager := config.NewManager(path)
	cfg, err := manager.GetConfigWithFallback()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadConfig, err)
	}
	if g.Workspace != "" {
		cfg.Workspace = g.Workspace
	}

	deps := dependencies.New().
		WithConfig(manager).
		WithRoot(root)
	if g.Debug {
		deps.WithLogger(logger.NewSlogLogger("DEBUG", os.Stderr))
	}

	s := &Session{
		Globals:     g,
		Root:        root,
		Config:      cfg,
		Manager:     manager,
		Deps:        deps,
		Interactive: isatty.IsTerminal(os.Stdin.Fd()),
		pluginFlags: make(map[consts.Command][]pluginFlag),
	}

	if g.MetricsFile != "" {
		s.registry = prometheus.NewRegistry()
		recorder, err := metrics.NewPrometheusRecorder(s.registry)
		if err != nil {
			return nil, err
		}
		deps.WithMetrics(recorder)
	}

	if err := deps.Validate(); err != nil {
		return nil, err
	}
	s.builtins = deps.Builtins()
	s.Orchestrator = deps.Orchestrator(cfg)
	return s, nil
}

// Workspace returns the workspace directory packages live in.
func (s *Session) Workspace() string {
	return s.Config.WorkspaceOrDefault()
}

// CheckWorkspace fails when the workspace directory does not exist.
func (s *Session) CheckWorkspace() error {
	exists, err := s.Deps.FS.Exists(filepath.Join(s.Root, s.Workspace()))
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrWorkspaceMissing, filepath.Join(s.Root, s.Workspace()))
	}
	return nil
}

// CheckNewPackages fails when one of the comma separated names is not a
// valid package name or already exists.
func (s *Session) CheckNewPackages(pkgs string) error {
	names := naming.SplitList(pkgs)
	for _, name := range names {
		if err := manifest.ValidateName(name); err != nil {
			return err
		}
	}

	missing, err := manifest.FilterMissing(s.Deps.FS, s.Root, s.Workspace(), names)
	if err != nil {
		return err
	}
	if len(missing) == len(names) {
		return nil
	}

	existing := make([]string, 0, len(names)-len(missing))
	for _, name := range names {
		if !contains(missing, name) {
			existing = append(existing, name)
		}
	}
	return fmt.Errorf("%w: %v", ErrPackageExists, existing)
}

// CheckPackages fails when one of the comma separated names does not exist.
func (s *Session) CheckPackages(pkgs string) error {
	missing, err := manifest.FilterMissing(s.Deps.FS, s.Root, s.Workspace(), naming.SplitList(pkgs))
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %v", ErrPackageMissing, missing)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// AttachPluginFlags adds the options contributed by plugins to the matching
// subcommands of root. Options clashing with an existing flag are skipped.
func (s *Session) AttachPluginFlags(ctx context.Context, root *cobra.Command) error {
	contributed, err := s.Orchestrator.ResolveCLIOptions(ctx)
	if err != nil {
		return err
	}

	for _, sub := range root.Commands() {
		cmd, err := consts.ParseCommand(sub.Name())
		if err != nil {
			continue
		}
		for _, option := range contributed[cmd] {
			flag, added, err := addPluginFlag(sub, option)
			if err != nil {
				return fmt.Errorf("%s: %w", option.PluginID, err)
			}
			if !added {
				s.Deps.Logger.Logf("Skipping option %q of %s, the flag already exists", option.Flags, option.PluginID)
				continue
			}
			s.pluginFlags[cmd] = append(s.pluginFlags[cmd], flag)
		}
	}
	return nil
}

// PluginOptions adds the plugin flag values of cmd to opts, prompting for
// the empty ones when the session is interactive.
func (s *Session) PluginOptions(cmd *cobra.Command, command consts.Command, opts *options.Options) error {
	var ask Asker
	if s.Interactive {
		ask = func(prompt hooks.Prompt) (any, error) {
			return s.Deps.Prompt.Ask(prompt)
		}
	}
	return collectPluginFlags(cmd, s.pluginFlags[command], opts, ask)
}

// Run applies the plugins for command and returns an error when any of them failed.
func (s *Session) Run(ctx context.Context, command consts.Command, opts options.Options) error {
	report, err := s.Orchestrator.ApplyPlugins(ctx, orchestrator.Args{Cmd: command, Opts: opts},
		orchestrator.CommandFallback(s.builtins.Fallback(command)))
	if flushErr := s.flushMetrics(); flushErr != nil {
		s.Deps.Logger.Logf("%v", flushErr)
	}
	if err != nil {
		return err
	}
	return report.Err()
}

// Watch runs command, then runs it again every time the configuration changes,
// until ctx is done. Failed runs are reported and do not stop the watch.
func (s *Session) Watch(ctx context.Context, command consts.Command, opts options.Options) error {
	if s.Manager.GetConfigPath() == "" {
		return ErrWatchWithoutConfig
	}

	watcher := config.NewWatcher(config.WatcherParams{
		Manager: s.Manager,
		Logger:  s.Deps.Logger,
	})
	if err := watcher.Prime(); err != nil {
		return err
	}

	if err := s.Run(ctx, command, opts); err != nil {
		s.Deps.Console.ErrorBlock(err)
	}

	err := watcher.Watch(ctx, func(cfg config.Config) error {
		if s.Globals.Workspace != "" {
			cfg.Workspace = s.Globals.Workspace
		}
		if err := s.Orchestrator.SetConfig(cfg); err != nil {
			return err
		}
		s.Config = cfg
		s.Deps.Console.Printf("Configuration changed, running %s again", command)
		if err := s.Run(ctx, command, opts); err != nil {
			s.Deps.Console.ErrorBlock(err)
		}
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *Session) flushMetrics() error {
	if s.registry == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(s.Globals.MetricsFile, s.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToWriteMetric, err)
	}
	return nil
}
