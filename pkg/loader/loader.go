// Package loader resolves configured plugin ids to plugin factories:
// builtins, Lua scripts, Go scripts and scripts shipped in node_modules.
package loader

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/siujs/cli/pkg/fs"
	"github.com/siujs/cli/pkg/logger"
	"github.com/siujs/cli/pkg/plugin"
	"github.com/siujs/cli/pkg/pluginid"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=loader.go -destination=mocks/loader.gen.go -package=mocks

// Entry script names looked up in a plugin directory.
const (
	LuaEntry = "siu.lua"
	GoEntry  = "siu.go"
)

// Loader turns a plugin id into a plugin factory.
type Loader interface {
	// Load resolves id. Script plugins are evaluated when the factory is applied.
	Load(id string) (plugin.Factory, error)
	// Close releases the interpreters created by applied factories.
	Close() error
}

// NewLoaderParams contains parameters for creating a new Loader.
type NewLoaderParams struct {
	FS fs.FS
	// Root is the workspace root, relative script paths are resolved from it.
	Root     string
	Builtins map[string]plugin.Factory
	// AllowExec lets scripts run external commands.
	AllowExec bool
	Logger    logger.Logger
}

type realLoader struct {
	fs        fs.FS
	root      string
	builtins  map[string]plugin.Factory
	allowExec bool
	logger    logger.Logger

	mu      sync.Mutex
	closers []func()
}

// NewLoader creates a new Loader.
func NewLoader(params NewLoaderParams) Loader {
	l := &realLoader{
		fs:        params.FS,
		root:      params.Root,
		builtins:  params.Builtins,
		allowExec: params.AllowExec,
		logger:    params.Logger,
	}
	if l.logger == nil {
		l.logger = logger.NewNoopLogger()
	}
	l.logger = logger.WithComponent(l.logger, "loader")
	return l
}

func (l *realLoader) Load(id string) (plugin.Factory, error) {
	resolved := pluginid.Resolve(id)
	if factory, ok := l.builtins[id]; ok {
		return factory, nil
	}
	if factory, ok := l.builtins[resolved]; ok {
		return factory, nil
	}

	var candidates []string
	if pluginid.IsPath(id) {
		path := id
		if !filepath.IsAbs(path) {
			path = filepath.Join(l.root, path)
		}
		switch filepath.Ext(path) {
		case ".lua", ".go":
			candidates = append(candidates, path)
		default:
			candidates = append(candidates, filepath.Join(path, LuaEntry), filepath.Join(path, GoEntry))
		}
	} else {
		dir := filepath.Join(l.root, "node_modules", filepath.FromSlash(resolved))
		candidates = append(candidates, filepath.Join(dir, LuaEntry), filepath.Join(dir, GoEntry))
	}

	for _, path := range candidates {
		exists, err := l.fs.Exists(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrScriptLoad, path, err)
		}
		if !exists {
			continue
		}

		l.logger.Logf("Resolved plugin %s to %s", id, path)
		if filepath.Ext(path) == ".lua" {
			return l.luaFactory(resolved, path), nil
		}
		return l.goFactory(path), nil
	}

	return nil, fmt.Errorf("%w: %s (looked for %v)", ErrPluginNotFound, id, candidates)
}

func (l *realLoader) Close() error {
	l.mu.Lock()
	closers := l.closers
	l.closers = nil
	l.mu.Unlock()

	for _, closer := range closers {
		closer()
	}
	return nil
}

func (l *realLoader) track(closer func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closers = append(l.closers, closer)
}
