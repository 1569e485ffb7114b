package hooks

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/siujs/cli/pkg/consts"
	"github.com/siujs/cli/pkg/kv"
	"github.com/siujs/cli/pkg/logger"
	"github.com/siujs/cli/pkg/manifest"
	"github.com/siujs/cli/pkg/options"
)

// Scope identifies the plugin, command, package and stage a handler runs for.
type Scope struct {
	PluginID string
	Command  consts.Command
	// Package is the manifest name of the current package, empty for workspace commands.
	Package string
	Stage   consts.Stage
}

// ContextParams contains parameters for creating a new Context.
type ContextParams struct {
	Context  context.Context
	Scope    Scope
	Options  options.Options
	Store    *kv.Store
	Packages *manifest.Cache
	Console  *logger.Console
	Logger   logger.Logger
}

// Context is what a handler sees of the run: options, key/value storage,
// the captured error, the current package and the console.
type Context struct {
	ctx      context.Context
	scope    Scope
	opts     options.Options
	store    *kv.Store
	packages *manifest.Cache
	console  *logger.Console
	logger   logger.Logger
}

// NewContext creates a new Context.
func NewContext(params ContextParams) *Context {
	c := &Context{
		ctx:      params.Context,
		scope:    params.Scope,
		opts:     params.Options.Clone(),
		store:    params.Store,
		packages: params.Packages,
		console:  params.Console,
		logger:   params.Logger,
	}
	if c.ctx == nil {
		c.ctx = context.Background()
	}
	if c.store == nil {
		c.store = kv.New()
	}
	if c.console == nil {
		c.console = logger.NewDiscardConsole()
	}
	if c.logger == nil {
		c.logger = logger.NewNoopLogger()
	}
	return c
}

// WithStage returns a copy of c running for stage.
func (c *Context) WithStage(stage consts.Stage) *Context {
	out := *c
	out.scope.Stage = stage
	return &out
}

// Context returns the context.Context of the run.
func (c *Context) Context() context.Context { return c.ctx }

// Scope returns the plugin, command, package and stage of the handler.
func (c *Context) Scope() Scope { return c.scope }

// PluginID returns the id of the plugin the handler belongs to.
func (c *Context) PluginID() string { return c.scope.PluginID }

// Command returns the running command.
func (c *Context) Command() consts.Command { return c.scope.Command }

// Package returns the manifest name of the current package, empty for workspace commands.
func (c *Context) Package() string { return c.scope.Package }

// Stage returns the running stage.
func (c *Context) Stage() consts.Stage { return c.scope.Stage }

// Opts returns the options accumulated for the running command.
func (c *Context) Opts() options.Options { return c.opts.Clone() }

// Opt returns the option stored under key or def.
func (c *Context) Opt(key string, def any) any { return c.opts.Get(key, def) }

// OptString returns the option stored under key as a string, or def.
func (c *Context) OptString(key, def string) string { return c.opts.String(key, def) }

// Keys returns the plugin wide value stored under key.
func (c *Context) Keys(key string) any {
	v, _ := c.store.Get(GlobalKey(c.scope.PluginID, key))
	return v
}

// SetKeys stores a plugin wide value. A nil value removes it.
func (c *Context) SetKeys(key string, value any) {
	c.store.Set(GlobalKey(c.scope.PluginID, key), value)
}

// ScopedKeys returns the value stored under key for the current command and package.
func (c *Context) ScopedKeys(key string) any {
	return c.ScopedKeysOf(c.scope.PluginID, key)
}

// SetScopedKeys stores a value for the current command and package. A nil value removes it.
func (c *Context) SetScopedKeys(key string, value any) {
	c.store.Set(c.scopedKey(c.scope.PluginID, key), value)
}

// ScopedKeysOf returns the value another plugin stored under key for the current command and package.
func (c *Context) ScopedKeysOf(pluginID, key string) any {
	v, _ := c.store.Get(c.scopedKey(pluginID, key))
	return v
}

// Ex returns the error captured for the current command and package.
func (c *Context) Ex() error {
	v, ok := c.store.Get(c.scopedKey(c.scope.PluginID, ExKey))
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case error:
		return t
	case string:
		return errors.New(t)
	default:
		return fmt.Errorf("%v", t)
	}
}

// SetEx captures an error or an error message. nil clears the captured error.
func (c *Context) SetEx(value any) {
	switch t := value.(type) {
	case nil:
		c.store.Delete(c.scopedKey(c.scope.PluginID, ExKey))
	case error:
		c.store.Set(c.scopedKey(c.scope.PluginID, ExKey), t)
	case string:
		if t == "" {
			c.store.Delete(c.scopedKey(c.scope.PluginID, ExKey))
			return
		}
		c.store.Set(c.scopedKey(c.scope.PluginID, ExKey), errors.New(t))
	default:
		c.store.Set(c.scopedKey(c.scope.PluginID, ExKey), fmt.Errorf("%v", t))
	}
}

// Pkg returns the descriptor of the current package, reading its manifest on first use.
func (c *Context) Pkg() (*manifest.Package, error) {
	if c.scope.Package == "" || c.packages == nil {
		return nil, ErrNoPackage
	}
	return c.packages.Load(c.scope.Package, c.opts.WorkspaceOrDefault(consts.DefaultWorkspace))
}

// PatchPkg shallow merges meta into the cached descriptor of the current package.
func (c *Context) PatchPkg(meta map[string]any) error {
	if _, err := c.Pkg(); err != nil {
		return err
	}
	_, err := c.packages.Patch(c.scope.Package, meta)
	return err
}

// Printf prints a line on the plugin console.
func (c *Context) Printf(format string, args ...any) {
	c.console.Printf(format, args...)
}

// Output returns a writer printing on the plugin console, for streaming command output.
func (c *Context) Output() io.Writer {
	return c.console
}

// Logf writes a diagnostic message.
func (c *Context) Logf(format string, args ...any) {
	c.logger.Logf(format, args...)
}

func (c *Context) scopedKey(pluginID, key string) string {
	return ScopedKey(pluginID, c.scope.Command, c.scope.Package, key)
}

// KeyAs returns the plugin wide value stored under key when it has type T.
func KeyAs[T any](c *Context, key string) (T, bool) {
	v, ok := c.Keys(key).(T)
	return v, ok
}

// ScopedAs returns the scoped value stored under key when it has type T.
func ScopedAs[T any](c *Context, key string) (T, bool) {
	v, ok := c.ScopedKeys(key).(T)
	return v, ok
}
