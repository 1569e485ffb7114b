// Package config loads the siu configuration of a workspace.
package config

import (
	"fmt"
	"time"

	"github.com/siujs/cli/pkg/consts"
	"github.com/siujs/cli/pkg/manifest"
	"github.com/siujs/cli/pkg/options"
	"github.com/siujs/cli/pkg/pkgorder"
	"github.com/siujs/cli/pkg/pluginid"
	"gopkg.in/yaml.v3"
)

// Config represents the siu configuration.
type Config struct {
	Workspace   string        `yaml:"workspace"`
	PkgsOrder   PkgsOrder     `yaml:"pkgs_order"`
	ExcludePkgs ExcludePkgs   `yaml:"exclude_pkgs"`
	Plugins     []PluginEntry `yaml:"plugins"`
	// HandlerTimeout bounds every hook handler. Zero disables it.
	HandlerTimeout time.Duration `yaml:"handler_timeout"`
	// AllowExec lets script plugins run external commands.
	AllowExec bool `yaml:"allow_exec"`
}

// PkgsOrder is "auto", "priority" or an explicit list of package directories.
type PkgsOrder struct {
	Mode string
	List []string
}

// UnmarshalYAML accepts a scalar mode or a sequence of packages.
func (p *PkgsOrder) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		p.Mode = value.Value
		p.List = nil
		return nil
	case yaml.SequenceNode:
		p.Mode = ""
		return value.Decode(&p.List)
	default:
		return fmt.Errorf("%w: line %d", ErrUnknownPkgsOrder, value.Line)
	}
}

// MarshalYAML writes the list when set, the mode otherwise.
func (p PkgsOrder) MarshalYAML() (interface{}, error) {
	if len(p.List) > 0 {
		return p.List, nil
	}
	return p.Mode, nil
}

// Order converts the setting for the package order resolver.
func (p PkgsOrder) Order() pkgorder.Order {
	if len(p.List) > 0 {
		return pkgorder.Order{List: p.List}
	}
	if p.Mode == "" {
		return pkgorder.Order{Mode: pkgorder.ModePriority}
	}
	return pkgorder.Order{Mode: p.Mode}
}

// ExcludePkgs lists packages excluded from every command, or per command.
type ExcludePkgs struct {
	All        []string
	PerCommand map[consts.Command][]string
}

// UnmarshalYAML accepts a sequence of packages or a map of command to packages.
func (e *ExcludePkgs) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		return value.Decode(&e.All)
	case yaml.MappingNode:
		var raw map[string][]string
		if err := value.Decode(&raw); err != nil {
			return err
		}
		e.PerCommand = make(map[consts.Command][]string, len(raw))
		for name, pkgs := range raw {
			cmd, err := consts.ParseCommand(name)
			if err != nil {
				return fmt.Errorf("%w: %s (line %d)", ErrUnknownCommand, name, value.Line)
			}
			e.PerCommand[cmd] = pkgs
		}
		return nil
	default:
		return fmt.Errorf("exclude_pkgs must be a list or a map of command to packages (line %d)", value.Line)
	}
}

// MarshalYAML writes the per command map when set, the list otherwise.
func (e ExcludePkgs) MarshalYAML() (interface{}, error) {
	if len(e.PerCommand) > 0 {
		out := make(map[string][]string, len(e.PerCommand))
		for cmd, pkgs := range e.PerCommand {
			out[string(cmd)] = pkgs
		}
		return out, nil
	}
	return e.All, nil
}

// Matches reports whether pkg is excluded for cmd.
// Entries and pkg are compared by directory name, so scopes are ignored.
func (e ExcludePkgs) Matches(pkg string, cmd consts.Command) bool {
	return containsPkg(e.All, pkg) || containsPkg(e.PerCommand[cmd], pkg)
}

// IsZero reports whether nothing is excluded.
func (e ExcludePkgs) IsZero() bool {
	return len(e.All) == 0 && len(e.PerCommand) == 0
}

func containsPkg(list []string, pkg string) bool {
	dir := manifest.DirName(pkg)
	for _, entry := range list {
		if entry == pkg || manifest.DirName(entry) == dir {
			return true
		}
	}
	return false
}

// PluginEntry configures one plugin.
type PluginEntry struct {
	ID          string                    `yaml:"id"`
	ExcludePkgs ExcludePkgs               `yaml:"exclude_pkgs,omitempty"`
	Custom      map[string]map[string]any `yaml:"custom,omitempty"`
}

type pluginEntryAlias PluginEntry

// UnmarshalYAML accepts "id", {id: ..., exclude_pkgs: ..., custom: ...}
// or [id, {exclude_pkgs: ..., custom: ...}].
func (p *PluginEntry) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		p.ID = value.Value
		return nil
	case yaml.MappingNode:
		var alias pluginEntryAlias
		if err := value.Decode(&alias); err != nil {
			return err
		}
		*p = PluginEntry(alias)
		return nil
	case yaml.SequenceNode:
		if len(value.Content) == 0 || len(value.Content) > 2 {
			return fmt.Errorf("plugin entry must be [id] or [id, options] (line %d)", value.Line)
		}
		var alias pluginEntryAlias
		if len(value.Content) == 2 {
			if err := value.Content[1].Decode(&alias); err != nil {
				return err
			}
		}
		alias.ID = value.Content[0].Value
		*p = PluginEntry(alias)
		return nil
	default:
		return fmt.Errorf("invalid plugin entry (line %d)", value.Line)
	}
}

// ResolvedID returns the full id of the plugin.
func (p PluginEntry) ResolvedID() string {
	return pluginid.Resolve(p.ID)
}

// WorkspaceOrDefault returns the configured workspace or the default one.
func (c Config) WorkspaceOrDefault() string {
	if c.Workspace == "" {
		return consts.DefaultWorkspace
	}
	return c.Workspace
}

// PluginIDs returns the resolved ids of the configured plugins in order.
func (c Config) PluginIDs() []string {
	ids := make([]string, 0, len(c.Plugins))
	for _, entry := range c.Plugins {
		ids = append(ids, entry.ResolvedID())
	}
	return ids
}

// IsPkgExcluded reports whether pkg must be skipped by the plugin for cmd.
// Global exclusions are checked first, then the plugin's own.
// Nothing is excluded when no plugin is configured.
func (c Config) IsPkgExcluded(pkg, pluginID string, cmd consts.Command) bool {
	if len(c.Plugins) == 0 {
		return false
	}
	if c.ExcludePkgs.Matches(pkg, cmd) {
		return true
	}
	for _, entry := range c.Plugins {
		if pluginid.Equal(entry.ID, pluginID) && entry.ExcludePkgs.Matches(pkg, cmd) {
			return true
		}
	}
	return false
}

// CustomOptions returns the per command options configured for the plugin.
func (c Config) CustomOptions(pluginID string) map[consts.Command]options.Options {
	out := make(map[consts.Command]options.Options)
	for _, entry := range c.Plugins {
		if !pluginid.Equal(entry.ID, pluginID) {
			continue
		}
		for name, values := range entry.Custom {
			cmd, err := consts.ParseCommand(name)
			if err != nil {
				continue
			}
			out[cmd] = out[cmd].Merge(options.FromMap(values))
		}
	}
	return out
}

// Validate validates the configuration values.
func (c Config) Validate() error {
	if c.Workspace == "" {
		return ErrWorkspaceEmpty
	}
	if len(c.PkgsOrder.List) == 0 {
		switch c.PkgsOrder.Mode {
		case "", pkgorder.ModeAuto, pkgorder.ModePriority:
		default:
			return fmt.Errorf("%w: %q", ErrUnknownPkgsOrder, c.PkgsOrder.Mode)
		}
	}
	if c.HandlerTimeout < 0 {
		return ErrNegativeHandlerTimeout
	}
	for i, entry := range c.Plugins {
		if entry.ID == "" {
			return fmt.Errorf("%w: plugins[%d]", ErrPluginIDEmpty, i)
		}
		for name := range entry.Custom {
			if _, err := consts.ParseCommand(name); err != nil {
				return fmt.Errorf("%w: plugins[%d].custom.%s", ErrUnknownCommand, i, name)
			}
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Workspace == "" {
		c.Workspace = consts.DefaultWorkspace
	}
	if c.PkgsOrder.Mode == "" && len(c.PkgsOrder.List) == 0 {
		c.PkgsOrder.Mode = pkgorder.ModePriority
	}
}
