// Package options provides the typed option bag handed to plugins for a command.
package options

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/siujs/cli/internal/naming"
)

// Option keys understood by the runner. Any other key lands in Custom.
const (
	KeyPkg           = "pkg"
	KeyWorkspace     = "workspace"
	KeyDeps          = "deps"
	KeyAction        = "action"
	KeyFormat        = "format"
	KeyHook          = "hook"
	KeyCommitEditMsg = "commitEditMsg"
	KeyDryRun        = "dryRun"
	KeyVer           = "ver"
	KeyRepo          = "repo"
	KeySkip          = "skip"
)

// Options holds the options of one command.
type Options struct {
	// Pkg is the comma separated package filter.
	Pkg       string
	Workspace string
	// Deps lists sibling packages for create and the dependency spec for deps.
	Deps   string
	Action string
	Format string
	// Hook is the camelized git hook name for glint.
	Hook          string
	CommitEditMsg string
	DryRun        bool
	Ver           string
	Repo          string
	Skip          string
	Custom        map[string]any

	// explicit holds the known keys set through Set, so that a zero value
	// given on purpose still overrides on Merge.
	explicit map[string]bool
}

// FromMap builds Options from loosely typed values such as config entries or CLI flags.
func FromMap(values map[string]any) Options {
	var o Options
	for k, v := range values {
		o.Set(k, v)
	}
	return o
}

// Merge returns a copy of o overridden by the fields of other that are
// non-zero or were set explicitly. Custom entries are merged key by key.
func (o Options) Merge(other Options) Options {
	out := o.Clone()
	for _, key := range stringKeys {
		src := *other.stringField(key)
		if src != "" || other.explicit[key] {
			*out.stringField(key) = src
			out.markExplicit(key, other.explicit[key])
		}
	}
	if other.DryRun || other.explicit[KeyDryRun] {
		out.DryRun = other.DryRun
		out.markExplicit(KeyDryRun, other.explicit[KeyDryRun])
	}
	for k, v := range other.Custom {
		if out.Custom == nil {
			out.Custom = make(map[string]any, len(other.Custom))
		}
		out.Custom[k] = v
	}
	return out
}

// WithoutPkg returns a copy of o without the package filter.
func (o Options) WithoutPkg() Options {
	out := o.Clone()
	out.Pkg = ""
	delete(out.explicit, KeyPkg)
	return out
}

// Clone returns a copy of o that shares nothing mutable with it.
func (o Options) Clone() Options {
	out := o
	if o.explicit != nil {
		out.explicit = make(map[string]bool, len(o.explicit))
		for k, v := range o.explicit {
			out.explicit[k] = v
		}
	}
	if o.Custom != nil {
		out.Custom = make(map[string]any, len(o.Custom))
		for k, v := range o.Custom {
			out.Custom[k] = v
		}
	}
	return out
}

// WorkspaceOrDefault returns the configured workspace or def when unset.
func (o Options) WorkspaceOrDefault(def string) string {
	if o.Workspace == "" {
		return def
	}
	return o.Workspace
}

// Lookup returns the value stored under key. Known keys report false when zero.
// Keys may be given in camel, snake or kebab case.
func (o Options) Lookup(key string) (any, bool) {
	key = normalizeKey(key)
	if field := o.stringField(key); field != nil {
		return *field, *field != ""
	}
	if key == KeyDryRun {
		return o.DryRun, o.DryRun
	}
	v, ok := o.Custom[key]
	return v, ok
}

// Get returns the value stored under key or def.
func (o Options) Get(key string, def any) any {
	if v, ok := o.Lookup(key); ok {
		return v
	}
	return def
}

// String returns the value stored under key formatted as a string, or def.
func (o Options) String(key, def string) string {
	v, ok := o.Lookup(key)
	if !ok || v == nil {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Set stores value under key.
func (o *Options) Set(key string, value any) {
	key = normalizeKey(key)
	if field := o.stringField(key); field != nil {
		*field = toString(value)
		o.markExplicit(key, true)
		return
	}
	if key == KeyDryRun {
		o.DryRun = toBool(value)
		o.markExplicit(KeyDryRun, true)
		return
	}
	if o.Custom == nil {
		o.Custom = make(map[string]any)
	}
	o.Custom[key] = value
}

// Map flattens o into a map holding its non-zero values.
func (o Options) Map() map[string]any {
	out := make(map[string]any, len(o.Custom)+4)
	for k, v := range o.Custom {
		out[k] = v
	}
	for _, key := range stringKeys {
		if v := *o.stringField(key); v != "" {
			out[key] = v
		}
	}
	if o.DryRun {
		out[KeyDryRun] = true
	}
	return out
}

var stringKeys = []string{
	KeyPkg, KeyWorkspace, KeyDeps, KeyAction, KeyFormat, KeyHook,
	KeyCommitEditMsg, KeyVer, KeyRepo, KeySkip,
}

func (o *Options) markExplicit(key string, explicit bool) {
	if !explicit {
		return
	}
	if o.explicit == nil {
		o.explicit = make(map[string]bool)
	}
	o.explicit[key] = true
}

func (o *Options) stringField(key string) *string {
	switch key {
	case KeyPkg:
		return &o.Pkg
	case KeyWorkspace:
		return &o.Workspace
	case KeyDeps:
		return &o.Deps
	case KeyAction:
		return &o.Action
	case KeyFormat:
		return &o.Format
	case KeyHook:
		return &o.Hook
	case KeyCommitEditMsg:
		return &o.CommitEditMsg
	case KeyVer:
		return &o.Ver
	case KeyRepo:
		return &o.Repo
	case KeySkip:
		return &o.Skip
	}
	return nil
}

func normalizeKey(key string) string {
	return naming.SnakeToCamel(key)
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []string:
		return strings.Join(t, ",")
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}

func toBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(t)
		return err == nil && b
	default:
		return false
	}
}
