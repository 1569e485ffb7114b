package loader

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/siujs/cli/pkg/consts"
	"github.com/siujs/cli/pkg/hooks"
	"github.com/siujs/cli/pkg/plugin"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// Functions a Go script plugin defines in package main.
const (
	goHooksFuncName  = "Hooks"
	goHandleFuncName = "Handle"
)

// goScript is a plugin written in Go and interpreted by yaegi. It defines
//
//	func Hooks() []string
//	func Handle(hook string, ctx map[string]any) (map[string]any, error)
//
// Hooks lists "command.stage" keys. The map returned by Handle may carry
// "keys" and "scoped_keys" maps to store, a "pkg" map to patch the current
// package, an "ex" error message and a "print" value.
type goScript struct {
	mu     sync.Mutex
	path   string
	handle reflect.Value
}

func (l *realLoader) goFactory(path string) plugin.Factory {
	return func(api *hooks.API) error {
		s := &goScript{path: path}
		return s.apply(api)
	}
}

func (s *goScript) apply(api *hooks.API) error {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrScriptLoad, s.path, err)
	}
	if _, err := i.EvalPath(s.path); err != nil {
		return fmt.Errorf("%w: interpret %s: %w", ErrScriptLoad, s.path, err)
	}

	hooksFn, err := i.Eval(goHooksFuncName)
	if err != nil {
		return fmt.Errorf("%w: %s must define Hooks() []string: %w", ErrScriptLoad, s.path, err)
	}
	handle, err := i.Eval(goHandleFuncName)
	if err != nil {
		return fmt.Errorf("%w: %s must define Handle(string, map[string]any) (map[string]any, error): %w", ErrScriptLoad, s.path, err)
	}
	if handle.Kind() != reflect.Func {
		return fmt.Errorf("%w: %s: Handle is not a function", ErrScriptLoad, s.path)
	}
	s.handle = handle

	keys, err := invokeHooksFunc(hooksFn)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrScriptLoad, s.path, err)
	}

	for _, key := range keys {
		cmd, stage, err := parseHookKey(key)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrScriptLoad, s.path, err)
		}
		if err := api.Command(cmd).On(stage, s.handler(key)); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrScriptLoad, s.path, err)
		}
	}
	return nil
}

func invokeHooksFunc(value reflect.Value) ([]string, error) {
	if !value.IsValid() || value.Kind() != reflect.Func {
		return nil, fmt.Errorf("Hooks is not a function")
	}
	results := value.Call(nil)
	if len(results) != 1 {
		return nil, fmt.Errorf("Hooks must return []string")
	}
	if keys, ok := results[0].Interface().([]string); ok {
		return keys, nil
	}
	return nil, fmt.Errorf("Hooks must return []string")
}

func parseHookKey(key string) (consts.Command, consts.Stage, error) {
	name, stageName, ok := strings.Cut(key, ".")
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidHookKey, key)
	}
	cmd, err := consts.ParseCommand(name)
	if err != nil {
		return "", "", fmt.Errorf("%w: %q: %w", ErrInvalidHookKey, key, err)
	}
	stage := consts.Stage(stageName)
	if stage == consts.StageCLI {
		return "", "", fmt.Errorf("%w: %q: cli hooks are not supported in Go scripts", ErrInvalidHookKey, key)
	}
	return cmd, stage, nil
}

func (s *goScript) handler(key string) hooks.Handler {
	return func(c *hooks.Context) error {
		in := map[string]any{
			"plugin":  c.PluginID(),
			"command": string(c.Command()),
			"package": c.Package(),
			"stage":   string(c.Stage()),
			"opts":    c.Opts().Map(),
		}
		if err := c.Ex(); err != nil {
			in["ex"] = err.Error()
		}
		if pkg, err := c.Pkg(); err == nil {
			in["pkg"] = pkg.Meta
			in["pkg_path"] = pkg.Path
		}

		out, err := s.call(key, in)
		if err != nil {
			return fmt.Errorf("%w: %s %s: %w", ErrScriptCall, s.path, key, err)
		}
		return applyGoResult(c, out)
	}
}

func (s *goScript) call(key string, in map[string]any) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := s.handle.Call([]reflect.Value{reflect.ValueOf(key), reflect.ValueOf(in)})
	if len(results) != 2 {
		return nil, fmt.Errorf("Handle must return (map[string]any, error)")
	}
	if !results[1].IsNil() {
		if err, ok := results[1].Interface().(error); ok {
			return nil, err
		}
		return nil, fmt.Errorf("Handle returned a non-error second value")
	}
	if results[0].IsNil() {
		return nil, nil
	}
	out, ok := results[0].Interface().(map[string]any)
	if !ok {
		return nil, fmt.Errorf("Handle must return map[string]any")
	}
	return out, nil
}

func applyGoResult(c *hooks.Context, out map[string]any) error {
	if keys, ok := out["keys"].(map[string]any); ok {
		for k, v := range keys {
			c.SetKeys(k, v)
		}
	}
	if keys, ok := out["scoped_keys"].(map[string]any); ok {
		for k, v := range keys {
			c.SetScopedKeys(k, v)
		}
	}
	if meta, ok := out["pkg"].(map[string]any); ok {
		if err := c.PatchPkg(meta); err != nil {
			return err
		}
	}
	if msg, ok := out["print"]; ok && msg != nil {
		c.Printf("%v", msg)
	}
	if ex, ok := out["ex"].(string); ok && ex != "" {
		c.SetEx(ex)
	}
	return nil
}
