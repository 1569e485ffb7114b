package loader

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/siujs/cli/pkg/consts"
	"github.com/siujs/cli/pkg/fs"
	"github.com/siujs/cli/pkg/hooks"
	"github.com/siujs/cli/pkg/plugin"
	lua "github.com/yuin/gopher-lua"
)

// luaScript is a plugin written in Lua. An LState is not goroutine safe,
// so every call into the script holds mu.
type luaScript struct {
	mu        sync.Mutex
	L         *lua.LState
	id        string
	path      string
	fs        fs.FS
	root      string
	allowExec bool
}

func (l *realLoader) luaFactory(id, path string) plugin.Factory {
	return func(api *hooks.API) error {
		s := &luaScript{
			L:         newLuaState(),
			id:        id,
			path:      path,
			fs:        l.fs,
			root:      l.root,
			allowExec: l.allowExec,
		}
		l.track(s.close)
		return s.apply(api)
	}
}

// newLuaState opens the base, table, string and math libraries only.
func newLuaState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

func (s *luaScript) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.L.Close()
}

// apply exposes siu.<command>.<stage>(fn) and runs the script.
func (s *luaScript) apply(api *hooks.API) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	L := s.L
	siu := L.NewTable()
	for _, cmd := range consts.Commands {
		t := L.NewTable()
		capi := api.Command(cmd)
		for _, stage := range consts.Stages {
			L.SetField(t, string(stage), L.NewFunction(s.register(capi, stage)))
		}
		L.SetField(siu, string(cmd), t)
	}
	L.SetGlobal("siu", siu)

	if err := L.DoFile(s.path); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrScriptLoad, s.path, err)
	}
	return nil
}

func (s *luaScript) register(capi *hooks.CommandAPI, stage consts.Stage) lua.LGFunction {
	return func(L *lua.LState) int {
		fn := L.CheckFunction(1)

		var err error
		if stage == consts.StageCLI {
			err = capi.CLI(s.cliHandler(fn))
		} else {
			err = capi.On(stage, s.handler(fn))
		}
		if err != nil {
			L.RaiseError("%s", err.Error())
		}
		return 0
	}
}

func (s *luaScript) handler(fn *lua.LFunction) hooks.Handler {
	return func(c *hooks.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()

		L := s.L
		L.SetContext(c.Context())
		defer L.RemoveContext()

		if err := L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, s.contextTable(c)); err != nil {
			return fmt.Errorf("%w: %s %s: %w", ErrScriptCall, s.id, consts.HookID(c.Command(), c.Stage()), err)
		}
		return nil
	}
}

func (s *luaScript) cliHandler(fn *lua.LFunction) hooks.CLIHandler {
	return func(option hooks.OptionFunc) error {
		s.mu.Lock()
		defer s.mu.Unlock()

		L := s.L
		optionFn := L.NewFunction(func(L *lua.LState) int {
			setter := option(L.CheckString(1), L.OptString(2, ""), toGo(L.Get(3)))
			L.Push(L.NewFunction(func(L *lua.LState) int {
				setter(promptFromLua(toGo(L.CheckTable(1))))
				return 0
			}))
			return 1
		})

		if err := L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, optionFn); err != nil {
			return fmt.Errorf("%w: %s cli: %w", ErrScriptCall, s.id, err)
		}
		return nil
	}
}

func promptFromLua(v any) hooks.Prompt {
	m, _ := toStringMap(v)
	prompt := hooks.Prompt{
		Name:    fmt.Sprint(valueOr(m["name"], "")),
		Kind:    hooks.PromptKind(fmt.Sprint(valueOr(m["kind"], valueOr(m["type"], string(hooks.PromptInput))))),
		Message: fmt.Sprint(valueOr(m["message"], "")),
		Choices: toStrings(m["choices"]),
		Default: m["default"],
	}
	return prompt
}

func valueOr(v, def any) any {
	if v == nil {
		return def
	}
	return v
}

// contextTable exposes a hooks.Context to a Lua handler.
func (s *luaScript) contextTable(c *hooks.Context) *lua.LTable {
	L := s.L
	t := L.NewTable()
	L.SetField(t, "plugin", lua.LString(c.PluginID()))
	L.SetField(t, "command", lua.LString(c.Command()))
	L.SetField(t, "package", lua.LString(c.Package()))
	L.SetField(t, "stage", lua.LString(c.Stage()))

	L.SetField(t, "opts", L.NewFunction(func(L *lua.LState) int {
		key := L.OptString(1, "")
		if key == "" {
			L.Push(toLua(L, c.Opts().Map()))
			return 1
		}
		L.Push(toLua(L, c.Opt(key, toGo(L.Get(2)))))
		return 1
	}))

	L.SetField(t, "keys", L.NewFunction(func(L *lua.LState) int {
		key := L.CheckString(1)
		if L.GetTop() >= 2 {
			c.SetKeys(key, toGo(L.Get(2)))
			return 0
		}
		L.Push(toLua(L, c.Keys(key)))
		return 1
	}))

	L.SetField(t, "scoped_keys", L.NewFunction(func(L *lua.LState) int {
		key := L.CheckString(1)
		if L.GetTop() >= 2 {
			c.SetScopedKeys(key, toGo(L.Get(2)))
			return 0
		}
		L.Push(toLua(L, c.ScopedKeys(key)))
		return 1
	}))

	L.SetField(t, "scoped_keys_of", L.NewFunction(func(L *lua.LState) int {
		L.Push(toLua(L, c.ScopedKeysOf(L.CheckString(1), L.CheckString(2))))
		return 1
	}))

	L.SetField(t, "ex", L.NewFunction(func(L *lua.LState) int {
		if L.GetTop() >= 1 {
			if v := L.Get(1); v == lua.LNil {
				c.SetEx(nil)
			} else {
				c.SetEx(v.String())
			}
			return 0
		}
		if err := c.Ex(); err != nil {
			L.Push(lua.LString(err.Error()))
		} else {
			L.Push(lua.LNil)
		}
		return 1
	}))

	L.SetField(t, "pkg", L.NewFunction(func(L *lua.LState) int {
		if L.GetTop() >= 1 {
			meta, _ := toStringMap(toGo(L.CheckTable(1)))
			if err := c.PatchPkg(meta); err != nil {
				L.RaiseError("%s", err.Error())
			}
			return 0
		}
		pkg, err := c.Pkg()
		if err != nil {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(toLua(L, map[string]any{
			"name":     pkg.Name,
			"dir_name": pkg.DirName,
			"umd_name": pkg.UMDName,
			"path":     pkg.Path,
			"version":  pkg.Version(),
			"private":  pkg.Private(),
			"meta":     pkg.Meta,
		}))
		return 1
	}))

	L.SetField(t, "print", L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, 0, L.GetTop())
		for i := 1; i <= L.GetTop(); i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		c.Printf("%s", strings.Join(parts, "\t"))
		return 0
	}))

	L.SetField(t, "exec", L.NewFunction(func(L *lua.LState) int {
		if !s.allowExec {
			L.RaiseError("%s", ErrExecDisabled.Error())
			return 0
		}
		name := L.CheckString(1)
		args := make([]string, 0, L.GetTop())
		for i := 2; i <= L.GetTop(); i++ {
			args = append(args, L.CheckString(i))
		}

		out, err := s.fs.RunCommand(c.Context(), fs.RunCommandParams{
			Dir:    s.commandDir(c),
			Name:   name,
			Args:   args,
			Stream: c.Output(),
		})
		if err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}
		L.Push(lua.LString(out))
		return 1
	}))

	return t
}

func (s *luaScript) commandDir(c *hooks.Context) string {
	if pkg, err := c.Pkg(); err == nil {
		return pkg.Path
	}
	return filepath.Clean(s.root)
}
