//go:build unit

package loader

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/siujs/cli/pkg/consts"
	"github.com/siujs/cli/pkg/fs"
	"github.com/siujs/cli/pkg/hooks"
	"github.com/siujs/cli/pkg/kv"
	"github.com/siujs/cli/pkg/logger"
	"github.com/siujs/cli/pkg/options"
	"github.com/siujs/cli/pkg/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const luaPlugin = `
siu.build.start(function(ctx)
  ctx.scoped_keys("format", ctx.opts("format", "cjs"))
  ctx.keys("seen", ctx.package)
end)

siu.build.process(function(ctx)
  ctx.print("building", ctx.package, ctx.scoped_keys("format"))
  if ctx.opts("fail", false) then
    error("asked to fail")
  end
end)

siu.build.error(function(ctx)
  ctx.keys("failure", ctx.ex())
end)

siu.build.cli(function(option)
  option("-t, --target <target>", "build target", "es2019")({kind = "list", choices = {"es2019", "esnext"}})
end)
`

const goPlugin = `package main

func Hooks() []string {
	return []string{"test.start", "test.process"}
}

func Handle(hook string, ctx map[string]any) (map[string]any, error) {
	if hook == "test.start" {
		return map[string]any{"scoped_keys": map[string]any{"pkg": ctx["package"]}}, nil
	}
	return map[string]any{"print": "tested " + ctx["package"].(string), "keys": map[string]any{"done": true}}, nil
}
`

func writeScript(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newPlugin(t *testing.T, id string, store *kv.Store, out *bytes.Buffer) *plugin.Plugin {
	t.Helper()
	p, err := plugin.New(plugin.NewPluginParams{
		ID:      id,
		Store:   store,
		Console: logger.NewConsole(out, logger.WithPlainOutput()),
	})
	require.NoError(t, err)
	return p
}

func TestLoader_LuaScript(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, "plugins/build.lua", luaPlugin)

	l := NewLoader(NewLoaderParams{FS: fs.NewFS(), Root: root})
	defer l.Close()

	factory, err := l.Load("./plugins/build.lua")
	require.NoError(t, err)

	store := kv.New()
	var out bytes.Buffer
	p := newPlugin(t, "./plugins/build.lua", store, &out)
	require.NoError(t, p.Apply(factory))

	require.NoError(t, p.Process(context.Background(), consts.Build, options.Options{Format: "es"}, "foo"))
	assert.Contains(t, out.String(), "building\tfoo\tes")

	seen, _ := store.Get(hooks.GlobalKey(p.ID(), "seen"))
	assert.Equal(t, "foo", seen)

	err = p.Process(context.Background(), consts.Build, options.Options{Custom: map[string]any{"fail": true}}, "bar")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScriptCall)
	failure, _ := store.Get(hooks.GlobalKey(p.ID(), "failure"))
	assert.Contains(t, failure, "asked to fail")
}

func TestLoader_LuaCLIOptions(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, "build.lua", luaPlugin)

	l := NewLoader(NewLoaderParams{FS: fs.NewFS(), Root: root})
	defer l.Close()
	factory, err := l.Load("build.lua")
	require.NoError(t, err)

	p := newPlugin(t, "siujs-plugin-lua", kv.New(), &bytes.Buffer{})
	require.NoError(t, p.Apply(factory))
	require.NoError(t, p.ProcessCLIOptions(context.Background()))

	opts := p.CLIOptions()[consts.Build]
	require.Len(t, opts, 1)
	assert.Equal(t, "-t, --target <target>", opts[0].Flags)
	assert.Equal(t, "es2019", opts[0].DefaultValue)
	require.NotNil(t, opts[0].Prompt)
	assert.Equal(t, hooks.PromptList, opts[0].Prompt.Kind)
	assert.Equal(t, []string{"es2019", "esnext"}, opts[0].Prompt.Choices)
}

func TestLoader_LuaExecDisabled(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, "exec.lua", `siu.test.process(function(ctx) ctx.exec("echo", "hi") end)`)

	l := NewLoader(NewLoaderParams{FS: fs.NewFS(), Root: root})
	defer l.Close()
	factory, err := l.Load("exec.lua")
	require.NoError(t, err)

	p := newPlugin(t, "exec", kv.New(), &bytes.Buffer{})
	require.NoError(t, p.Apply(factory))

	err = p.Process(context.Background(), consts.Test, options.Options{}, "")
	assert.ErrorContains(t, err, "allow_exec")
}

func TestLoader_LuaSyntaxError(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, "broken.lua", `siu.build.start(`)

	l := NewLoader(NewLoaderParams{FS: fs.NewFS(), Root: root})
	defer l.Close()
	factory, err := l.Load("broken.lua")
	require.NoError(t, err)

	p := newPlugin(t, "broken", kv.New(), &bytes.Buffer{})
	assert.ErrorIs(t, p.Apply(factory), ErrScriptLoad)
}

func TestLoader_GoScriptFromNodeModules(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, filepath.Join("node_modules", "siujs-plugin-gotest", GoEntry), goPlugin)

	l := NewLoader(NewLoaderParams{FS: fs.NewFS(), Root: root})
	defer l.Close()
	factory, err := l.Load("gotest")
	require.NoError(t, err)

	store := kv.New()
	var out bytes.Buffer
	p := newPlugin(t, "siujs-plugin-gotest", store, &out)
	require.NoError(t, p.Apply(factory))

	ctx, err := p.CallHookForTest(context.Background(), consts.Test, consts.StageStart, "foo")
	require.NoError(t, err)
	assert.Equal(t, "foo", ctx.ScopedKeys("pkg"))

	require.NoError(t, p.Process(context.Background(), consts.Test, options.Options{}, "foo"))
	assert.Contains(t, out.String(), "tested foo")
	done, _ := store.Get(hooks.GlobalKey(p.ID(), "done"))
	assert.Equal(t, true, done)
}

func TestLoader_Builtin(t *testing.T) {
	called := false
	builtin := func(*hooks.API) error {
		called = true
		return nil
	}
	l := NewLoader(NewLoaderParams{
		FS:       fs.NewFS(),
		Root:     t.TempDir(),
		Builtins: map[string]plugin.Factory{"siujs-plugin-foo": builtin},
	})

	factory, err := l.Load("foo")
	require.NoError(t, err)
	require.NoError(t, factory(nil))
	assert.True(t, called)
}

func TestLoader_NotFound(t *testing.T) {
	l := NewLoader(NewLoaderParams{FS: fs.NewFS(), Root: t.TempDir()})

	_, err := l.Load("missing")
	assert.ErrorIs(t, err, ErrPluginNotFound)
}

func TestParseHookKey(t *testing.T) {
	cmd, stage, err := parseHookKey("build.complete")
	require.NoError(t, err)
	assert.Equal(t, consts.Build, cmd)
	assert.Equal(t, consts.StageComplete, stage)

	for _, key := range []string{"build", "lint.start", "build.cli"} {
		_, _, err := parseHookKey(key)
		assert.ErrorIs(t, err, ErrInvalidHookKey, key)
	}
}
