//go:build unit

package hooks

import (
	"bytes"
	"errors"
	"testing"

	"github.com/siujs/cli/pkg/consts"
	"github.com/siujs/cli/pkg/kv"
	"github.com/siujs/cli/pkg/logger"
	"github.com/siujs/cli/pkg/manifest"
	"github.com/siujs/cli/pkg/manifest/mocks"
	"github.com/siujs/cli/pkg/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestContext(store *kv.Store, pluginID, pkg string) *Context {
	return NewContext(ContextParams{
		Scope:   Scope{PluginID: pluginID, Command: consts.Build, Package: pkg, Stage: consts.StageProcess},
		Options: options.Options{Format: "es"},
		Store:   store,
	})
}

func TestContext_ScopedKeysIsolatedPerPackage(t *testing.T) {
	store := kv.New()
	foo := newTestContext(store, "p", "foo")
	bar := newTestContext(store, "p", "bar")

	foo.SetScopedKeys("out", "dist/foo")

	assert.Equal(t, "dist/foo", foo.ScopedKeys("out"))
	assert.Nil(t, bar.ScopedKeys("out"))
}

func TestContext_KeysSharedAcrossPackages(t *testing.T) {
	store := kv.New()
	foo := newTestContext(store, "p", "foo")
	bar := newTestContext(store, "p", "bar")
	other := newTestContext(store, "q", "foo")

	foo.SetKeys("count", 2)

	assert.Equal(t, 2, bar.Keys("count"))
	assert.Nil(t, other.Keys("count"))

	count, ok := KeyAs[int](bar, "count")
	assert.True(t, ok)
	assert.Equal(t, 2, count)

	foo.SetKeys("count", nil)
	assert.Nil(t, bar.Keys("count"))
}

func TestContext_ScopedKeysOfOtherPlugin(t *testing.T) {
	store := kv.New()
	writer := newTestContext(store, "p", "foo")
	reader := newTestContext(store, "q", "foo")

	writer.SetScopedKeys("deps", []string{"a"})

	assert.Nil(t, reader.ScopedKeys("deps"))
	assert.Equal(t, []string{"a"}, reader.ScopedKeysOf("p", "deps"))
}

func TestContext_Ex(t *testing.T) {
	store := kv.New()
	c := newTestContext(store, "p", "foo")
	sibling := newTestContext(store, "p", "bar")

	assert.NoError(t, c.Ex())

	boom := errors.New("boom")
	c.SetEx(boom)
	assert.ErrorIs(t, c.Ex(), boom)
	assert.NoError(t, sibling.Ex())

	c.SetEx("text failure")
	assert.EqualError(t, c.Ex(), "text failure")

	c.SetEx(nil)
	assert.NoError(t, c.Ex())
}

func TestContext_WithStageSharesStore(t *testing.T) {
	c := newTestContext(kv.New(), "p", "foo")
	c.SetScopedKeys("k", "v")

	next := c.WithStage(consts.StageComplete)

	assert.Equal(t, consts.StageComplete, next.Stage())
	assert.Equal(t, consts.StageProcess, c.Stage())
	assert.Equal(t, "v", next.ScopedKeys("k"))
}

func TestContext_Opts(t *testing.T) {
	c := newTestContext(kv.New(), "p", "foo")

	assert.Equal(t, "es", c.OptString(options.KeyFormat, ""))
	assert.Equal(t, "fallback", c.OptString("missing", "fallback"))

	opts := c.Opts()
	opts.Format = "cjs"
	assert.Equal(t, "es", c.OptString(options.KeyFormat, ""))
}

func TestContext_PkgWithoutPackage(t *testing.T) {
	c := newTestContext(kv.New(), "p", "")

	_, err := c.Pkg()
	assert.ErrorIs(t, err, ErrNoPackage)
	assert.ErrorIs(t, c.PatchPkg(map[string]any{"x": 1}), ErrNoPackage)
}

func TestContext_PatchPkgVisibleToOtherHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := mocks.NewMockReader(ctrl)
	reader.EXPECT().Read("foo", consts.DefaultWorkspace).
		Return(manifest.NewPackage("/repo", consts.DefaultWorkspace, "foo", nil), nil).
		Times(1)
	cache := manifest.NewCache(reader)

	params := ContextParams{
		Scope:    Scope{PluginID: "p", Command: consts.Build, Package: "foo", Stage: consts.StageStart},
		Packages: cache,
	}
	first := NewContext(params)
	params.Scope.PluginID = "q"
	second := NewContext(params)

	require.NoError(t, first.PatchPkg(map[string]any{"version": "2.0.0"}))

	pkg, err := second.Pkg()
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", pkg.Version())
}

func TestContext_PrintfGoesToConsole(t *testing.T) {
	var buf bytes.Buffer
	c := NewContext(ContextParams{
		Scope:   Scope{PluginID: "p", Command: consts.Build},
		Console: logger.NewConsole(&buf, logger.WithPlainOutput()),
	})

	c.Printf("hello %s", "world")

	assert.Equal(t, "hello world\n", buf.String())
}
