//go:build unit

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/siujs/cli/pkg/consts"
	"github.com/siujs/cli/pkg/pkgorder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
workspace: libs
pkgs_order: [b, a]
exclude_pkgs:
  build: ["@scope/docs"]
plugins:
  - foo
  - id: "@scope/bar"
    exclude_pkgs: [playground]
    custom:
      build:
        format: es
        minify: true
  - [baz, {exclude_pkgs: {test: [a]}}]
handler_timeout: 2s
allow_exec: true
`

func TestParse(t *testing.T) {
	config, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "libs", config.Workspace)
	assert.Equal(t, pkgorder.Order{List: []string{"b", "a"}}, config.PkgsOrder.Order())
	assert.Equal(t, []string{"@scope/docs"}, config.ExcludePkgs.PerCommand[consts.Build])
	assert.Equal(t, []string{"siujs-plugin-foo", "@scope/siujs-plugin-bar", "siujs-plugin-baz"}, config.PluginIDs())
	assert.Equal(t, 2*time.Second, config.HandlerTimeout)
	assert.True(t, config.AllowExec)
}

func TestParse_Defaults(t *testing.T) {
	config, err := Parse([]byte("plugins: [foo]"))
	require.NoError(t, err)

	assert.Equal(t, consts.DefaultWorkspace, config.Workspace)
	assert.Equal(t, pkgorder.Order{Mode: pkgorder.ModePriority}, config.PkgsOrder.Order())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{name: "syntax", data: "plugins: [", wantErr: ErrConfigFileParse},
		{name: "order mode", data: "pkgs_order: random", wantErr: ErrUnknownPkgsOrder},
		{name: "negative timeout", data: "handler_timeout: -1s", wantErr: ErrNegativeHandlerTimeout},
		{name: "empty plugin id", data: "plugins: [{exclude_pkgs: [a]}]", wantErr: ErrPluginIDEmpty},
		{name: "unknown exclude command", data: "exclude_pkgs: {lint: [a]}", wantErr: ErrConfigFileParse},
		{name: "unknown custom command", data: "plugins: [{id: foo, custom: {lint: {a: 1}}}]", wantErr: ErrUnknownCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestIsPkgExcluded(t *testing.T) {
	config, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	tests := []struct {
		name     string
		pkg      string
		pluginID string
		cmd      consts.Command
		want     bool
	}{
		{name: "global per command", pkg: "docs", pluginID: "siujs-plugin-foo", cmd: consts.Build, want: true},
		{name: "global other command", pkg: "docs", pluginID: "siujs-plugin-foo", cmd: consts.Test, want: false},
		{name: "plugin own list", pkg: "playground", pluginID: "@scope/siujs-plugin-bar", cmd: consts.Test, want: true},
		{name: "plugin own list by short id", pkg: "playground", pluginID: "@scope/bar", cmd: consts.Test, want: true},
		{name: "other plugin list ignored", pkg: "playground", pluginID: "siujs-plugin-foo", cmd: consts.Test, want: false},
		{name: "sequence entry per command", pkg: "a", pluginID: "siujs-plugin-baz", cmd: consts.Test, want: true},
		{name: "sequence entry other command", pkg: "a", pluginID: "siujs-plugin-baz", cmd: consts.Build, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, config.IsPkgExcluded(tt.pkg, tt.pluginID, tt.cmd))
		})
	}
}

func TestIsPkgExcluded_GlobalListWinsFirst(t *testing.T) {
	config, err := Parse([]byte("exclude_pkgs: [a]\nplugins: [{id: foo, exclude_pkgs: [b]}]"))
	require.NoError(t, err)

	assert.True(t, config.IsPkgExcluded("a", "foo", consts.Build))
	assert.True(t, config.IsPkgExcluded("b", "foo", consts.Build))
	assert.False(t, config.IsPkgExcluded("b", "other", consts.Build))
}

func TestIsPkgExcluded_NoPlugins(t *testing.T) {
	config, err := Parse([]byte("exclude_pkgs: [a]"))
	require.NoError(t, err)

	assert.False(t, config.IsPkgExcluded("a", consts.DefaultPluginID, consts.Build))
}

func TestCustomOptions(t *testing.T) {
	config, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	opts := config.CustomOptions("@scope/bar")

	assert.Equal(t, "es", opts[consts.Build].Format)
	assert.Equal(t, true, opts[consts.Build].Custom["minify"])
	assert.Empty(t, config.CustomOptions("foo"))
}

func TestManager_GetConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0644))

	config, err := NewManager(path).GetConfig()
	require.NoError(t, err)
	assert.Equal(t, "libs", config.Workspace)
}

func TestManager_GetConfigFromPackageJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "package.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"root","siu":{"plugins":["foo"],"pkgs_order":"auto"}}`), 0644))

	config, err := NewManager(path).GetConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"siujs-plugin-foo"}, config.PluginIDs())
	assert.Equal(t, pkgorder.ModeAuto, config.PkgsOrder.Mode)
}

func TestManager_GetConfigWithFallback(t *testing.T) {
	manager := NewManager(filepath.Join(t.TempDir(), FileName))

	_, err := manager.GetConfig()
	assert.ErrorIs(t, err, ErrConfigNotFound)

	config, err := manager.GetConfigWithFallback()
	require.NoError(t, err)
	assert.Equal(t, manager.DefaultConfig(), config)
	assert.Equal(t, consts.DefaultWorkspace, config.Workspace)
	assert.Empty(t, config.Plugins)
}

func TestManager_SaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	manager := NewManager(path)

	original, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	require.NoError(t, manager.SaveConfig(original))

	loaded, err := manager.GetConfig()
	require.NoError(t, err)
	assert.Equal(t, original.PluginIDs(), loaded.PluginIDs())
	assert.Equal(t, original.HandlerTimeout, loaded.HandlerTimeout)
	assert.Equal(t, original.PkgsOrder, loaded.PkgsOrder)
}

func TestLookup(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "packages", "foo")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("plugins: []"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "package.json"), []byte(`{"name":"foo"}`), 0644))

	path, err := Lookup(nested, DefaultLookupDepth)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, FileName), path)
	assert.Equal(t, root, Root(path))

	_, err = Lookup(nested, 2)
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestFingerprint(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("a: 1"), 0644))

	first, err := Fingerprint(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("a: 2"), 0644))
	second, err := Fingerprint(path)
	require.NoError(t, err)

	assert.Len(t, first, 64)
	assert.NotEqual(t, first, second)

	_, err = Fingerprint(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, ErrFingerprint)
}
