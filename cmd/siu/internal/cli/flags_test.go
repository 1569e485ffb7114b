//go:build unit

package cli

import (
	"errors"
	"testing"

	"github.com/siujs/cli/pkg/hooks"
	"github.com/siujs/cli/pkg/options"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlagSpec(t *testing.T) {
	tests := []struct {
		name     string
		spec     string
		expected FlagSpec
		err      bool
	}{
		{name: "short and long with value", spec: "-d, --deps <deps>", expected: FlagSpec{Long: "deps", Short: "d", HasValue: true}},
		{name: "optional value", spec: "--skip [skip]", expected: FlagSpec{Long: "skip", HasValue: true}},
		{name: "boolean switch", spec: "-m, --minify", expected: FlagSpec{Long: "minify", Short: "m"}},
		{name: "missing long name", spec: "-d <deps>", err: true},
		{name: "long shorthand", spec: "-dd, --deps", err: true},
		{name: "garbage", spec: "--deps deps", err: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlagSpec(tt.spec)
			if tt.err {
				assert.ErrorIs(t, err, ErrInvalidFlagSpec)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFlagSpec_Key(t *testing.T) {
	assert.Equal(t, "dryRun", FlagSpec{Long: "dry-run"}.Key())
	assert.Equal(t, "format", FlagSpec{Long: "format"}.Key())
}

func newCommandTree() (*cobra.Command, *cobra.Command) {
	root := &cobra.Command{Use: "siu"}
	var g Globals
	g.Bind(root)

	build := &cobra.Command{Use: "build", RunE: func(*cobra.Command, []string) error { return nil }}
	build.Flags().StringP("pkg", "p", "", "packages")
	root.AddCommand(build)
	return root, build
}

func TestAddPluginFlag(t *testing.T) {
	_, build := newCommandTree()

	flag, added, err := addPluginFlag(build, hooks.CLIOption{
		PluginID:    "siujs-plugin-rollup",
		Flags:       "-f, --format <format>",
		Description: "Output format",
	})
	require.NoError(t, err)
	require.True(t, added)
	assert.Equal(t, "format", flag.spec.Key())
	registered := build.Flags().Lookup("format")
	require.NotNil(t, registered)
	assert.Equal(t, "f", registered.Shorthand)
	assert.Equal(t, "Output format [support by siujs-plugin-rollup]", registered.Usage)

	// Same long name as an existing flag
	_, added, err = addPluginFlag(build, hooks.CLIOption{Flags: "-x, --pkg <pkg>"})
	require.NoError(t, err)
	assert.False(t, added)

	// Shorthand taken by a persistent flag of the root
	_, added, err = addPluginFlag(build, hooks.CLIOption{Flags: "-w, --watch-dir <dir>"})
	require.NoError(t, err)
	require.True(t, added)
	assert.Empty(t, build.Flags().Lookup("watch-dir").Shorthand)

	_, _, err = addPluginFlag(build, hooks.CLIOption{Flags: "nonsense"})
	assert.ErrorIs(t, err, ErrInvalidFlagSpec)
}

func TestCollectPluginFlags(t *testing.T) {
	root, build := newCommandTree()

	var flags []pluginFlag
	for _, option := range []hooks.CLIOption{
		{Flags: "-f, --format <format>"},
		{Flags: "--minify"},
		{Flags: "--target <target>", DefaultValue: "es2019"},
		{Flags: "--banner <banner>", Prompt: &hooks.Prompt{Kind: hooks.PromptInput, Message: "Banner?"}},
	} {
		flag, added, err := addPluginFlag(build, option)
		require.NoError(t, err)
		require.True(t, added)
		flags = append(flags, flag)
	}

	root.SetArgs([]string{"build", "-f", "es,cjs", "--minify"})
	require.NoError(t, root.Execute())

	var asked []string
	ask := func(p hooks.Prompt) (any, error) {
		asked = append(asked, p.Message)
		return "/* hi */", nil
	}

	var opts options.Options
	require.NoError(t, collectPluginFlags(build, flags, &opts, ask))
	assert.Equal(t, "es,cjs", opts.Format)
	assert.Equal(t, true, opts.Get("minify", nil))
	assert.Equal(t, "es2019", opts.Get("target", nil))
	assert.Equal(t, "/* hi */", opts.Get("banner", nil))
	assert.Equal(t, []string{"Banner?"}, asked)

	// Without an asker the prompt is skipped
	var quiet options.Options
	require.NoError(t, collectPluginFlags(build, flags, &quiet, nil))
	_, set := quiet.Lookup("banner")
	assert.False(t, set)

	failing := func(hooks.Prompt) (any, error) { return nil, errors.New("closed") }
	var failed options.Options
	assert.Error(t, collectPluginFlags(build, flags, &failed, failing))
}

func TestPrescan(t *testing.T) {
	g := Prescan([]string{"build", "-p", "foo", "-w", "libs", "--no-strict", "--unknown", "-D"})
	assert.Equal(t, "libs", g.Workspace)
	assert.True(t, g.NoStrict)
	assert.True(t, g.Debug)
}
