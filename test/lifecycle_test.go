//go:build e2e

package test

import (
	"strings"
	"testing"

	"github.com/siujs/cli/pkg/consts"
	"github.com/siujs/cli/pkg/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const producerPlugin = `
siu.build.start(function(ctx)
  ctx.scoped_keys("format", ctx.opts("format", "es"))
  ctx.pkg({version = "2.0.0"})
end)

siu.build.process(function(ctx)
  ctx.print("p1 built " .. ctx.package)
end)

siu.deps.process(function(ctx)
  ctx.print("deps by p1")
end)

siu.test.process(function(ctx)
  error("boom in " .. ctx.package)
end)

siu.test.error(function(ctx)
  ctx.print("caught " .. ctx.ex())
end)
`

const consumerPlugin = `
siu.build.process(function(ctx)
  local pkg = ctx.pkg()
  ctx.print("p2 sees " .. tostring(ctx.scoped_keys_of("./plugins/p1.lua", "format")) .. " at " .. pkg.version)
end)

siu.deps.process(function(ctx)
  ctx.print("deps by p2")
end)
`

const goScriptPlugin = `package main

func Hooks() []string {
	return []string{"doc.process"}
}

func Handle(hook string, ctx map[string]any) (map[string]any, error) {
	return map[string]any{"print": "documented " + ctx["package"].(string)}, nil
}
`

const lifecycleConfig = `workspace: packages
pkgs_order: [b, a, c]
exclude_pkgs: [c]
plugins:
  - ./plugins/p1.lua
  - id: ./plugins/p2.lua
    exclude_pkgs: [a]
`

func setupLifecycleMonorepo(t *testing.T) *TestSetup {
	t.Helper()

	setup := setupTestMonorepo(t, lifecycleConfig, map[string]string{
		"a": `{"name": "@s/a", "version": "1.0.0"}`,
		"b": `{"name": "@s/b", "version": "1.0.0"}`,
		"c": `{"name": "@s/c", "version": "1.0.0"}`,
	})
	writeFile(t, setup.Root+"/plugins/p1.lua", producerPlugin)
	writeFile(t, setup.Root+"/plugins/p2.lua", consumerPlugin)
	return setup
}

// TestPackageCommandOrderAndExclusions runs a package command over an explicit
// order with global and per plugin exclusions
func TestPackageCommandOrderAndExclusions(t *testing.T) {
	setup := setupLifecycleMonorepo(t)

	report := runCommand(t, setup, consts.Build, options.Options{})
	require.False(t, report.Failed(), "Run should not fail: %v", report.Err())
	assert.Equal(t, []string{"@s/b", "@s/a"}, report.Packages)

	out := setup.Output.String()
	assert.Less(t, strings.Index(out, "<@s/b>"), strings.Index(out, "<@s/a>"), "b is ordered first")
	assert.NotContains(t, out, "@s/c", "c is excluded for every plugin")
	assert.Contains(t, out, "p1 built @s/b")
	assert.Contains(t, out, "p1 built @s/a")

	// p2 reads the key p1 stored for the same package and the patched manifest
	assert.Contains(t, out, "p2 sees es at 2.0.0")
	assert.Equal(t, 1, strings.Count(out, "p2 sees"), "p2 excludes a")

	// The manifest patch stays in memory
	assert.Equal(t, "1.0.0", readJSON(t, setup.Root+"/packages/b/package.json").Get("version").String())
}

// TestPackageCommandOptions hands the command options to the handlers
func TestPackageCommandOptions(t *testing.T) {
	setup := setupLifecycleMonorepo(t)

	report := runCommand(t, setup, consts.Build, options.Options{Format: "umd", Pkg: "b"})
	require.False(t, report.Failed())
	assert.Equal(t, []string{"@s/b"}, report.Packages)
	assert.Contains(t, setup.Output.String(), "p2 sees umd at 2.0.0")
}

// TestWorkspaceCommandRunsOncePerPlugin runs a workspace command
func TestWorkspaceCommandRunsOncePerPlugin(t *testing.T) {
	setup := setupLifecycleMonorepo(t)

	report := runCommand(t, setup, consts.Deps, options.Options{})
	require.False(t, report.Failed())
	assert.Empty(t, report.Packages)

	out := setup.Output.String()
	assert.Equal(t, 1, strings.Count(out, "deps by p1"))
	assert.Equal(t, 1, strings.Count(out, "deps by p2"))
}

// TestHandlerErrorIsReportedPerPackage makes every package fail and checks
// the error handler ran and the run continued
func TestHandlerErrorIsReportedPerPackage(t *testing.T) {
	setup := setupLifecycleMonorepo(t)

	report := runCommand(t, setup, consts.Test, options.Options{})
	require.True(t, report.Failed())
	require.Len(t, report.Failures, 2)
	assert.Equal(t, "@s/b", report.Failures[0].Package)
	assert.Equal(t, "@s/a", report.Failures[1].Package)

	out := setup.Output.String()
	assert.Contains(t, out, "caught")
	assert.Contains(t, out, "boom in @s/b")
	assert.Contains(t, out, "boom in @s/a")
}

// TestGoScriptPlugin loads a plugin interpreted from a Go file
func TestGoScriptPlugin(t *testing.T) {
	setup := setupTestMonorepo(t, "workspace: packages\nplugins:\n  - ./plugins/doc.go\n", map[string]string{
		"a": `{"name": "@s/a", "version": "1.0.0"}`,
	})
	writeFile(t, setup.Root+"/plugins/doc.go", goScriptPlugin)

	report := runCommand(t, setup, consts.Doc, options.Options{})
	require.False(t, report.Failed(), "Run should not fail: %v", report.Err())
	assert.Contains(t, setup.Output.String(), "documented @s/a")
}
