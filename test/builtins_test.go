//go:build e2e

package test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/siujs/cli/pkg/builtins"
	"github.com/siujs/cli/pkg/consts"
	"github.com/siujs/cli/pkg/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBuiltinsMonorepo(t *testing.T) *TestSetup {
	t.Helper()
	return setupTestMonorepo(t, "workspace: packages\n", map[string]string{
		"a": `{"name": "@s/a", "version": "1.2.0"}`,
		"b": `{"name": "@s/b", "version": "0.1.0"}`,
	})
}

// TestCreatePackage scaffolds a package depending on a sibling
func TestCreatePackage(t *testing.T) {
	setup := setupBuiltinsMonorepo(t)

	report := runCommand(t, setup, consts.Create, options.Options{Pkg: "foo", Deps: "a"})
	require.False(t, report.Failed(), "Create should not fail: %v", report.Err())

	pkgDir := filepath.Join(setup.Root, "packages", "foo")
	doc := readJSON(t, filepath.Join(pkgDir, "package.json"))
	assert.Equal(t, "foo", doc.Get("name").String())
	assert.Equal(t, "0.0.0", doc.Get("version").String())
	assert.Equal(t, "file:../a", doc.Get("dependencies").Map()["@s/a"].String())

	assert.DirExists(t, filepath.Join(pkgDir, "__tests__"))
	assert.FileExists(t, filepath.Join(pkgDir, "lib", "index.ts"))
	assert.Contains(t, setup.Output.String(), "Successfully created foo!")
}

// TestDepsAddAndRemove edits the dependencies of a package
func TestDepsAddAndRemove(t *testing.T) {
	setup := setupBuiltinsMonorepo(t)
	manifestPath := filepath.Join(setup.Root, "packages", "b", "package.json")

	report := runCommand(t, setup, consts.Deps, options.Options{
		Pkg:    "b",
		Deps:   "lodash@4.17.21,@s/a,vitest:D",
		Action: builtins.ActionAdd,
	})
	require.False(t, report.Failed(), "Deps should not fail: %v", report.Err())

	doc := readJSON(t, manifestPath)
	deps := doc.Get("dependencies").Map()
	assert.Equal(t, "4.17.21", deps["lodash"].String())
	assert.Equal(t, "1.2.0", deps["@s/a"].String(), "Sibling versions come from the workspace")
	assert.Equal(t, "latest", doc.Get("devDependencies.vitest").String())

	report = runCommand(t, setup, consts.Deps, options.Options{Pkg: "b", Deps: "lodash", Action: builtins.ActionRemove})
	require.False(t, report.Failed())
	assert.False(t, readJSON(t, manifestPath).Get("dependencies.lodash").Exists())
}

// TestDepsRootManifest edits the root manifest when no package is given
func TestDepsRootManifest(t *testing.T) {
	setup := setupBuiltinsMonorepo(t)

	report := runCommand(t, setup, consts.Deps, options.Options{Deps: "typescript@5.4.0:D"})
	require.False(t, report.Failed(), "Deps should not fail: %v", report.Err())
	assert.Equal(t, "5.4.0", readJSON(t, filepath.Join(setup.Root, "package.json")).Get("devDependencies.typescript").String())
}

// TestGlintCommitMessage validates commit messages from the commit-msg hook
func TestGlintCommitMessage(t *testing.T) {
	setup := setupBuiltinsMonorepo(t)
	msgPath := filepath.Join(setup.Root, ".git", "COMMIT_EDITMSG")

	writeFile(t, msgPath, "feat(core): add the plugin loader\n")
	report := runCommand(t, setup, consts.Glint, options.Options{Hook: builtins.HookCommitMsg, CommitEditMsg: msgPath})
	assert.False(t, report.Failed(), "A conventional message is accepted: %v", report.Err())

	require.NoError(t, os.WriteFile(msgPath, []byte("added stuff\n"), 0644))
	report = runCommand(t, setup, consts.Glint, options.Options{Hook: builtins.HookCommitMsg, CommitEditMsg: msgPath})
	require.True(t, report.Failed())
	assert.ErrorIs(t, report.Err(), builtins.ErrInvalidCommitMessage)
}

// TestScriptFallbackSkipsPackagesWithoutScript runs the npm script fallback
func TestScriptFallbackSkipsPackagesWithoutScript(t *testing.T) {
	setup := setupBuiltinsMonorepo(t)

	report := runCommand(t, setup, consts.Test, options.Options{})
	require.False(t, report.Failed())
	assert.Equal(t, []string{"@s/a", "@s/b"}, report.Packages, "Packages nobody depends on are ordered by directory")
	assert.Contains(t, setup.Output.String(), `No "test" script in @s/a, skipped`)
}
