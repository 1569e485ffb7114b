//go:build e2e

package test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/siujs/cli/pkg/config"
	"github.com/siujs/cli/pkg/consts"
	"github.com/siujs/cli/pkg/dependencies"
	"github.com/siujs/cli/pkg/logger"
	"github.com/siujs/cli/pkg/options"
	"github.com/siujs/cli/pkg/orchestrator"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// TestSetup holds the test monorepo
type TestSetup struct {
	Root       string
	ConfigPath string
	Output     *bytes.Buffer
}

// setupTestMonorepo creates a monorepo with the given siu.yaml and packages.
// Each package maps a directory name to its package.json content.
func setupTestMonorepo(t *testing.T, siuYAML string, pkgs map[string]string) *TestSetup {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	writeFile(t, filepath.Join(root, "package.json"), `{"name": "monorepo", "private": true}`)
	configPath := filepath.Join(root, "siu.yaml")
	writeFile(t, configPath, siuYAML)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "packages"), 0755))
	for dir, manifest := range pkgs {
		writeFile(t, filepath.Join(root, "packages", dir, "package.json"), manifest)
	}

	return &TestSetup{
		Root:       root,
		ConfigPath: configPath,
		Output:     &bytes.Buffer{},
	}
}

// writeFile writes content to path, creating the parent directories
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// readJSON reads a JSON file of the monorepo
func readJSON(t *testing.T, path string) gjson.Result {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return gjson.ParseBytes(data)
}

// newDependencies loads the monorepo configuration and builds the dependencies
// printing to the setup output
func newDependencies(t *testing.T, setup *TestSetup) (*dependencies.Dependencies, config.Config) {
	t.Helper()

	manager := config.NewManager(setup.ConfigPath)
	cfg, err := manager.GetConfig()
	require.NoError(t, err)

	deps := dependencies.New().
		WithConfig(manager).
		WithRoot(setup.Root).
		WithConsole(logger.NewConsole(setup.Output, logger.WithPlainOutput())).
		WithGetenv(func(string) string { return "" })
	require.NoError(t, deps.Validate())

	return deps, cfg
}

// runCommand applies the plugins of the monorepo for cmd with the builtin fallback
func runCommand(t *testing.T, setup *TestSetup, cmd consts.Command, opts options.Options) *orchestrator.Report {
	t.Helper()

	deps, cfg := newDependencies(t, setup)
	o := deps.Orchestrator(cfg)

	report, err := o.ApplyPlugins(context.Background(), orchestrator.Args{Cmd: cmd, Opts: opts}, deps.Builtins().Fallback(cmd))
	require.NoError(t, err)
	return report
}
