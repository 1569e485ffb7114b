package builtins

import (
	"path/filepath"

	"github.com/siujs/cli/internal/naming"
	"github.com/siujs/cli/pkg/hooks"
	"github.com/siujs/cli/pkg/manifest"
)

const depsKey = "deps"

// createFallback scaffolds a new package: its directories, an empty entry
// file and a manifest depending on the chosen siblings.
func (b *Builtins) createFallback(api *hooks.CommandAPI) error {
	if err := api.Start(b.resolveSiblingDeps); err != nil {
		return err
	}
	if err := api.Process(b.scaffold); err != nil {
		return err
	}
	return api.Error(func(c *hooks.Context) error {
		pkg, err := c.Pkg()
		if err != nil {
			return err
		}
		c.Logf("Removing %s after a failed creation", pkg.Path)
		return b.fs.RemoveAll(pkg.Path)
	})
}

// resolveSiblingDeps maps the requested sibling directories to their manifest
// names and stores them in the scoped "deps" key.
func (b *Builtins) resolveSiblingDeps(c *hooks.Context) error {
	requested := naming.SplitList(c.Opts().Deps)
	if len(requested) == 0 {
		return nil
	}

	pkg, err := c.Pkg()
	if err != nil {
		return err
	}
	workspace, err := filepath.Rel(pkg.Root, pkg.PkgsRoot)
	if err != nil {
		return err
	}
	metas, err := manifest.Metas(b.fs, b.reader, b.root, workspace)
	if err != nil {
		return err
	}

	deps := make([]string, 0, len(requested))
	for _, dep := range requested {
		if sibling, ok := metas[manifest.DirName(dep)]; ok {
			dep = sibling.Name
		}
		deps = append(deps, dep)
	}
	c.SetScopedKeys(depsKey, deps)
	return nil
}

func (b *Builtins) scaffold(c *hooks.Context) error {
	pkg, err := c.Pkg()
	if err != nil {
		return err
	}

	for _, dir := range []string{pkg.Path, filepath.Join(pkg.Path, "lib"), filepath.Join(pkg.Path, "__tests__")} {
		if err := b.fs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	deps, _ := hooks.ScopedAs[[]string](c, depsKey)
	dependencies := make(map[string]any, len(deps))
	for _, dep := range deps {
		dependencies[dep] = "file:../" + manifest.DirName(dep)
	}

	if err := b.writer.Create(pkg, []manifest.Field{
		{Key: "name", Value: pkg.Name},
		{Key: "version", Value: "0.0.0"},
		{Key: "description", Value: pkg.Name},
		{Key: "license", Value: "MIT"},
		{Key: "directories", Value: map[string]any{"lib": "lib", "test": "__tests__"}},
		{Key: "files", Value: []string{"lib"}},
		{Key: manifest.SectionDependencies, Value: dependencies},
	}); err != nil {
		return err
	}

	if err := b.fs.WriteFileAtomic(filepath.Join(pkg.Path, "lib", "index.ts"), nil, 0o644); err != nil {
		return err
	}

	c.Printf("Successfully created %s!", pkg.DirName)
	return nil
}
