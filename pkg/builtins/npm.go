package builtins

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/siujs/cli/pkg/fs"
	"github.com/siujs/cli/pkg/manifest"
	"github.com/tidwall/gjson"
)

const npmBin = "npm"

// joinAnswer turns a checkbox answer into a comma separated option value.
func joinAnswer(answer any) any {
	switch v := answer.(type) {
	case []string:
		return strings.Join(v, ",")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ",")
	default:
		return answer
	}
}

// hasScript reports whether the manifest meta declares an npm script called name.
func hasScript(meta map[string]any, name string) bool {
	scripts, ok := meta["scripts"].(map[string]any)
	if !ok {
		return false
	}
	script, ok := scripts[name].(string)
	return ok && script != ""
}

type npmParams struct {
	Dir    string
	Args   []string
	Env    []string
	Stream io.Writer
}

func (b *Builtins) npm(ctx context.Context, params npmParams) error {
	b.logger.Logf("Running npm %s in %s", strings.Join(params.Args, " "), params.Dir)
	_, err := b.fs.RunCommand(ctx, fs.RunCommandParams{
		Dir:    params.Dir,
		Name:   npmBin,
		Args:   params.Args,
		Env:    params.Env,
		Stream: params.Stream,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrScriptFailed, err)
	}
	return nil
}

// rootPackage reads the manifest at the monorepo root. A missing manifest
// yields an empty meta.
func (b *Builtins) rootPackage() (*manifest.Package, error) {
	pkg := &manifest.Package{
		Path:         b.root,
		ManifestPath: filepath.Join(b.root, manifest.FileName),
		Root:         b.root,
		Meta:         map[string]any{},
	}

	exists, err := b.fs.Exists(pkg.ManifestPath)
	if err != nil || !exists {
		return pkg, err
	}
	data, err := b.fs.ReadFile(pkg.ManifestPath)
	if err != nil {
		return nil, err
	}
	if meta, ok := gjson.ParseBytes(data).Value().(map[string]any); ok {
		pkg.Meta = meta
		pkg.Name, _ = meta["name"].(string)
	}
	return pkg, nil
}
