// Package manifest reads, caches and patches the package.json files of a workspace.
package manifest

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/siujs/cli/internal/naming"
)

// FileName is the manifest file of a package.
const FileName = "package.json"

// Package describes one workspace package.
type Package struct {
	// Name is the manifest name, e.g. "@scope/foo".
	Name string
	// DirName is the directory of the package inside the workspace, e.g. "foo".
	DirName string
	// UMDName is the camelized directory name with its first letter upper cased.
	UMDName string
	// Path is the package directory.
	Path string
	// ManifestPath is the path of the package.json file.
	ManifestPath string
	// PkgsRoot is the workspace directory holding every package.
	PkgsRoot string
	// Root is the monorepo root.
	Root string
	Meta map[string]any
}

// NewPackage describes the package called name inside root/workspace.
func NewPackage(root, workspace, name string, meta map[string]any) *Package {
	dir := DirName(name)
	pkgsRoot := filepath.Join(root, workspace)
	pkgPath := filepath.Join(pkgsRoot, dir)

	if meta == nil {
		meta = map[string]any{"name": name}
	}
	if metaName, ok := meta["name"].(string); ok && metaName != "" {
		name = metaName
	}

	return &Package{
		Name:         name,
		DirName:      dir,
		UMDName:      UMDName(dir),
		Path:         pkgPath,
		ManifestPath: filepath.Join(pkgPath, FileName),
		PkgsRoot:     pkgsRoot,
		Root:         root,
		Meta:         meta,
	}
}

// DirName strips the scope of a package name: "@scope/foo" becomes "foo".
func DirName(name string) string {
	if strings.HasPrefix(name, "@") {
		if idx := strings.LastIndex(name, "/"); idx >= 0 {
			return name[idx+1:]
		}
	}
	return name
}

// UMDName returns the global identifier of a package directory: "foo-bar" becomes "FooBar".
func UMDName(dir string) string {
	return naming.Camelize(dir, true)
}

// Dependencies returns the sorted names listed in the "dependencies" field.
func (p *Package) Dependencies() []string {
	return p.dependencyNames("dependencies")
}

// DevDependencies returns the sorted names listed in the "devDependencies" field.
func (p *Package) DevDependencies() []string {
	return p.dependencyNames("devDependencies")
}

// Private reports whether the manifest is marked private.
func (p *Package) Private() bool {
	private, _ := p.Meta["private"].(bool)
	return private
}

// Version returns the manifest version.
func (p *Package) Version() string {
	version, _ := p.Meta["version"].(string)
	return version
}

// Clone returns a copy of p whose top level Meta can be changed freely.
func (p *Package) Clone() *Package {
	out := *p
	out.Meta = make(map[string]any, len(p.Meta))
	for k, v := range p.Meta {
		out.Meta[k] = v
	}
	return &out
}

func (p *Package) dependencyNames(field string) []string {
	deps, ok := p.Meta[field].(map[string]any)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
