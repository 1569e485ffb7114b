//go:build unit

package manifest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirName(t *testing.T) {
	assert.Equal(t, "foo", DirName("@scope/foo"))
	assert.Equal(t, "foo", DirName("foo"))
	assert.Equal(t, "@scope", DirName("@scope"))
}

func TestNewPackage(t *testing.T) {
	pkg := NewPackage("/repo", "packages", "@scope/foo-bar", map[string]any{
		"name":         "@scope/foo-bar",
		"dependencies": map[string]any{"zeta": "^1.0.0", "alpha": "file:../alpha"},
	})

	assert.Equal(t, "@scope/foo-bar", pkg.Name)
	assert.Equal(t, "foo-bar", pkg.DirName)
	assert.Equal(t, "FooBar", pkg.UMDName)
	assert.Equal(t, filepath.Join("/repo", "packages", "foo-bar"), pkg.Path)
	assert.Equal(t, filepath.Join("/repo", "packages", "foo-bar", "package.json"), pkg.ManifestPath)
	assert.Equal(t, filepath.Join("/repo", "packages"), pkg.PkgsRoot)
	assert.Equal(t, []string{"alpha", "zeta"}, pkg.Dependencies())
	assert.Nil(t, pkg.DevDependencies())
}

func TestNewPackage_MissingManifest(t *testing.T) {
	pkg := NewPackage("/repo", "packages", "foo", nil)

	assert.Equal(t, map[string]any{"name": "foo"}, pkg.Meta)
	assert.False(t, pkg.Private())
	assert.Empty(t, pkg.Version())
}

func TestPackage_Clone(t *testing.T) {
	pkg := NewPackage("/repo", "packages", "foo", map[string]any{"name": "foo"})

	clone := pkg.Clone()
	clone.Meta["description"] = "changed"

	_, ok := pkg.Meta["description"]
	assert.False(t, ok)
}
