package config

import (
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
)

// DefaultLookupDepth is the number of directories Lookup inspects.
const DefaultLookupDepth = 3

// Lookup searches cwd and up to depth-1 of its parents for a siu.yaml,
// a siu.yml or a package.json holding a "siu" object, and returns its path.
func Lookup(cwd string, depth int) (string, error) {
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return "", err
	}

	for ; depth > 0; depth-- {
		for _, name := range []string{FileName, AltFileName} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		pkgJSON := filepath.Join(dir, "package.json")
		if data, err := os.ReadFile(pkgJSON); err == nil && gjson.GetBytes(data, PackageKey).IsObject() {
			return pkgJSON, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", ErrConfigNotFound
}

// Root returns the workspace root a config file belongs to.
func Root(configPath string) string {
	return filepath.Dir(configPath)
}
