// Package pluginid expands short plugin ids to their full package names.
package pluginid

import (
	"regexp"
	"strings"
)

var (
	siuPluginRE = regexp.MustCompile(`^(@siujs/|siujs-|@[\w-]+(\.)?[\w-]+/siujs-)plugin-`)
	officialRE  = regexp.MustCompile(`^@siujs/plugin-`)
	scopeRE     = regexp.MustCompile(`^@[\w-]+(\.)?[\w-]+/`)
)

const officialScope = "@siujs/"

// IsSiuPlugin reports whether id is already a full plugin id such as
// "siujs-plugin-foo", "@siujs/plugin-foo" or "@scope/siujs-plugin-foo".
func IsSiuPlugin(id string) bool {
	return siuPluginRE.MatchString(id)
}

// IsOfficial reports whether id is a plugin published under the @siujs scope.
func IsOfficial(id string) bool {
	return IsSiuPlugin(id) && officialRE.MatchString(id)
}

// IsPath reports whether id points at a script on disk rather than a package.
func IsPath(id string) bool {
	return strings.HasPrefix(id, "./") ||
		strings.HasPrefix(id, "../") ||
		strings.HasPrefix(id, "/") ||
		strings.HasSuffix(id, ".lua") ||
		strings.HasSuffix(id, ".go")
}

// Resolve expands a short id:
//
//	foo         -> siujs-plugin-foo
//	@scope/foo  -> @scope/siujs-plugin-foo
//	@siujs/foo  -> @siujs/plugin-foo
//
// Full ids and paths are returned unchanged.
func Resolve(id string) string {
	if id == "" || IsSiuPlugin(id) || IsPath(id) {
		return id
	}

	if strings.HasPrefix(id, "@") {
		if scope := scopeRE.FindString(id); scope != "" {
			name := strings.TrimPrefix(id, scope)
			if scope == officialScope {
				return scope + "plugin-" + name
			}
			return scope + "siujs-plugin-" + name
		}
	}

	return "siujs-plugin-" + id
}

// Equal reports whether two ids resolve to the same plugin.
func Equal(a, b string) bool {
	return Resolve(a) == Resolve(b)
}
