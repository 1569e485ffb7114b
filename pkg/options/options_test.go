//go:build unit

package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptions_Merge(t *testing.T) {
	base := Options{Format: "es", Custom: map[string]any{"minify": true, "target": "es5"}}
	next := Options{Format: "umd", Pkg: "foo", Custom: map[string]any{"target": "es2018"}}

	merged := base.Merge(next)

	assert.Equal(t, "umd", merged.Format)
	assert.Equal(t, "foo", merged.Pkg)
	assert.Equal(t, map[string]any{"minify": true, "target": "es2018"}, merged.Custom)
	assert.Equal(t, "es5", base.Custom["target"], "merge must not mutate the receiver")
}

func TestOptions_MergeKeepsValuesMissingFromOther(t *testing.T) {
	base := Options{Workspace: "libs", DryRun: true}

	merged := base.Merge(Options{Ver: "1.0.0"})

	assert.Equal(t, "libs", merged.Workspace)
	assert.True(t, merged.DryRun)
	assert.Equal(t, "1.0.0", merged.Ver)
}

func TestOptions_MergeExplicitZeroOverrides(t *testing.T) {
	base := FromMap(map[string]any{"dry_run": true, "ver": "1.0.0", "repo": "https://registry.npmjs.org"})

	merged := base.Merge(FromMap(map[string]any{"dryRun": false, "ver": ""}))

	assert.False(t, merged.DryRun)
	assert.Empty(t, merged.Ver)
	assert.Equal(t, "https://registry.npmjs.org", merged.Repo)

	// The explicit false keeps winning over later zero values.
	merged = merged.Merge(Options{Format: "es"})
	assert.False(t, merged.DryRun)
	assert.Equal(t, "es", merged.Format)
}

func TestOptions_WithoutPkgDropsExplicitPkg(t *testing.T) {
	base := Options{Pkg: "foo"}

	merged := base.Merge(FromMap(map[string]any{"pkg": "bar"}).WithoutPkg())

	assert.Equal(t, "foo", merged.Pkg)
}

func TestOptions_SetLookup(t *testing.T) {
	var o Options
	o.Set("dry-run", "true")
	o.Set("commit_edit_msg", ".git/COMMIT_EDITMSG")
	o.Set("format", []string{"es", "cjs"})
	o.Set("banner", "/* hi */")

	assert.True(t, o.DryRun)
	assert.Equal(t, ".git/COMMIT_EDITMSG", o.CommitEditMsg)
	assert.Equal(t, "es,cjs", o.Format)
	assert.Equal(t, "/* hi */", o.String("banner", ""))

	_, ok := o.Lookup("pkg")
	assert.False(t, ok)
	assert.Equal(t, "fallback", o.Get("pkg", "fallback"))
}

func TestOptions_WithoutPkg(t *testing.T) {
	o := Options{Pkg: "foo,bar", Format: "es"}

	rest := o.WithoutPkg()

	assert.Empty(t, rest.Pkg)
	assert.Equal(t, "es", rest.Format)
	assert.Equal(t, "foo,bar", o.Pkg)
}

func TestFromMapAndMap(t *testing.T) {
	o := FromMap(map[string]any{"workspace": "libs", "dry_run": true, "extra": 3})

	assert.Equal(t, map[string]any{"workspace": "libs", "dryRun": true, "extra": 3}, o.Map())
}
