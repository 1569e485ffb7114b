package builtins

import (
	"fmt"
	"strings"

	"github.com/siujs/cli/pkg/consts"
	"github.com/siujs/cli/pkg/hooks"
	"github.com/siujs/cli/pkg/manifest"
)

// Deps actions.
const (
	ActionAdd    = "add"
	ActionRemove = "rm"

	devSuffix     = ":D"
	latestVersion = "latest"
)

// Dep is one entry of a deps spec such as "foo", "bar:D" or "@s/baz@1.1.0".
type Dep struct {
	Name    string
	Version string
	Dev     bool
}

// Section returns the manifest section the dependency belongs to.
func (d Dep) Section() string {
	if d.Dev {
		return manifest.SectionDevDependencies
	}
	return manifest.SectionDependencies
}

// ParseDeps parses a comma separated deps spec. A ":D" suffix marks a dev
// dependency and a missing version means "latest". Blank entries are skipped.
func ParseDeps(spec string) []Dep {
	var deps []Dep
	for _, raw := range strings.Split(spec, ",") {
		raw = strings.TrimSpace(raw)
		dep := Dep{Dev: strings.HasSuffix(raw, devSuffix)}
		raw = strings.TrimSuffix(raw, devSuffix)

		scoped := strings.HasPrefix(raw, "@") && strings.Contains(raw, "/")
		if scoped {
			raw = raw[1:]
		}
		name, version, found := strings.Cut(raw, "@")
		if name == "" {
			continue
		}
		if scoped {
			name = "@" + name
		}
		dep.Name = name
		dep.Version = latestVersion
		if found && version != "" {
			dep.Version = version
		}
		deps = append(deps, dep)
	}
	return deps
}

// depsFallback adds or removes dependencies in the manifest of the target
// package, or of the monorepo root when no package is given.
func (b *Builtins) depsFallback(api *hooks.CommandAPI) error {
	return api.Process(func(c *hooks.Context) error {
		opts := c.Opts()
		deps := ParseDeps(opts.Deps)
		if len(deps) == 0 {
			return ErrNoDeps
		}

		workspace := opts.WorkspaceOrDefault(consts.DefaultWorkspace)
		target, err := b.depsTarget(opts.Pkg, workspace)
		if err != nil {
			return err
		}

		switch action := opts.Action; action {
		case ActionRemove:
			for _, dep := range deps {
				if err := b.writer.RemoveDependency(target, dep.Name); err != nil {
					return err
				}
				c.Printf("Removed %s", dep.Name)
			}
		case ActionAdd, "":
			locals := b.localVersions(workspace)
			for _, dep := range deps {
				if version, ok := locals[dep.Name]; ok {
					dep.Version = version
				}
				if err := b.writer.SetDependency(target, dep.Section(), dep.Name, dep.Version); err != nil {
					return err
				}
				c.Printf("Added %s@%s to %s", dep.Name, dep.Version, dep.Section())
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownAction, action)
		}
		return nil
	})
}

func (b *Builtins) depsTarget(pkg, workspace string) (*manifest.Package, error) {
	if pkg == "" {
		return b.rootPackage()
	}
	return b.reader.Read(pkg, workspace)
}

// localVersions maps the manifest names of the workspace packages to their versions.
func (b *Builtins) localVersions(workspace string) map[string]string {
	versions := make(map[string]string)
	metas, err := manifest.Metas(b.fs, b.reader, b.root, workspace)
	if err != nil {
		b.logger.Logf("Could not list packages of %s: %v", workspace, err)
		return versions
	}
	for _, pkg := range metas {
		if v := pkg.Version(); v != "" {
			versions[pkg.Name] = v
		}
	}
	return versions
}
