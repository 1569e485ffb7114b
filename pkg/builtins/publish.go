package builtins

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/siujs/cli/internal/naming"
	"github.com/siujs/cli/pkg/consts"
	"github.com/siujs/cli/pkg/hooks"
	"github.com/siujs/cli/pkg/manifest"
	"github.com/siujs/cli/pkg/pkgorder"
)

// Publish steps that --skip accepts.
const (
	StepLint    = "lint"
	StepBuild   = "build"
	StepVersion = "version"
)

var versionRE = regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?$`)

// validVersionOption accepts an empty version, "independent", "auto" or x.y.z.
// Only an explicit x.y.z rewrites the manifests.
func validVersionOption(ver string) bool {
	switch ver {
	case "", "independent", "auto":
		return true
	default:
		return versionRE.MatchString(ver)
	}
}

// publishFallback lints the root, builds and publishes every public package
// of the workspace, most depended on first.
func (b *Builtins) publishFallback(api *hooks.CommandAPI) error {
	return api.Process(func(c *hooks.Context) error {
		opts := c.Opts()
		skip := naming.SplitList(opts.Skip)
		workspace := opts.WorkspaceOrDefault(consts.DefaultWorkspace)

		if !validVersionOption(opts.Ver) {
			return fmt.Errorf("%w: %q", ErrInvalidVersion, opts.Ver)
		}

		if !slices.Contains(skip, StepLint) {
			root, err := b.rootPackage()
			if err != nil {
				return err
			}
			if hasScript(root.Meta, StepLint) {
				if err := b.npm(c.Context(), npmParams{Dir: b.root, Args: []string{"run", StepLint}, Stream: c.Output()}); err != nil {
					return err
				}
			}
		}

		dirs, err := pkgorder.NewResolver(pkgorder.NewResolverParams{
			FS:        b.fs,
			Reader:    b.reader,
			Root:      b.root,
			Workspace: workspace,
		}).Sort(pkgorder.Order{Mode: pkgorder.ModePriority}, opts.Pkg)
		if err != nil {
			return err
		}

		for _, dir := range dirs {
			if err := c.Context().Err(); err != nil {
				return err
			}
			pkg, err := b.reader.Read(dir, workspace)
			if err != nil {
				return err
			}
			if pkg.Private() {
				c.Printf("Skipping private package %s", pkg.Name)
				continue
			}
			if err := b.publishPackage(c, pkg, skip); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *Builtins) publishPackage(c *hooks.Context, pkg *manifest.Package, skip []string) error {
	opts := c.Opts()

	if versionRE.MatchString(opts.Ver) && !slices.Contains(skip, StepVersion) {
		if opts.DryRun {
			c.Printf("Would bump %s to %s", pkg.Name, opts.Ver)
		} else if err := b.writer.Patch(pkg, map[string]any{"version": opts.Ver}); err != nil {
			return err
		}
	}

	if !slices.Contains(skip, StepBuild) && hasScript(pkg.Meta, StepBuild) {
		if err := b.npm(c.Context(), npmParams{Dir: pkg.Path, Args: []string{"run", StepBuild}, Stream: c.Output()}); err != nil {
			return err
		}
	}

	args := []string{"publish"}
	if opts.DryRun {
		args = append(args, "--dry-run")
	}
	if opts.Repo != "" {
		args = append(args, "--registry", opts.Repo)
	}
	if err := b.npm(c.Context(), npmParams{Dir: pkg.Path, Args: args, Stream: c.Output()}); err != nil {
		return err
	}
	c.Printf("Published %s", pkg.Name)
	return nil
}
