// Package builtins provides the default plugin and the per command fallbacks
// used when no configured plugin handles a command.
package builtins

import (
	"os"
	"slices"

	"github.com/siujs/cli/pkg/consts"
	"github.com/siujs/cli/pkg/fs"
	"github.com/siujs/cli/pkg/git"
	"github.com/siujs/cli/pkg/hooks"
	"github.com/siujs/cli/pkg/logger"
	"github.com/siujs/cli/pkg/manifest"
)

// Output formats offered by the build prompt.
var buildFormats = []string{"es", "cjs", "umd", "umd-min"}

// NewBuiltinsParams contains parameters for creating new Builtins.
type NewBuiltinsParams struct {
	FS     fs.FS
	Git    git.Git
	Reader manifest.Reader
	Writer manifest.Writer
	// Root is the monorepo root.
	Root   string
	Logger logger.Logger
	// Getenv reads the git hook environment. Defaults to os.Getenv.
	Getenv func(key string) string
}

// Builtins holds the dependencies shared by the builtin handlers.
type Builtins struct {
	fs     fs.FS
	git    git.Git
	reader manifest.Reader
	writer manifest.Writer
	root   string
	logger logger.Logger
	getenv func(key string) string
}

// New creates new Builtins.
func New(params NewBuiltinsParams) *Builtins {
	b := &Builtins{
		fs:     params.FS,
		git:    params.Git,
		reader: params.Reader,
		writer: params.Writer,
		root:   params.Root,
		logger: params.Logger,
		getenv: params.Getenv,
	}
	if b.reader == nil {
		b.reader = manifest.NewReader(b.fs, b.root)
	}
	if b.writer == nil {
		b.writer = manifest.NewWriter(b.fs)
	}
	if b.git == nil {
		b.git = git.NewGit()
	}
	if b.logger == nil {
		b.logger = logger.NewNoopLogger()
	}
	b.logger = logger.WithComponent(b.logger, "builtins")
	if b.getenv == nil {
		b.getenv = os.Getenv
	}
	return b
}

// Plugin registers the command line options of the default plugin.
// It is a plugin.Factory.
func (b *Builtins) Plugin(api *hooks.API) error {
	if err := api.Create().CLI(func(option hooks.OptionFunc) error {
		setPrompt := option("-d, --deps <deps>", "name of siblings package, e.g. `pkg1` or `pkg1,pkg2`", nil)
		if names := b.siblingNames(consts.DefaultWorkspace); len(names) > 0 {
			setPrompt(hooks.Prompt{
				Name:      "deps",
				Kind:      hooks.PromptCheckbox,
				Message:   "Choose siblings packages as deps?",
				Choices:   names,
				Transform: joinAnswer,
			})
		}
		return nil
	}); err != nil {
		return err
	}

	if err := api.Build().CLI(func(option hooks.OptionFunc) error {
		option("-f, --format <format>", "Output format: es, cjs, umd, umd-min", nil)(hooks.Prompt{
			Name:      "format",
			Kind:      hooks.PromptCheckbox,
			Message:   "Select output formats:",
			Choices:   buildFormats,
			Transform: joinAnswer,
		})
		return nil
	}); err != nil {
		return err
	}

	return api.Publish().CLI(func(option hooks.OptionFunc) error {
		option("-s, --skip <skip>", "Will skip steps, e.g: 'lint', 'lint,build'", nil)
		return nil
	})
}

// Fallback returns the handlers registered for cmd when no plugin handles it.
// It returns nil for a command without builtin behavior.
func (b *Builtins) Fallback(cmd consts.Command) func(api *hooks.CommandAPI) error {
	switch cmd {
	case consts.Create:
		return b.createFallback
	case consts.Deps:
		return b.depsFallback
	case consts.Glint:
		return b.glintFallback
	case consts.Publish:
		return b.publishFallback
	case consts.Build, consts.Test, consts.Doc, consts.Demo, consts.Serve:
		return b.scriptFallback
	default:
		return nil
	}
}

// siblingNames returns the manifest names of the workspace packages, or nil
// when the workspace cannot be read.
func (b *Builtins) siblingNames(workspace string) []string {
	metas, err := manifest.Metas(b.fs, b.reader, b.root, workspace)
	if err != nil {
		b.logger.Logf("Could not list packages of %s: %v", workspace, err)
		return nil
	}
	names := make([]string, 0, len(metas))
	for _, pkg := range metas {
		names = append(names, pkg.Name)
	}
	slices.Sort(names)
	return names
}
