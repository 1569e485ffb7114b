package main

import (
	"github.com/siujs/cli/pkg/builtins"
	"github.com/siujs/cli/pkg/consts"
	"github.com/siujs/cli/pkg/options"
	"github.com/spf13/cobra"
)

func createDepsCmd(getSession sessionFunc) *cobra.Command {
	var (
		pkg    string
		remove bool
	)

	depsCmd := &cobra.Command{
		Use:   "deps <deps>",
		Short: "Add or remove dependencies of a package or of the root",
		Long: `Add or remove dependencies of a package, or of the monorepo root when
no package is given. A ":D" suffix marks a dev dependency.

Examples:
  siu deps lodash,vitest:D -p foo
  siu deps lodash@4.17.21
  siu deps lodash --rm -p foo`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := getSession()
			if err != nil {
				return err
			}
			if err := session.CheckWorkspace(); err != nil {
				return err
			}
			if pkg != "" {
				if err := session.CheckPackages(pkg); err != nil {
					return err
				}
			}

			opts := options.Options{
				Pkg:       pkg,
				Workspace: session.Workspace(),
				Deps:      args[0],
				Action:    builtins.ActionAdd,
			}
			if remove {
				opts.Action = builtins.ActionRemove
			}
			if err := session.PluginOptions(cmd, consts.Deps, &opts); err != nil {
				return err
			}
			return session.Run(cmd.Context(), consts.Deps, opts)
		},
	}

	depsCmd.Flags().StringVarP(&pkg, "pkg", "p", "", "Package receiving the dependencies")
	depsCmd.Flags().BoolVarP(&remove, "rm", "r", false, "Remove the dependencies instead of adding them")

	return depsCmd
}
