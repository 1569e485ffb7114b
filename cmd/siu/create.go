package main

import (
	"github.com/siujs/cli/pkg/consts"
	"github.com/siujs/cli/pkg/options"
	"github.com/spf13/cobra"
)

func createCreateCmd(getSession sessionFunc) *cobra.Command {
	createCmd := &cobra.Command{
		Use:   "create <pkgs>",
		Short: "Create one or more packages in the workspace",
		Long: `Create one or more packages in the workspace.

Examples:
  siu create foo
  siu create @scope/foo,bar
  siu create foo --deps bar`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := getSession()
			if err != nil {
				return err
			}
			if err := session.CheckWorkspace(); err != nil {
				return err
			}
			if err := session.CheckNewPackages(args[0]); err != nil {
				return err
			}

			opts := options.Options{Pkg: args[0], Workspace: session.Workspace()}
			if err := session.PluginOptions(cmd, consts.Create, &opts); err != nil {
				return err
			}
			return session.Run(cmd.Context(), consts.Create, opts)
		},
	}

	return createCmd
}
