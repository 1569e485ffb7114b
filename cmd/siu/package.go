package main

import (
	"fmt"

	"github.com/siujs/cli/pkg/consts"
	"github.com/siujs/cli/pkg/options"
	"github.com/spf13/cobra"
)

// packageCmdParams describes a command that runs once per workspace package.
type packageCmdParams struct {
	command consts.Command
	short   string
	// watch adds --watch, rerunning the command when the configuration changes.
	watch bool
}

func createPackageCmd(getSession sessionFunc, params packageCmdParams) *cobra.Command {
	var (
		pkg   string
		watch bool
	)

	packageCmd := &cobra.Command{
		Use:   fmt.Sprintf("%s [--pkg <pkgs>]", params.command),
		Short: params.short,
		Long: fmt.Sprintf(`%s.

Examples:
  siu %[2]s
  siu %[2]s -p foo,bar`, params.short, params.command),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			opts := options.Options{Pkg: pkg, Workspace: session.Workspace()}
			if err := session.PluginOptions(cmd, params.command, &opts); err != nil {
				return err
			}
			if watch {
				return session.Watch(cmd.Context(), params.command, opts)
			}
			return session.Run(cmd.Context(), params.command, opts)
		},
	}

	packageCmd.Flags().StringVarP(&pkg, "pkg", "p", "", "Comma separated packages to run on, all when empty")
	if params.watch {
		packageCmd.Flags().BoolVar(&watch, "watch", false, "Run again every time the configuration changes")
	}

	return packageCmd
}

func createDocCmd(getSession sessionFunc) *cobra.Command {
	return createPackageCmd(getSession, packageCmdParams{command: consts.Doc, short: "Generate the documentation of packages"})
}

func createDemoCmd(getSession sessionFunc) *cobra.Command {
	return createPackageCmd(getSession, packageCmdParams{command: consts.Demo, short: "Run the demo of packages"})
}

func createServeCmd(getSession sessionFunc) *cobra.Command {
	return createPackageCmd(getSession, packageCmdParams{command: consts.Serve, short: "Serve packages for development", watch: true})
}

func createTestCmd(getSession sessionFunc) *cobra.Command {
	return createPackageCmd(getSession, packageCmdParams{command: consts.Test, short: "Test packages"})
}

func createBuildCmd(getSession sessionFunc) *cobra.Command {
	return createPackageCmd(getSession, packageCmdParams{command: consts.Build, short: "Build packages", watch: true})
}
