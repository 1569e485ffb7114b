package main

import (
	"github.com/siujs/cli/pkg/consts"
	"github.com/siujs/cli/pkg/options"
	"github.com/spf13/cobra"
)

func createPublishCmd(getSession sessionFunc) *cobra.Command {
	var opts options.Options

	publishCmd := &cobra.Command{
		Use:   "publish [--ver <version>] [--dry-run]",
		Short: "Lint, build, version and publish the public packages",
		Long: `Lint, build, version and publish the public packages.

Examples:
  siu publish --dry-run
  siu publish --ver 1.2.0 --repo https://registry.npmjs.org
  siu publish --skip lint,build`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := getSession()
			if err != nil {
				return err
			}
			if err := session.CheckWorkspace(); err != nil {
				return err
			}
			if opts.Pkg != "" {
				if err := session.CheckPackages(opts.Pkg); err != nil {
					return err
				}
			}

			run := opts.Clone()
			run.Workspace = session.Workspace()
			if cmd.Flags().Changed("dry-run") {
				run.Set(options.KeyDryRun, opts.DryRun)
			}
			if err := session.PluginOptions(cmd, consts.Publish, &run); err != nil {
				return err
			}
			return session.Run(cmd.Context(), consts.Publish, run)
		},
	}

	publishCmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "Show what would be published without publishing")
	publishCmd.Flags().StringVarP(&opts.Ver, "ver", "v", "", "Version to publish: x.y.z, independent or auto")
	publishCmd.Flags().StringVarP(&opts.Repo, "repo", "r", "", "Registry to publish to")
	publishCmd.Flags().StringVarP(&opts.Pkg, "pkg", "p", "", "Comma separated packages to publish, all when empty")

	return publishCmd
}
