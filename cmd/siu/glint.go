package main

import (
	"github.com/siujs/cli/cmd/siu/internal/cli"
	"github.com/siujs/cli/internal/naming"
	"github.com/siujs/cli/pkg/builtins"
	"github.com/siujs/cli/pkg/consts"
	"github.com/siujs/cli/pkg/options"
	"github.com/spf13/cobra"
)

func createGlintCmd(getSession sessionFunc) *cobra.Command {
	var hook string

	glintCmd := &cobra.Command{
		Use:   "glint [commit-edit-msg]",
		Short: "Lint staged files or the commit message from a git hook",
		Long: `Lint staged files or the commit message from a git hook.

Examples:
  siu glint --hook pre-commit
  siu glint --hook commit-msg .git/COMMIT_EDITMSG`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := getSession()
			if err != nil {
				return err
			}

			if hook == "" {
				if !session.Interactive {
					return cli.ErrHookRequired
				}
				if hook, err = session.Deps.Prompt.Select("Select git hook:", builtins.GitHooks); err != nil {
					return err
				}
			}

			opts := options.Options{
				Workspace: session.Workspace(),
				Hook:      naming.Camelize(hook, false),
			}
			if len(args) == 1 {
				opts.CommitEditMsg = args[0]
			}
			if err := session.PluginOptions(cmd, consts.Glint, &opts); err != nil {
				return err
			}
			return session.Run(cmd.Context(), consts.Glint, opts)
		},
	}

	glintCmd.Flags().StringVarP(&hook, "hook", "h", "", "Git hook name, e.g. pre-commit or commit-msg")

	return glintCmd
}
