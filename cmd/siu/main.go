// Package main provides the command-line interface of siu.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/siujs/cli/cmd/siu/internal/cli"
	"github.com/spf13/cobra"
)

var globals cli.Globals

// sessionFunc returns the session of the invocation, or why it could not be built.
type sessionFunc func() (*cli.Session, error)

func newRootCmd(ctx context.Context, args []string) *cobra.Command {
	globals = cli.Prescan(args)

	rootCmd := &cobra.Command{
		Use:   "siu",
		Short: "siu - plugin driven command runner for JavaScript monorepos",
		Long: `Run lifecycle commands over the packages of a monorepo.

Every configured plugin hooks into the start, process and clean stages of a
command. Commands no plugin handles fall back to the builtin behavior.`,
		SilenceUsage: true,
	}
	globals.Bind(rootCmd)

	var (
		session  *cli.Session
		setupErr error
	)
	cwd, err := os.Getwd()
	if err == nil {
		session, setupErr = cli.NewSession(globals, cwd)
	} else {
		setupErr = err
	}
	getSession := func() (*cli.Session, error) {
		return session, setupErr
	}

	rootCmd.AddCommand(
		createCreateCmd(getSession),
		createGlintCmd(getSession),
		createDepsCmd(getSession),
		createDocCmd(getSession),
		createDemoCmd(getSession),
		createServeCmd(getSession),
		createTestCmd(getSession),
		createBuildCmd(getSession),
		createPublishCmd(getSession),
	)

	if setupErr == nil {
		setupErr = session.AttachPluginFlags(ctx, rootCmd)
	}
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd(ctx, os.Args[1:])
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
