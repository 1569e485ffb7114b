package cli

import (
	"github.com/spf13/cobra"
)

// Globals are the flags shared by every command.
type Globals struct {
	// Workspace overrides the configured workspace directory.
	Workspace string
	// NoStrict lets siu run outside a configured monorepo.
	NoStrict bool
	// Debug switches the engine logger to JSON debug output on stderr.
	Debug bool
	// MetricsFile receives the hook metrics in the Prometheus text format.
	MetricsFile string
}

// Bind registers the global flags as persistent flags of cmd.
func (g *Globals) Bind(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&g.Workspace, "workspace", "w", "", "Workspace directory holding the packages")
	flags.BoolVarP(&g.NoStrict, "no-strict", "S", false, "Run even when no siu configuration is found")
	flags.BoolVarP(&g.Debug, "debug", "D", false, "Enable debug logging")
	flags.StringVar(&g.MetricsFile, "metrics-file", "", "Write hook metrics to this file")
}

// Prescan reads the global flags from args before the commands exist.
// Plugin options are only known once the configuration is loaded, which
// depends on these flags.
func Prescan(args []string) Globals {
	var g Globals
	pre := &cobra.Command{
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	}
	g.Bind(pre)
	_ = pre.ParseFlags(args)
	return g
}
