package builtins

import (
	"github.com/siujs/cli/pkg/consts"
	"github.com/siujs/cli/pkg/hooks"
)

// FormatEnv carries the requested build formats to the build script.
const FormatEnv = "SIU_BUILD_FORMAT"

// scriptFallback runs the npm script named after the command in the package
// directory. Packages without such a script are skipped.
func (b *Builtins) scriptFallback(api *hooks.CommandAPI) error {
	cmd := api.Command()
	return api.Process(func(c *hooks.Context) error {
		pkg, err := c.Pkg()
		if err != nil {
			return err
		}
		if !hasScript(pkg.Meta, string(cmd)) {
			c.Printf("No %q script in %s, skipped", cmd, pkg.Name)
			return nil
		}

		params := npmParams{Dir: pkg.Path, Args: []string{"run", string(cmd)}, Stream: c.Output()}
		if format := c.Opts().Format; cmd == consts.Build && format != "" {
			params.Env = []string{FormatEnv + "=" + format}
		}
		return b.npm(c.Context(), params)
	})
}
