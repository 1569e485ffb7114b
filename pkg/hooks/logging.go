package hooks

import (
	"time"

	"github.com/siujs/cli/pkg/consts"
	"github.com/siujs/cli/pkg/logger"
)

// Logged wraps handler so its start, duration and failure are logged.
func Logged(l logger.Logger, handler Handler) Handler {
	return func(c *Context) error {
		scope := c.Scope()
		hook := consts.HookID(scope.Command, scope.Stage)
		started := time.Now()

		l.Logf("Starting hook: %s plugin=%s package=%q", hook, scope.PluginID, scope.Package)
		err := handler(c)
		if err != nil {
			l.Logf("Hook failed: %s plugin=%s package=%q after %s: %v", hook, scope.PluginID, scope.Package, time.Since(started), err)
			return err
		}
		l.Logf("Hook completed: %s plugin=%s package=%q in %s", hook, scope.PluginID, scope.Package, time.Since(started))
		return nil
	}
}
