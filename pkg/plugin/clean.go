package plugin

import (
	"context"

	"github.com/siujs/cli/pkg/consts"
	"github.com/siujs/cli/pkg/hooks"
)

// Clean drops every key of the plugin, then runs the clean handlers of the
// last processed command for pkg.
func (p *Plugin) Clean(ctx context.Context, pkg string) error {
	removed := p.store.DeletePrefix(hooks.PluginPrefix(p.id))
	p.logger.Logf("Cleaned %d keys for package %q", removed, pkg)

	p.mu.Lock()
	cmd := p.lastCmd
	opts := p.opts[cmd].Clone()
	p.mu.Unlock()

	if cmd == "" || !p.registry.Has(cmd, consts.StageClean) {
		return nil
	}

	scope := hooks.Scope{PluginID: p.id, Command: cmd, Package: pkg, Stage: consts.StageClean}
	errs := p.invokeAll(ctx, scope, opts, p.console.Indent("    "))
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// CallHookForTest runs the handlers of one stage of cmd for pkg and returns
// the context they ran with. It does not drive the lifecycle.
func (p *Plugin) CallHookForTest(ctx context.Context, cmd consts.Command, stage consts.Stage, pkg string) (*hooks.Context, error) {
	p.mu.Lock()
	p.lastCmd = cmd
	opts := p.opts[cmd].Clone()
	p.mu.Unlock()

	scope := hooks.Scope{PluginID: p.id, Command: cmd, Package: pkg, Stage: stage}
	errs := p.invokeAll(ctx, scope, opts, p.console)

	c := p.newContext(ctx, scope, opts, p.console)
	if len(errs) > 0 {
		return c, errs[0]
	}
	return c, nil
}
