package plugin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/siujs/cli/pkg/consts"
	"github.com/siujs/cli/pkg/hooks"
	"github.com/siujs/cli/pkg/logger"
	"github.com/siujs/cli/pkg/options"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// Process runs the lifecycle of cmd for pkg: start, process then complete,
// switching to the error stage as soon as an error is captured.
// pkg is the manifest name of the package, empty for workspace commands.
// The captured error, if any, is returned after the error stage ran.
func (p *Plugin) Process(ctx context.Context, cmd consts.Command, opts options.Options, pkg string) error {
	hasStart := p.registry.Has(cmd, consts.StageStart)
	hasProcess := p.registry.Has(cmd, consts.StageProcess)
	if !hasStart && !hasProcess {
		return nil
	}

	stage := consts.StageProcess
	if hasStart {
		stage = consts.StageStart
	}

	merged := p.mergeOpts(cmd, opts)
	started := time.Now()

	ctx, span := p.tracer.Start(ctx, "plugin.process", trace.WithAttributes(
		attribute.String("siu.plugin", p.id),
		attribute.String("siu.command", string(cmd)),
		attribute.String("siu.package", pkg),
	))
	defer span.End()

	tag := p.id + ":" + string(cmd)
	p.console.Indent("  ").OpenTag(tag)
	p.console.Blank()
	body := p.console.Indent("    ")

	scope := hooks.Scope{PluginID: p.id, Command: cmd, Package: pkg}
	slot := p.newContext(ctx, scope, merged, body)
	// A handler that timed out in an earlier run may still write to the slot.
	slot.SetEx(nil)

	for {
		p.runStage(ctx, scope, stage, merged, body)
		if p.gotoError(ctx, slot, scope, merged, body) {
			break
		}

		if stage == consts.StageStart && hasProcess {
			stage = consts.StageProcess
			continue
		}
		if stage == consts.StageProcess && p.registry.Has(cmd, consts.StageComplete) {
			stage = consts.StageComplete
			continue
		}
		break
	}

	p.console.Blank()
	p.console.Indent("  ").CloseTag(tag)

	captured := slot.Ex()
	p.metrics.ProcessObserved(p.id, cmd, time.Since(started), captured != nil)
	if captured != nil {
		span.RecordError(captured)
		span.SetStatus(codes.Error, captured.Error())
	}
	return captured
}

// gotoError runs the error stage when an error has been captured for the scope.
func (p *Plugin) gotoError(ctx context.Context, slot *hooks.Context, scope hooks.Scope, opts options.Options, console *logger.Console) bool {
	ex := slot.Ex()
	if ex == nil {
		return false
	}

	p.logger.Logf("Detected error in %s for package %q: %v", consts.HookID(scope.Command, scope.Stage), scope.Package, ex)
	console.ErrorBlock(ex)

	if !p.registry.Has(scope.Command, consts.StageError) {
		p.logger.Logf("No error handler for %s, error kept in store", scope.Command)
		return true
	}

	scope.Stage = consts.StageError
	for _, err := range p.invokeAll(ctx, scope, opts, console) {
		p.logger.Logf("Error handler of %s failed: %v", scope.Command, err)
	}
	return true
}

// runStage runs every handler of a stage and captures the first failure.
func (p *Plugin) runStage(ctx context.Context, scope hooks.Scope, stage consts.Stage, opts options.Options, console *logger.Console) {
	scope.Stage = stage
	errs := p.invokeAll(ctx, scope, opts, console)
	if len(errs) == 0 {
		return
	}
	p.newContext(ctx, scope, opts, console).SetEx(errs[0])
}

// invokeAll runs the handlers of scope concurrently and waits for all of them.
// Errors are returned in registration order.
func (p *Plugin) invokeAll(ctx context.Context, scope hooks.Scope, opts options.Options, console *logger.Console) []error {
	handlers := p.registry.Handlers(scope.Command, scope.Stage)
	errs := make([]error, len(handlers))

	var g errgroup.Group
	for i, handler := range handlers {
		g.Go(func() error {
			errs[i] = p.invoke(ctx, scope, opts, console, handler)
			return errs[i]
		})
	}
	if err := g.Wait(); err == nil {
		return nil
	}

	// Wait reports whichever failure came first; keep registration order.
	out := errs[:0]
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}

// invoke runs one handler with panic recovery and the configured timeout.
func (p *Plugin) invoke(ctx context.Context, scope hooks.Scope, opts options.Options, console *logger.Console, handler hooks.Handler) (err error) {
	hook := consts.HookID(scope.Command, scope.Stage)
	started := time.Now()
	defer func() {
		p.metrics.HookInvoked(p.id, scope.Command, scope.Stage, time.Since(started))
		if err != nil {
			p.metrics.HookFailed(p.id, scope.Command, scope.Stage)
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}

	handler = hooks.Logged(p.logger, handler)
	if p.timeout <= 0 {
		return safeCall(handler, p.newContext(ctx, scope, opts, console))
	}

	hctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- safeCall(handler, p.newContext(hctx, scope, opts, console))
	}()

	select {
	case err = <-done:
		if err == nil || !errors.Is(hctx.Err(), context.DeadlineExceeded) || ctx.Err() != nil {
			return err
		}
	case <-hctx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return fmt.Errorf("%w: %s after %s", ErrHandlerTimedOut, hook, p.timeout)
}

func safeCall(handler hooks.Handler, c *hooks.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrHandlerPanicked, consts.HookID(c.Command(), c.Stage()), r)
		}
	}()
	return handler(c)
}
