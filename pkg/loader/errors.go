package loader

import "errors"

var (
	// ErrPluginNotFound is returned when no builtin, script or package matches a plugin id.
	ErrPluginNotFound = errors.New("plugin not found")
	// ErrScriptLoad is returned when a plugin script cannot be evaluated.
	ErrScriptLoad = errors.New("failed to load plugin script")
	// ErrScriptCall is returned when a script handler fails.
	ErrScriptCall = errors.New("plugin script handler failed")
	// ErrExecDisabled is returned when a script runs a command without allow_exec.
	ErrExecDisabled = errors.New("running commands from plugin scripts is disabled, set allow_exec")
	// ErrInvalidHookKey is returned for a Go script hook key other than "command.stage".
	ErrInvalidHookKey = errors.New("invalid hook key")
)
