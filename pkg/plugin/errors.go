package plugin

import "errors"

var (
	// ErrHandlerTimedOut is captured when a handler exceeds the configured timeout.
	ErrHandlerTimedOut = errors.New("hook handler timed out")
	// ErrHandlerPanicked is captured when a handler panics.
	ErrHandlerPanicked = errors.New("hook handler panicked")
	// ErrFactory is returned when a plugin factory fails to register its hooks.
	ErrFactory = errors.New("plugin factory failed")
	// ErrCLIOptions is returned when a CLI option handler fails.
	ErrCLIOptions = errors.New("failed to collect CLI options")
	// ErrEmptyID is returned when a plugin is created without id.
	ErrEmptyID = errors.New("plugin id is empty")
)
