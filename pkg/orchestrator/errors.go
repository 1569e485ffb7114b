package orchestrator

import "errors"

var (
	// ErrPluginLoad is returned when a configured plugin cannot be loaded or applied.
	ErrPluginLoad = errors.New("failed to load plugin")
	// ErrFallback is returned when the command fallback fails to register its hooks.
	ErrFallback = errors.New("failed to register command fallback")
	// ErrPackageOrder is returned when the target packages cannot be resolved.
	ErrPackageOrder = errors.New("failed to resolve packages")
	// ErrRunFailed is returned by Report.Err when at least one plugin failed.
	ErrRunFailed = errors.New("plugins reported failures")
	// ErrCleanPool is returned when the clean worker pool cannot be created.
	ErrCleanPool = errors.New("failed to create clean worker pool")
)
