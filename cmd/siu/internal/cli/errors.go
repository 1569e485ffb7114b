// Package cli wires the siu command line to the plugin engine.
package cli

import "errors"

// Error definitions for the siu CLI.
var (
	ErrNoConfig            = errors.New("no siu configuration found")
	ErrWorkspaceMissing    = errors.New("workspace directory does not exist")
	ErrPackageExists       = errors.New("package already exists")
	ErrPackageMissing      = errors.New("package does not exist")
	ErrInvalidFlagSpec     = errors.New("invalid option flags")
	ErrWatchWithoutConfig  = errors.New("watch mode requires a configuration file")
	ErrFailedToLoadConfig  = errors.New("failed to load configuration")
	ErrFailedToWriteMetric = errors.New("failed to write metrics")
	ErrHookRequired        = errors.New("a git hook is required, pass --hook")
)
