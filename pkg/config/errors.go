package config

import "errors"

// Error definitions for config package.
var (
	// Configuration file errors.
	ErrConfigNotFound  = errors.New("siu configuration not found")
	ErrConfigFileRead  = errors.New("failed to read config file")
	ErrConfigFileParse = errors.New("failed to parse config file")
	ErrConfigInvalid   = errors.New("invalid configuration")

	// Configuration validation errors.
	ErrWorkspaceEmpty         = errors.New("workspace cannot be empty")
	ErrUnknownPkgsOrder       = errors.New("pkgs_order must be auto, priority or a list of packages")
	ErrPluginIDEmpty          = errors.New("plugin id cannot be empty")
	ErrNegativeHandlerTimeout = errors.New("handler_timeout cannot be negative")
	ErrUnknownCommand         = errors.New("unknown command in configuration")

	// Watch errors.
	ErrFingerprint = errors.New("failed to fingerprint config file")
)
