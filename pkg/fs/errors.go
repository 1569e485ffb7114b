package fs

import "errors"

// Error definitions for fs package.
var (
	ErrListDirs      = errors.New("failed to list directories")
	ErrCommandFailed = errors.New("command failed")
)
