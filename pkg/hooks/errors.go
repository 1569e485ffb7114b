package hooks

import "errors"

// Error definitions for hooks package.
var (
	ErrNilHandler     = errors.New("handler cannot be nil")
	ErrInvalidStage   = errors.New("invalid stage")
	ErrUnknownCommand = errors.New("unknown command")
	ErrNoPackage      = errors.New("no package in scope")
)
