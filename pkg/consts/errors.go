package consts

import "errors"

// Error definitions for consts package.
var (
	ErrUnknownCommand = errors.New("unknown command")
)
