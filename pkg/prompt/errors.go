// Package prompt asks the user for the values of options left empty on the command line.
package prompt

import "errors"

// Error definitions for prompt package.
var (
	ErrInvalidConfirmationInput = errors.New("invalid input: please enter 'y' or 'n'")
	ErrNoChoices                = errors.New("no choices available")
	ErrAborted                  = errors.New("prompt aborted")
	ErrUnknownKind              = errors.New("unknown prompt kind")
)
