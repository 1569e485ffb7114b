package git

import "errors"

// Git-specific error types.
var (
	ErrNotRepository = errors.New("not a git repository")
	ErrCommandFailed = errors.New("git command failed")
)
