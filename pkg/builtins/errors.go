package builtins

import "errors"

var (
	// ErrInvalidCommitMessage is returned by the commit-msg lint for a message
	// that does not follow the conventional format.
	ErrInvalidCommitMessage = errors.New("invalid commit message format")
	// ErrCommitMessageMissing is returned when no commit message file can be read.
	ErrCommitMessageMissing = errors.New("commit message not found")
	// ErrNoDeps is returned when the deps command is given nothing to change.
	ErrNoDeps = errors.New("no dependency given")
	// ErrUnknownAction is returned for a deps action other than add or rm.
	ErrUnknownAction = errors.New("unknown deps action")
	// ErrScriptFailed is returned when an npm command exits with an error.
	ErrScriptFailed = errors.New("npm command failed")
	// ErrInvalidVersion is returned when publish is given a malformed version.
	ErrInvalidVersion = errors.New("invalid version")
)
