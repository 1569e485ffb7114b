package manifest

import "errors"

// Error definitions for manifest package.
var (
	ErrManifestRead     = errors.New("failed to read package manifest")
	ErrManifestParse    = errors.New("failed to parse package manifest")
	ErrManifestWrite    = errors.New("failed to write package manifest")
	ErrInvalidJSON      = errors.New("invalid JSON")
	ErrNotAnObject      = errors.New("manifest is not a JSON object")
	ErrPackageNotCached = errors.New("package is not cached")
	ErrWorkspaceMissing = errors.New("workspace directory does not exist")
)

// Package name errors.
var (
	ErrNameEmpty        = errors.New("package name cannot be empty")
	ErrNameSpaces       = errors.New("package name cannot contain leading or trailing spaces")
	ErrNameTooLong      = errors.New("package name cannot be longer than 214 characters")
	ErrNameLeadingChar  = errors.New("package name cannot start with a period or an underscore")
	ErrNameReserved     = errors.New("package name is reserved")
	ErrNameUppercase    = errors.New("package name cannot contain capital letters")
	ErrNameSpecialChars = errors.New("package name cannot contain special characters (\"~'!()*\")")
	ErrNameNotURLSafe   = errors.New("package name can only contain URL-friendly characters")
)
