package pkgorder

import "errors"

// ErrUnknownMode is returned for an ordering mode other than auto or priority.
var ErrUnknownMode = errors.New("unknown package order mode")
