package backend

import "errors"

// ErrUnknownManager indicates a package manager without a preset.
var ErrUnknownManager = errors.New("unknown package manager")
