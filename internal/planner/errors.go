package planner

import "errors"

var (
	// ErrInvalidAction indicates an unknown action name.
	ErrInvalidAction = errors.New("invalid action")

	// ErrTargetLocked indicates an attempt to deselect the requested package.
	ErrTargetLocked = errors.New("requested package cannot be deselected")

	// ErrIndexOutOfRange indicates a plan entry index that does not exist.
	ErrIndexOutOfRange = errors.New("plan entry index out of range")

	// ErrUnknownPackage indicates the requested package is not in the catalog.
	ErrUnknownPackage = errors.New("unknown package")
)
