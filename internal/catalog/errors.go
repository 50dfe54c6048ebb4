package catalog

import "errors"

var (
	// ErrInvalidPackage indicates a package record is malformed.
	ErrInvalidPackage = errors.New("invalid package")

	// ErrDuplicatePackage indicates two packages share a name.
	ErrDuplicatePackage = errors.New("duplicate package")

	// ErrNotFound indicates a package is not in the catalog.
	ErrNotFound = errors.New("package not found")

	// ErrUnsupportedFormat indicates a snapshot file extension is not recognized.
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
)
