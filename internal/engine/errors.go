package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrPackageNotFound indicates the requested package is not in the catalog.
	ErrPackageNotFound = errors.New("package not found")

	// ErrNotInPlan indicates a skipped package that is not part of the plan.
	ErrNotInPlan = errors.New("package is not part of the plan")

	// ErrNothingToDo indicates a plan with no included entries.
	ErrNothingToDo = errors.New("nothing to do")

	// ErrSyncFailed indicates the repository sync command failed.
	ErrSyncFailed = errors.New("repository sync failed")

	// ErrInvalidFilter indicates an unknown list filter.
	ErrInvalidFilter = errors.New("invalid list filter")
)

// PackageNotFoundError reports an unknown package name.
type PackageNotFoundError struct {
	Name string
}

func (e *PackageNotFoundError) Error() string {
	return fmt.Sprintf("package not found: %s", e.Name)
}

func (e *PackageNotFoundError) Is(target error) bool {
	return target == ErrPackageNotFound
}
