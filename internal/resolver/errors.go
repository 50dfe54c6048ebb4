package resolver

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingDependency indicates a declared requirement is not in the catalog.
	ErrMissingDependency = errors.New("missing dependency")

	// ErrCyclicDependency indicates the requirement graph contains a cycle.
	ErrCyclicDependency = errors.New("cyclic dependency")
)

// MissingDependencyError reports a requirement that could not be found.
type MissingDependencyError struct {
	// Name is the requirement that is not in the catalog
	Name string

	// RequiredBy is the package that declares the requirement
	RequiredBy string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("%v: %s (required by %s)", ErrMissingDependency, e.Name, e.RequiredBy)
}

func (e *MissingDependencyError) Unwrap() error {
	return ErrMissingDependency
}

// CyclicDependencyError reports a requirement cycle. Cycle starts and ends
// with the same package name.
type CyclicDependencyError struct {
	Cycle []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("%v: %s", ErrCyclicDependency, strings.Join(e.Cycle, " -> "))
}

func (e *CyclicDependencyError) Unwrap() error {
	return ErrCyclicDependency
}
