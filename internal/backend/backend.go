// Package backend runs package operations through an external package
// manager such as sbopkg, sbotools or slpkg.
//
// Every operation reports an ExitStatus instead of an error: the executor
// decides what a failure means for the rest of a plan.
package backend

import (
	"context"

	"github.com/danieljhkim/sbplan/internal/catalog"
)

// ExitStatus is the exit code of a backend operation.
type ExitStatus int

const (
	// StatusOK means the operation succeeded.
	StatusOK ExitStatus = 0

	// StatusFailed is reported for failures that carry no exit code of their own.
	StatusFailed ExitStatus = 1

	// StatusMissing means the backend tool could not be found.
	StatusMissing ExitStatus = 127
)

// Success reports whether the operation succeeded.
func (s ExitStatus) Success() bool {
	return s == StatusOK
}

// Missing reports whether the backend tool is not installed.
func (s ExitStatus) Missing() bool {
	return s == StatusMissing
}

// Op names a backend operation.
type Op string

// Op constants
const (
	OpInstall Op = "install"
	OpUpgrade Op = "upgrade"
	OpRemove  Op = "remove"
	OpSync    Op = "sync"
)

// Backend performs package operations. Calls block until the external tool
// exits.
type Backend interface {
	// Name identifies the package manager, e.g. "sbopkg"
	Name() string

	Install(ctx context.Context, pkg *catalog.Package) ExitStatus
	Upgrade(ctx context.Context, pkg *catalog.Package) ExitStatus
	Remove(ctx context.Context, pkg *catalog.Package) ExitStatus

	// Sync refreshes the local copy of the repository
	Sync(ctx context.Context) ExitStatus
}
