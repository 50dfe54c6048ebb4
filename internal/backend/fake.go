package backend

import (
	"context"

	"github.com/danieljhkim/sbplan/internal/catalog"
)

// Call records one operation received by a Fake.
type Call struct {
	Op      Op
	Package string
}

// Fake is an in-memory Backend that records calls and returns scripted
// statuses. Packages without a scripted status succeed.
type Fake struct {
	// Statuses maps package names to the status every operation on them returns
	Statuses map[string]ExitStatus

	// SyncStatus is returned by Sync
	SyncStatus ExitStatus

	Calls []Call
}

// NewFake creates a Fake with no scripted failures.
func NewFake() *Fake {
	return &Fake{Statuses: make(map[string]ExitStatus)}
}

// Fail scripts status for every operation on name and returns the Fake.
func (f *Fake) Fail(name string, status ExitStatus) *Fake {
	f.Statuses[name] = status
	return f
}

// Name returns "fake".
func (f *Fake) Name() string { return "fake" }

func (f *Fake) Install(ctx context.Context, pkg *catalog.Package) ExitStatus {
	return f.record(OpInstall, pkg.Name)
}

func (f *Fake) Upgrade(ctx context.Context, pkg *catalog.Package) ExitStatus {
	return f.record(OpUpgrade, pkg.Name)
}

func (f *Fake) Remove(ctx context.Context, pkg *catalog.Package) ExitStatus {
	return f.record(OpRemove, pkg.Name)
}

func (f *Fake) Sync(ctx context.Context) ExitStatus {
	f.Calls = append(f.Calls, Call{Op: OpSync})
	return f.SyncStatus
}

// Names returns the package names of the recorded calls, in order.
func (f *Fake) Names() []string {
	var names []string
	for _, c := range f.Calls {
		if c.Package != "" {
			names = append(names, c.Package)
		}
	}
	return names
}

func (f *Fake) record(op Op, name string) ExitStatus {
	f.Calls = append(f.Calls, Call{Op: op, Package: name})
	return f.Statuses[name]
}
