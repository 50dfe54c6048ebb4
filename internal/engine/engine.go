// Package engine provides the core business logic for sbplan operations.
//
// The engine package acts as the orchestration layer between CLI commands and
// lower-level operations. It coordinates catalog lookups, dependency
// resolution, plan classification, and plan execution through a backend.
//
// Key components:
//   - Engine: Main orchestrator that coordinates all operations
//   - Plan/Execute: Builds a plan for a package and runs it
//   - Order/Dependents/Info/List: Read-only catalog views
//   - Sync/Export: Repository refresh and catalog snapshots
package engine

import (
	"github.com/rs/zerolog"

	"github.com/danieljhkim/sbplan/internal/backend"
	"github.com/danieljhkim/sbplan/internal/catalog"
	"github.com/danieljhkim/sbplan/internal/clock"
	"github.com/danieljhkim/sbplan/internal/executor"
	"github.com/danieljhkim/sbplan/internal/fsops"
	"github.com/danieljhkim/sbplan/internal/logging"
)

// Engine orchestrates all sbplan operations.
// It is the main API surface called by the CLI.
type Engine struct {
	catalog *catalog.Catalog
	backend backend.Backend
	fs      fsops.FS
	clock   clock.Clock
	logger  zerolog.Logger
}

// New creates a new Engine with the given dependencies.
func New(
	cat *catalog.Catalog,
	b backend.Backend,
	fs fsops.FS,
	clk clock.Clock,
) *Engine {
	return &Engine{
		catalog: cat,
		backend: b,
		fs:      fs,
		clock:   clk,
		logger:  logging.GetLogger("engine"),
	}
}

// Catalog returns the catalog the engine plans against.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Backend returns the backend used for execution.
func (e *Engine) Backend() backend.Backend {
	return e.backend
}

func (e *Engine) newExecutor() *executor.Executor {
	return executor.New(e.backend, e.clock)
}

// lookup returns the named package or ErrPackageNotFound.
func (e *Engine) lookup(name string) (*catalog.Package, error) {
	pkg, ok := e.catalog.Lookup(name)
	if !ok {
		return nil, &PackageNotFoundError{Name: name}
	}
	return pkg, nil
}
