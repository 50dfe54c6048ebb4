package engine

import (
	"github.com/danieljhkim/sbplan/internal/backend"
	"github.com/danieljhkim/sbplan/internal/catalog"
	"github.com/danieljhkim/sbplan/internal/executor"
	"github.com/danieljhkim/sbplan/internal/planner"
)

// PlanResult represents the result of planning.
type PlanResult struct {
	// Plan is the generated plan
	Plan *planner.Plan `json:"plan"`

	// Skipped lists the dependency names excluded by the request
	Skipped []string `json:"skipped,omitempty"`

	// DependenciesSelected is false when required dependencies are excluded
	DependenciesSelected bool `json:"dependencies_selected"`
}

// ExecuteResult represents the result of executing a plan.
type ExecuteResult struct {
	// Result is the executor outcome; nil for a dry run
	Result *executor.Result `json:"result,omitempty"`

	// Planned is the list of entries that were (or would be) run
	Planned []planner.Entry `json:"planned"`

	DryRun bool `json:"dry_run"`
}

// OrderResult represents a build order view.
type OrderResult struct {
	Package string `json:"package"`

	// Order lists the prerequisites in build order followed by the package
	Order []*catalog.Package `json:"order"`
}

// DependentsResult lists the packages that require a package.
type DependentsResult struct {
	Package    string             `json:"package"`
	Dependents []*catalog.Package `json:"dependents"`
}

// ListResult represents the result of a listing.
type ListResult struct {
	Filter   ListFilter         `json:"filter"`
	Packages []*catalog.Package `json:"packages"`
}

// SyncResult represents the result of a repository sync.
type SyncResult struct {
	Backend string             `json:"backend"`
	Status  backend.ExitStatus `json:"status"`
}

// ExportResult represents the result of a catalog export.
type ExportResult struct {
	Path     string `json:"path"`
	Packages int    `json:"packages"`
}
