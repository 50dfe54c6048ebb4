package engine

import (
	"github.com/danieljhkim/sbplan/internal/executor"
	"github.com/danieljhkim/sbplan/internal/planner"
)

// PlanRequest represents a request to plan an action on a package.
type PlanRequest struct {
	// Package is the name of the requested package
	Package string

	// Action is the operation requested for Package
	Action planner.Action

	// ResolveDeps plans the package's prerequisites too; false plans it alone
	ResolveDeps bool

	// SelectAll includes every dependency entry
	SelectAll bool

	// Skip lists dependency names to exclude from the plan
	Skip []string
}

// ExecuteRequest represents a request to execute a plan.
type ExecuteRequest struct {
	// Plan is the plan to execute
	Plan *planner.Plan

	// DryRun reports the included entries without calling the backend
	DryRun bool

	// Hooks receive progress and answer soft failures
	Hooks executor.Hooks
}

// ListFilter selects the packages returned by List.
type ListFilter string

// ListFilter constants
const (
	ListAll        ListFilter = "all"
	ListInstalled  ListFilter = "installed"
	ListUpgradable ListFilter = "upgradable"
)

// ListRequest represents a request to list catalog packages.
type ListRequest struct {
	Filter ListFilter

	// Category restricts the listing to one category when not empty
	Category string
}

// ExportRequest represents a request to write a catalog snapshot.
type ExportRequest struct {
	// Path is the snapshot file; its extension selects YAML or TOML
	Path string
}
