package engine

import "github.com/danieljhkim/sbplan/internal/catalog"

// PackageInfo contains detailed information about a package.
type PackageInfo struct {
	// Package is the catalog record
	Package *catalog.Package `json:"package"`

	// Requires is the effective requirement list used for resolution
	Requires []string `json:"requires"`

	// Dependents lists installed and available packages that require this one
	Dependents []string `json:"dependents"`

	// BuildOrder lists the resolved prerequisites, empty if resolution failed
	BuildOrder []string `json:"build_order"`

	// ResolveError describes why the prerequisites could not be resolved
	ResolveError string `json:"resolve_error,omitempty"`

	// ReadmeRequired is set when the requirements include the README marker
	ReadmeRequired bool `json:"readme_required"`
}
