package planner

import (
	"fmt"
	"strings"

	"github.com/danieljhkim/sbplan/internal/catalog"
)

// Conflict represents a problem detected while checking a plan.
type Conflict struct {
	// Package is the package whose removal causes the conflict
	Package string `json:"package"`

	// Reason is a human-readable explanation of the conflict
	Reason string `json:"reason"`

	// RequiredBy lists the installed packages that still need Package
	RequiredBy []string `json:"required_by"`
}

// DependentsSource reports which packages require a given package.
// *catalog.Catalog implements it.
type DependentsSource interface {
	Dependents(name string) []*catalog.Package
}

// ConflictChecker checks removal plans against the installed packages.
type ConflictChecker struct {
	src DependentsSource
}

// NewConflictChecker creates a new ConflictChecker.
func NewConflictChecker(src DependentsSource) *ConflictChecker {
	return &ConflictChecker{src: src}
}

// Check returns one Conflict for every included Remove entry that is still
// required by an installed package not removed by the same plan. Plans for
// other actions never conflict.
func (c *ConflictChecker) Check(plan *Plan) []Conflict {
	removing := make(map[string]bool)
	for _, e := range plan.Entries {
		if e.Included && e.Action == ActionRemove {
			removing[e.Name()] = true
		}
	}

	var conflicts []Conflict
	for _, e := range plan.Entries {
		if !removing[e.Name()] {
			continue
		}

		var users []string
		for _, dep := range c.src.Dependents(e.Name()) {
			if dep.Installed && !removing[dep.Name] {
				users = append(users, dep.Name)
			}
		}
		if len(users) == 0 {
			continue
		}

		conflicts = append(conflicts, Conflict{
			Package:    e.Name(),
			Reason:     fmt.Sprintf("still required by %s", strings.Join(users, ", ")),
			RequiredBy: users,
		})
	}

	return conflicts
}
