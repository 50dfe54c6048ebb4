package planner

import (
	"fmt"
	"strings"

	"github.com/danieljhkim/sbplan/internal/catalog"
)

// Action is the operation planned for a single package.
type Action string

// Action constants
const (
	ActionInstall   Action = "Install"
	ActionUpgrade   Action = "Upgrade"
	ActionReinstall Action = "Reinstall"
	ActionRemove    Action = "Remove"
)

// Actions lists every action in menu order.
var Actions = []Action{ActionInstall, ActionUpgrade, ActionReinstall, ActionRemove}

// ParseAction converts a case-insensitive action name into an Action.
func ParseAction(s string) (Action, error) {
	for _, a := range Actions {
		if strings.EqualFold(s, string(a)) {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAction, s)
}

// Entry is one step of a Plan.
type Entry struct {
	// Package is a snapshot of the catalog record taken when the plan was built
	Package catalog.Package `json:"package"`

	// Action is the operation to run for this package
	Action Action `json:"action"`

	// Included reports whether the entry will be executed
	Included bool `json:"included"`
}

// Name returns the package name of the entry.
func (e Entry) Name() string {
	return e.Package.Name
}

// Plan is the ordered list of entries for one user-initiated operation.
// Dependencies come first in build order; the requested package is last.
type Plan struct {
	// Action is the action requested for the target package
	Action Action `json:"action"`

	// Entries is the ordered list of steps; the last one is the target
	Entries []Entry `json:"entries"`

	// Conflicts lists removals that would break installed packages
	Conflicts []Conflict `json:"conflicts,omitempty"`
}

// Target returns the entry for the requested package.
func (p *Plan) Target() Entry {
	return p.Entries[len(p.Entries)-1]
}

// Dependencies returns the entries that precede the target.
func (p *Plan) Dependencies() []Entry {
	return p.Entries[:len(p.Entries)-1]
}

// DependencyCount returns the number of dependency entries.
func (p *Plan) DependencyCount() int {
	return len(p.Entries) - 1
}

// IsTarget reports whether index i refers to the requested package.
func (p *Plan) IsTarget(i int) bool {
	return i == len(p.Entries)-1
}

// Toggle flips the inclusion of dependency entry i.
func (p *Plan) Toggle(i int) error {
	if i < 0 || i >= len(p.Entries) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	if p.IsTarget(i) {
		return ErrTargetLocked
	}
	p.Entries[i].Included = !p.Entries[i].Included
	return nil
}

// SelectAll includes every dependency entry and returns how many changed.
func (p *Plan) SelectAll() int {
	changed := 0
	for i := range p.Dependencies() {
		if !p.Entries[i].Included {
			p.Entries[i].Included = true
			changed++
		}
	}
	return changed
}

// AllDependenciesSelected reports whether every dependency entry is either
// included or a Reinstall of an already current package.
func (p *Plan) AllDependenciesSelected() bool {
	for _, e := range p.Dependencies() {
		if !e.Included && e.Action != ActionReinstall {
			return false
		}
	}
	return true
}

// Included returns the entries that will be executed, in order.
func (p *Plan) Included() []Entry {
	var out []Entry
	for _, e := range p.Entries {
		if e.Included {
			out = append(out, e)
		}
	}
	return out
}

// Title describes the plan as "<target> (N deps)".
func (p *Plan) Title() string {
	n := p.DependencyCount()
	noun := "dep"
	if p.Action == ActionRemove {
		noun = "installed dep"
	}
	if n != 1 {
		noun += "s"
	}
	return fmt.Sprintf("%s (%d %s)", p.Target().Name(), n, noun)
}

// HasConflicts returns true if the plan has any conflicts.
func (p *Plan) HasConflicts() bool {
	return len(p.Conflicts) > 0
}

// AddConflict adds a conflict to the plan.
func (p *Plan) AddConflict(conflict Conflict) {
	p.Conflicts = append(p.Conflicts, conflict)
}
