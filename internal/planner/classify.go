package planner

import (
	"fmt"

	"github.com/danieljhkim/sbplan/internal/catalog"
	"github.com/danieljhkim/sbplan/internal/resolver"
)

// Classify builds a Plan from a resolved build order and the action
// requested for target.
//
// For Remove, only installed dependencies are listed and they start
// deselected. For the other actions every dependency is listed: missing ones
// are installed, outdated ones upgraded, and current ones offered for a
// reinstall that starts deselected. The target is always last and included.
func Classify(resolved []*catalog.Package, target *catalog.Package, action Action) (*Plan, error) {
	if _, err := ParseAction(string(action)); err != nil {
		return nil, err
	}

	plan := &Plan{
		Action:  action,
		Entries: make([]Entry, 0, len(resolved)+1),
	}

	for _, pkg := range resolved {
		if action == ActionRemove {
			if pkg.Installed {
				plan.Entries = append(plan.Entries, Entry{Package: *pkg, Action: ActionRemove})
			}
			continue
		}
		plan.Entries = append(plan.Entries, classifyDependency(pkg))
	}

	plan.Entries = append(plan.Entries, Entry{Package: *target, Action: action, Included: true})
	return plan, nil
}

func classifyDependency(pkg *catalog.Package) Entry {
	switch {
	case !pkg.Installed:
		return Entry{Package: *pkg, Action: ActionInstall, Included: true}
	case pkg.Upgradable:
		return Entry{Package: *pkg, Action: ActionUpgrade, Included: true}
	default:
		return Entry{Package: *pkg, Action: ActionReinstall, Included: false}
	}
}

// Build resolves the prerequisites of the named package and classifies them.
// Resolution errors are returned unchanged and no plan is produced.
func Build(src resolver.Source, name string, action Action) (*Plan, error) {
	target, ok := src.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPackage, name)
	}

	resolved, err := resolver.Resolve(target, src)
	if err != nil {
		return nil, err
	}

	return Classify(resolved, target, action)
}

// Single plans the named package alone, without its prerequisites.
func Single(src resolver.Source, name string, action Action) (*Plan, error) {
	target, ok := src.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPackage, name)
	}
	return Classify(nil, target, action)
}
