package resolver

import (
	"slices"

	"github.com/danieljhkim/sbplan/internal/catalog"
	"github.com/danieljhkim/sbplan/internal/logging"
)

// Source answers the lookups resolution needs. *catalog.Catalog implements it.
type Source interface {
	// Lookup returns the package with the given name.
	Lookup(name string) (*catalog.Package, bool)

	// RequiresOf returns the declared dependency names of pkg.
	RequiresOf(pkg *catalog.Package) []string
}

// resolution carries the state of a single Resolve call.
type resolution struct {
	src Source

	// order is the found order: dependents before their dependencies
	order []*catalog.Package

	// path is the chain of packages currently being visited
	path     []string
	visiting map[string]bool
}

// Resolve returns every package target transitively requires, in build
// order. The target itself is not included. On error no list is returned.
//
// Shared subtrees are walked once per path that reaches them, so the cost is
// exponential in the worst case (stacked diamonds).
func Resolve(target *catalog.Package, src Source) ([]*catalog.Package, error) {
	r := &resolution{
		src:      src,
		order:    []*catalog.Package{},
		visiting: make(map[string]bool),
	}

	logger := logging.GetLogger("resolver")
	if err := r.visit(target); err != nil {
		logger.Debug().Err(err).Str("package", target.Name).Msg("Resolution failed")
		return nil, err
	}

	slices.Reverse(r.order)
	logger.Debug().Str("package", target.Name).Int("dependencies", len(r.order)).Msg("Resolved dependencies")
	return r.order, nil
}

// visit appends each requirement of pkg and then expands it. Subtrees are
// expanded again every time they are reached, since each pass may promote
// packages that an earlier pass placed too early.
func (r *resolution) visit(pkg *catalog.Package) error {
	r.visiting[pkg.Name] = true
	r.path = append(r.path, pkg.Name)
	defer func() {
		delete(r.visiting, pkg.Name)
		r.path = r.path[:len(r.path)-1]
	}()

	for _, name := range r.src.RequiresOf(pkg) {
		if name == "" || name == catalog.ReadmeMarker {
			continue
		}

		dep, ok := r.src.Lookup(name)
		if !ok {
			return &MissingDependencyError{Name: name, RequiredBy: pkg.Name}
		}

		if r.visiting[name] {
			start := slices.Index(r.path, name)
			cycle := append(slices.Clone(r.path[start:]), name)
			return &CyclicDependencyError{Cycle: cycle}
		}

		r.promote(dep)
		if err := r.visit(dep); err != nil {
			return err
		}
	}

	return nil
}

// promote moves dep to the end of the found order, adding it if absent.
func (r *resolution) promote(dep *catalog.Package) {
	if i := slices.IndexFunc(r.order, func(p *catalog.Package) bool { return p.Name == dep.Name }); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	r.order = append(r.order, dep)
}
