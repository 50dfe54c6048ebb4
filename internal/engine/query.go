package engine

import (
	"fmt"
	"slices"

	"github.com/danieljhkim/sbplan/internal/catalog"
	"github.com/danieljhkim/sbplan/internal/resolver"
)

// Order returns the build order of a package: its prerequisites followed by
// the package itself.
func (e *Engine) Order(name string) (*OrderResult, error) {
	pkg, err := e.lookup(name)
	if err != nil {
		return nil, err
	}

	resolved, err := resolver.Resolve(pkg, e.catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", name, err)
	}

	return &OrderResult{
		Package: name,
		Order:   append(resolved, pkg),
	}, nil
}

// Dependents returns the packages that directly require a package.
func (e *Engine) Dependents(name string) (*DependentsResult, error) {
	if _, err := e.lookup(name); err != nil {
		return nil, err
	}
	return &DependentsResult{
		Package:    name,
		Dependents: e.catalog.Dependents(name),
	}, nil
}

// Info returns detailed information about a package. Resolution failures
// are reported in the result rather than as an error.
func (e *Engine) Info(name string) (*PackageInfo, error) {
	pkg, err := e.lookup(name)
	if err != nil {
		return nil, err
	}

	requires := e.catalog.RequiresOf(pkg)
	info := &PackageInfo{
		Package:        pkg,
		Requires:       requires,
		Dependents:     names(e.catalog.Dependents(name)),
		ReadmeRequired: slices.Contains(requires, catalog.ReadmeMarker),
	}

	resolved, err := resolver.Resolve(pkg, e.catalog)
	if err != nil {
		info.ResolveError = err.Error()
	} else {
		info.BuildOrder = names(resolved)
	}

	return info, nil
}

// List returns catalog packages matching the request.
func (e *Engine) List(req *ListRequest) (*ListResult, error) {
	filter := req.Filter
	if filter == "" {
		filter = ListAll
	}

	var pkgs []*catalog.Package
	switch filter {
	case ListAll:
		pkgs = e.catalog.Packages()
	case ListInstalled:
		pkgs = e.catalog.Installed()
	case ListUpgradable:
		pkgs = e.catalog.Upgradable()
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFilter, filter)
	}

	if req.Category != "" {
		pkgs = slices.DeleteFunc(pkgs, func(p *catalog.Package) bool {
			return p.Category != req.Category
		})
	}

	return &ListResult{Filter: filter, Packages: pkgs}, nil
}

func names(pkgs []*catalog.Package) []string {
	out := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, p.Name)
	}
	return out
}
