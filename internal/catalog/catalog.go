// Package catalog holds the in-memory collection of known packages.
//
// A Catalog is built once by a loader (see the repo package or LoadFile) and
// is read-only for the rest of a resolve/classify/execute cycle. Packages are
// keyed by name, which is the only join key used for dependency lookups.
package catalog

import (
	"fmt"
	"slices"
	"sort"
)

// ReadmeMarker is the requirement entry meaning "see the README for manual
// steps". It is not a package and is skipped during resolution.
const ReadmeMarker = "%README%"

// Package is a buildable, installable unit with declared prerequisites.
// Snapshot files use the record type in file.go.
type Package struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`

	// Requires lists dependency names as declared by the repository definition.
	Requires []string `json:"requires,omitempty"`

	// InstalledRequires lists the dependency names recorded when the package
	// was installed. Nil means nothing was recorded; an empty list means the
	// package was recorded with no requirements.
	InstalledRequires []string `json:"installed_requires"`

	Installed  bool `json:"installed"`
	Upgradable bool `json:"upgradable"`

	InstalledVersion string `json:"installed_version,omitempty"`
	AvailableVersion string `json:"available_version,omitempty"`
	Description      string `json:"description,omitempty"`
}

// Catalog maps package names to packages.
type Catalog struct {
	packages map[string]*Package
}

// New builds a Catalog from pkgs. Each package is copied; names must be
// non-empty and unique. Upgradable is cleared on packages that are not
// installed.
func New(pkgs []Package) (*Catalog, error) {
	c := &Catalog{packages: make(map[string]*Package, len(pkgs))}

	for i := range pkgs {
		pkg := pkgs[i]
		if pkg.Name == "" {
			return nil, fmt.Errorf("%w: package at index %d has no name", ErrInvalidPackage, i)
		}
		if _, exists := c.packages[pkg.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePackage, pkg.Name)
		}
		if !pkg.Installed {
			pkg.Upgradable = false
		}
		pkg.Requires = slices.Clone(pkg.Requires)
		pkg.InstalledRequires = slices.Clone(pkg.InstalledRequires)
		c.packages[pkg.Name] = &pkg
	}

	return c, nil
}

// Lookup returns the package with the given name.
func (c *Catalog) Lookup(name string) (*Package, bool) {
	pkg, ok := c.packages[name]
	return pkg, ok
}

// Len returns the number of packages in the catalog.
func (c *Catalog) Len() int {
	return len(c.packages)
}

// RequiresOf returns the dependency names of pkg. Installed packages with
// recorded requirements answer from those; everything else answers from the
// repository definition.
func (c *Catalog) RequiresOf(pkg *Package) []string {
	if pkg.Installed && pkg.InstalledRequires != nil {
		return pkg.InstalledRequires
	}
	return pkg.Requires
}

// Names returns all package names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.packages))
	for name := range c.packages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Packages returns all packages sorted by name.
func (c *Catalog) Packages() []*Package {
	return c.filter(func(*Package) bool { return true })
}

// Installed returns the installed packages sorted by name.
func (c *Catalog) Installed() []*Package {
	return c.filter(func(p *Package) bool { return p.Installed })
}

// Upgradable returns the packages with a newer version available, sorted by name.
func (c *Catalog) Upgradable() []*Package {
	return c.filter(func(p *Package) bool { return p.Upgradable })
}

// Dependents returns the packages that directly require name, sorted by name.
func (c *Catalog) Dependents(name string) []*Package {
	return c.filter(func(p *Package) bool {
		return slices.Contains(c.RequiresOf(p), name)
	})
}

func (c *Catalog) filter(keep func(*Package) bool) []*Package {
	var out []*Package
	for _, name := range c.Names() {
		pkg := c.packages[name]
		if keep(pkg) {
			out = append(out, pkg)
		}
	}
	return out
}
