package repo

import (
	"fmt"
	"strings"

	"github.com/danieljhkim/sbplan/internal/fsops"
)

// DefaultTag is the build tag of packages built from SlackBuilds.org scripts.
const DefaultTag = "_SBo"

// InstalledPackage is an entry of the package log directory.
type InstalledPackage struct {
	Name    string
	Version string
	Arch    string
	Build   string
}

// ParsePackageID splits "name-version-arch-build" into its fields. The name
// itself may contain dashes.
func ParsePackageID(id string) (InstalledPackage, bool) {
	parts := strings.Split(id, "-")
	if len(parts) < 4 {
		return InstalledPackage{}, false
	}

	n := len(parts)
	pkg := InstalledPackage{
		Name:    strings.Join(parts[:n-3], "-"),
		Version: parts[n-3],
		Arch:    parts[n-2],
		Build:   parts[n-1],
	}
	if pkg.Name == "" || pkg.Version == "" || pkg.Arch == "" || pkg.Build == "" {
		return InstalledPackage{}, false
	}
	return pkg, true
}

// ReadInstalled lists the packages recorded in dir whose build ends with
// tag. An empty tag accepts every package. Entries that do not look like
// package ids are ignored.
func ReadInstalled(fs fsops.FS, dir, tag string) ([]InstalledPackage, error) {
	names, err := fs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read package log directory: %w", err)
	}

	var out []InstalledPackage
	for _, name := range names {
		pkg, ok := ParsePackageID(name)
		if !ok {
			continue
		}
		if tag != "" && !strings.HasSuffix(pkg.Build, tag) {
			continue
		}
		out = append(out, pkg)
	}
	return out, nil
}
