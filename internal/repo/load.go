package repo

import (
	"fmt"

	"github.com/danieljhkim/sbplan/internal/catalog"
	"github.com/danieljhkim/sbplan/internal/fsops"
	"github.com/danieljhkim/sbplan/internal/logging"
)

// Options locates the repository on disk.
type Options struct {
	// IndexPath is the SLACKBUILDS.TXT file, optionally .gz or .xz
	IndexPath string

	// InstalledDir is the package log directory; empty skips installation state
	InstalledDir string

	// Tag selects SlackBuild installs by build tag; empty accepts all
	Tag string
}

// Load reads the index and installation state and builds a Catalog.
// Installed packages that are no longer in the index are kept so that they
// can still be listed and removed.
func Load(fs fsops.FS, opts Options) (*catalog.Catalog, error) {
	logger := logging.GetLogger("repo")

	if opts.IndexPath == "" {
		return nil, ErrNoIndex
	}

	r, err := OpenIndex(fs, opts.IndexPath)
	if err != nil {
		return nil, err
	}
	entries, err := ParseIndex(r)
	r.Close()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.IndexPath, err)
	}

	var installed []InstalledPackage
	if opts.InstalledDir != "" {
		installed, err = ReadInstalled(fs, opts.InstalledDir, opts.Tag)
		if err != nil {
			return nil, err
		}
	}

	pkgs := Merge(entries, installed)
	logger.Debug().
		Str("index", opts.IndexPath).
		Int("slackbuilds", len(entries)).
		Int("installed", len(installed)).
		Msg("Repository loaded")

	return catalog.New(pkgs)
}

// Merge combines index entries and installed packages into catalog
// packages. Later duplicates in entries are dropped.
func Merge(entries []IndexEntry, installed []InstalledPackage) []catalog.Package {
	byName := make(map[string]InstalledPackage, len(installed))
	for _, p := range installed {
		byName[p.Name] = p
	}

	seen := make(map[string]bool, len(entries))
	pkgs := make([]catalog.Package, 0, len(entries))
	for _, e := range entries {
		if seen[e.Name] {
			continue
		}
		seen[e.Name] = true

		pkg := catalog.Package{
			Name:             e.Name,
			Category:         e.Category,
			Requires:         e.Requires,
			AvailableVersion: e.Version,
			Description:      e.Description,
		}
		if inst, ok := byName[e.Name]; ok {
			pkg.Installed = true
			pkg.InstalledVersion = inst.Version
			pkg.Upgradable = IsNewer(inst.Version, e.Version)
		}
		pkgs = append(pkgs, pkg)
	}

	for _, inst := range installed {
		if seen[inst.Name] {
			continue
		}
		seen[inst.Name] = true
		pkgs = append(pkgs, catalog.Package{
			Name:             inst.Name,
			Installed:        true,
			InstalledVersion: inst.Version,
		})
	}

	return pkgs
}
