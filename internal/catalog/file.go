package catalog

import (
	"fmt"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/sbplan/internal/fsops"
)

// snapshot is the on-disk layout of a catalog file.
type snapshot struct {
	Packages []record `yaml:"packages" toml:"packages"`
}

// record is the on-disk form of a Package. InstalledRequires is a pointer so
// that an empty recorded list is written out and read back as empty rather
// than as "not recorded".
type record struct {
	Name              string    `yaml:"name" toml:"name"`
	Category          string    `yaml:"category,omitempty" toml:"category,omitempty"`
	Requires          []string  `yaml:"requires,omitempty" toml:"requires,omitempty"`
	InstalledRequires *[]string `yaml:"installed_requires,omitempty" toml:"installed_requires,omitempty"`
	Installed         bool      `yaml:"installed" toml:"installed"`
	Upgradable        bool      `yaml:"upgradable" toml:"upgradable"`
	InstalledVersion  string    `yaml:"installed_version,omitempty" toml:"installed_version,omitempty"`
	AvailableVersion  string    `yaml:"available_version,omitempty" toml:"available_version,omitempty"`
	Description       string    `yaml:"description,omitempty" toml:"description,omitempty"`
}

func toRecord(p *Package) record {
	r := record{
		Name:             p.Name,
		Category:         p.Category,
		Requires:         p.Requires,
		Installed:        p.Installed,
		Upgradable:       p.Upgradable,
		InstalledVersion: p.InstalledVersion,
		AvailableVersion: p.AvailableVersion,
		Description:      p.Description,
	}
	if p.InstalledRequires != nil {
		reqs := p.InstalledRequires
		r.InstalledRequires = &reqs
	}
	return r
}

func (r record) pkg() Package {
	p := Package{
		Name:             r.Name,
		Category:         r.Category,
		Requires:         r.Requires,
		Installed:        r.Installed,
		Upgradable:       r.Upgradable,
		InstalledVersion: r.InstalledVersion,
		AvailableVersion: r.AvailableVersion,
		Description:      r.Description,
	}
	if r.InstalledRequires != nil {
		p.InstalledRequires = *r.InstalledRequires
		if p.InstalledRequires == nil {
			p.InstalledRequires = []string{}
		}
	}
	return p
}

// Format identifies a catalog snapshot encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor picks the snapshot format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Decode parses a snapshot and builds a Catalog from it.
func Decode(data []byte, format Format) (*Catalog, error) {
	var snap snapshot

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("failed to parse yaml catalog: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("failed to parse toml catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	pkgs := make([]Package, 0, len(snap.Packages))
	for _, r := range snap.Packages {
		pkgs = append(pkgs, r.pkg())
	}
	return New(pkgs)
}

// Encode serializes every package of c, sorted by name.
func Encode(c *Catalog, format Format) ([]byte, error) {
	snap := snapshot{Packages: make([]record, 0, c.Len())}
	for _, pkg := range c.Packages() {
		snap.Packages = append(snap.Packages, toRecord(pkg))
	}

	switch format {
	case FormatYAML:
		return yaml.Marshal(&snap)
	case FormatTOML:
		return toml.Marshal(&snap)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// LoadFile reads a YAML or TOML catalog snapshot.
func LoadFile(fs fsops.FS, path string) (*Catalog, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	return Decode(data, format)
}

// WriteFile writes c to path atomically, in the format implied by its extension.
func WriteFile(fs fsops.FS, path string, c *Catalog) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	data, err := Encode(c, format)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	if err := fs.AtomicWrite(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog %s: %w", path, err)
	}
	return nil
}
