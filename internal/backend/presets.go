package backend

import (
	"fmt"
	"sort"
)

// Commands holds the command line used for each operation. The package name
// is appended to Install, Reinstall, Upgrade and Remove.
type Commands struct {
	Install string

	// Reinstall forces a rebuild of an installed package; empty uses Install
	Reinstall string

	Upgrade string
	Remove  string
	Sync    string
}

// Custom is the package manager name that uses the configured commands as-is.
const Custom = "custom"

var presets = map[string]Commands{
	"sbopkg": {
		Install: "sbopkg -B -i",
		Upgrade: "sbopkg -B -i",
		Remove:  "removepkg",
		Sync:    "sbopkg -r",
	},
	"sbotools": {
		Install:   "sboinstall",
		Reinstall: "sboupgrade -f",
		Upgrade:   "sboupgrade",
		Remove:    "sboremove",
		Sync:      "sbosnap update",
	},
	"slpkg": {
		Install:   "slpkg install",
		Reinstall: "slpkg install --reinstall",
		Upgrade:   "slpkg upgrade",
		Remove:    "slpkg remove",
		Sync:      "slpkg update",
	},
}

// Preset returns the commands for a known package manager.
func Preset(manager string) (Commands, error) {
	cmds, ok := presets[manager]
	if !ok {
		return Commands{}, fmt.Errorf("%w: %q", ErrUnknownManager, manager)
	}
	return cmds, nil
}

// Managers returns the names of the known package managers, sorted, followed
// by Custom.
func Managers() []string {
	names := make([]string, 0, len(presets)+1)
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return append(names, Custom)
}

// Merge fills every empty command in c from defaults.
func (c Commands) Merge(defaults Commands) Commands {
	if c.Install == "" {
		c.Install = defaults.Install
	}
	if c.Reinstall == "" {
		c.Reinstall = defaults.Reinstall
	}
	if c.Upgrade == "" {
		c.Upgrade = defaults.Upgrade
	}
	if c.Remove == "" {
		c.Remove = defaults.Remove
	}
	if c.Sync == "" {
		c.Sync = defaults.Sync
	}
	return c
}
