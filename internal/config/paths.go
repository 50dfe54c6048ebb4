// Package config manages sbplan settings and filesystem paths.
//
// Settings are read from a TOML file under the XDG config home and can be
// overridden with SBPLAN_* environment variables. The log file lives under
// the XDG state home.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "sbplan"

// Paths contains all the filesystem paths used by sbplan.
type Paths struct {
	// ConfigDir is the directory holding the config file
	ConfigDir string

	// Config is the path to the config file
	Config string

	// StateDir holds the log file
	StateDir string

	// LogFile is the path to the append-only log
	LogFile string
}

// DefaultPaths returns the default paths for sbplan.
// The config file can be overridden with SBPLAN_CONFIG and the log file
// with SBPLAN_LOG_FILE.
func DefaultPaths() (*Paths, error) {
	if xdg.ConfigHome == "" || xdg.StateHome == "" {
		return nil, fmt.Errorf("failed to determine XDG base directories")
	}

	configDir := filepath.Join(xdg.ConfigHome, AppName)
	configFile := filepath.Join(configDir, "config.toml")
	if override := os.Getenv("SBPLAN_CONFIG"); override != "" {
		configFile = override
		configDir = filepath.Dir(override)
	}

	stateDir := filepath.Join(xdg.StateHome, AppName)
	logFile := filepath.Join(stateDir, AppName+".log")
	if override := os.Getenv("SBPLAN_LOG_FILE"); override != "" {
		logFile = override
		stateDir = filepath.Dir(override)
	}

	return &Paths{
		ConfigDir: configDir,
		Config:    configFile,
		StateDir:  stateDir,
		LogFile:   logFile,
	}, nil
}

// EnsureDirectories creates all necessary directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.ConfigDir, p.StateDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
