package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/danieljhkim/sbplan/internal/backend"
	"github.com/danieljhkim/sbplan/internal/catalog"
	"github.com/danieljhkim/sbplan/internal/clock"
	"github.com/danieljhkim/sbplan/internal/config"
	"github.com/danieljhkim/sbplan/internal/engine"
	"github.com/danieljhkim/sbplan/internal/fsops"
	"github.com/danieljhkim/sbplan/internal/repo"
)

// newBackend creates the backend for the loaded settings. Tests replace it.
var newBackend = func(settings *config.Settings) backend.Backend {
	return backend.NewShell(settings.ShellConfig(os.Stdin, os.Stdout, os.Stderr))
}

// loadSettings reads the config file named by --config, or the default one
// if it exists.
func loadSettings() (*config.Settings, error) {
	path := configPath
	mustExist := path != ""
	if path == "" {
		paths, err := config.DefaultPaths()
		if err != nil {
			return nil, fmt.Errorf("failed to get config paths: %w", err)
		}
		path = paths.Config
	}

	settings, err := config.Load(path, mustExist)
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// loadCatalog reads the snapshot named by --catalog, or the repository.
func loadCatalog(fs fsops.FS, settings *config.Settings) (*catalog.Catalog, error) {
	if catalogPath != "" {
		return catalog.LoadFile(fs, catalogPath)
	}

	cat, err := repo.Load(fs, settings.RepoOptions())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w (run 'sbplan sync' or set repo_dir)", err)
		}
		return nil, err
	}
	return cat, nil
}

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine() (*engine.Engine, *config.Settings, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, nil, err
	}

	fs := fsops.NewRealFS()
	cat, err := loadCatalog(fs, settings)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	return engine.New(cat, newBackend(settings), fs, &clock.RealClock{}), settings, nil
}

// newBackendEngine creates an engine with an empty catalog for commands that
// only talk to the backend, such as sync before a repository exists.
func newBackendEngine(settings *config.Settings) (*engine.Engine, error) {
	cat, err := catalog.New(nil)
	if err != nil {
		return nil, err
	}
	return engine.New(cat, newBackend(settings), fsops.NewRealFS(), &clock.RealClock{}), nil
}

// formatJSON formats a value as JSON.
func formatJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// formatError formats an error for display.
func formatError(err error) string {
	return errorColor.Sprintf("Error: %v", err)
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
