package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/danieljhkim/sbplan/internal/backend"
	"github.com/danieljhkim/sbplan/internal/repo"
)

// EnvPrefix prefixes environment variables that override settings.
const EnvPrefix = "SBPLAN_"

// ErrInvalidSettings indicates settings that fail validation.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings is the user configuration.
type Settings struct {
	// RepoDir is the local SlackBuilds repository; empty uses the package
	// manager's default location
	RepoDir string `koanf:"repo_dir"`

	// IndexFile is the repository index, relative to RepoDir unless absolute
	IndexFile string `koanf:"index_file"`

	// InstalledDir is the package log directory
	InstalledDir string `koanf:"installed_dir"`

	// PackageTag selects SlackBuild installs in InstalledDir
	PackageTag string `koanf:"package_tag"`

	PackageManager string `koanf:"package_manager"`

	// Command overrides; empty values use the package manager preset
	InstallCmd   string `koanf:"install_cmd"`
	ReinstallCmd string `koanf:"reinstall_cmd"`
	UpgradeCmd   string `koanf:"upgrade_cmd"`
	RemoveCmd    string `koanf:"remove_cmd"`
	SyncCmd      string `koanf:"sync_cmd"`

	InstallOpts string `koanf:"install_opts"`
	InstallVars string `koanf:"install_vars"`
	UpgradeOpts string `koanf:"upgrade_opts"`
	UpgradeVars string `koanf:"upgrade_vars"`

	Shell string `koanf:"shell"`

	// ResolveDeps plans prerequisites along with the requested package
	ResolveDeps bool `koanf:"resolve_deps"`

	// ConfirmChanges asks before executing a plan
	ConfirmChanges bool `koanf:"confirm_changes"`
}

var repoDirs = map[string]string{
	"sbopkg":   "/var/lib/sbopkg/SBo/15.0",
	"sbotools": "/usr/sbo/repo",
	"slpkg":    "/var/lib/slpkg/repos/sbo",
}

// Defaults returns the built-in settings as a flat map.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"repo_dir":        "",
		"index_file":      "SLACKBUILDS.TXT",
		"installed_dir":   "/var/log/packages",
		"package_tag":     repo.DefaultTag,
		"package_manager": "sbopkg",
		"shell":           "sh",
		"resolve_deps":    true,
		"confirm_changes": true,
	}
}

// Load reads settings from defaults, the TOML file at path and SBPLAN_*
// environment variables, in increasing priority. A missing file is an error
// only when mustExist is set.
func Load(path string, mustExist bool) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		_, err := os.Stat(path)
		switch {
		case err == nil:
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
			}
		case mustExist || !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var s Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if s.RepoDir == "" {
		s.RepoDir = repoDirs[s.PackageManager]
	}

	return &s, nil
}

// Validate checks the settings for consistency.
func (s *Settings) Validate() error {
	if !slices.Contains(backend.Managers(), s.PackageManager) {
		return fmt.Errorf("%w: package_manager must be one of %s, got %q",
			ErrInvalidSettings, strings.Join(backend.Managers(), ", "), s.PackageManager)
	}
	if s.IndexFile == "" {
		return fmt.Errorf("%w: index_file is empty", ErrInvalidSettings)
	}
	if s.Shell == "" {
		return fmt.Errorf("%w: shell is empty", ErrInvalidSettings)
	}

	if s.PackageManager == backend.Custom {
		var missing []string
		for key, v := range map[string]string{
			"install_cmd": s.InstallCmd,
			"upgrade_cmd": s.UpgradeCmd,
			"remove_cmd":  s.RemoveCmd,
		} {
			if v == "" {
				missing = append(missing, key)
			}
		}
		if len(missing) > 0 {
			slices.Sort(missing)
			return fmt.Errorf("%w: custom package manager requires %s",
				ErrInvalidSettings, strings.Join(missing, ", "))
		}
	}
	return nil
}

// Commands returns the backend commands: the configured overrides on top of
// the package manager preset.
func (s *Settings) Commands() backend.Commands {
	cmds := backend.Commands{
		Install:   s.InstallCmd,
		Reinstall: s.ReinstallCmd,
		Upgrade:   s.UpgradeCmd,
		Remove:    s.RemoveCmd,
		Sync:      s.SyncCmd,
	}
	if preset, err := backend.Preset(s.PackageManager); err == nil {
		cmds = cmds.Merge(preset)
	}
	return cmds
}

// IndexPath returns the location of the repository index.
func (s *Settings) IndexPath() string {
	if filepath.IsAbs(s.IndexFile) || s.RepoDir == "" {
		return s.IndexFile
	}
	return filepath.Join(s.RepoDir, s.IndexFile)
}

// RepoOptions returns the options for loading the repository.
func (s *Settings) RepoOptions() repo.Options {
	return repo.Options{
		IndexPath:    s.IndexPath(),
		InstalledDir: s.InstalledDir,
		Tag:          s.PackageTag,
	}
}

// ShellConfig returns the configuration of a Shell backend writing to the
// given streams.
func (s *Settings) ShellConfig(stdin io.Reader, stdout, stderr io.Writer) backend.ShellConfig {
	return backend.ShellConfig{
		Manager:     s.PackageManager,
		Shell:       s.Shell,
		Commands:    s.Commands(),
		InstallOpts: s.InstallOpts,
		InstallVars: s.InstallVars,
		UpgradeOpts: s.UpgradeOpts,
		UpgradeVars: s.UpgradeVars,
		Stdin:       stdin,
		Stdout:      stdout,
		Stderr:      stderr,
	}
}
