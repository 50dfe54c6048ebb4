package backend

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/danieljhkim/sbplan/internal/catalog"
	"github.com/danieljhkim/sbplan/internal/logging"
)

// ShellConfig configures a Shell backend.
type ShellConfig struct {
	// Manager is the package manager name reported by Name
	Manager string

	// Shell is the interpreter used to run command lines. Defaults to "sh".
	Shell string

	Commands Commands

	// InstallOpts and InstallVars are added to install command lines as
	// "<vars> <cmd> <opts> <name>"
	InstallOpts string
	InstallVars string

	UpgradeOpts string
	UpgradeVars string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Shell runs backend operations as shell command lines.
type Shell struct {
	cfg    ShellConfig
	logger zerolog.Logger
}

// NewShell creates a Shell backend. Unset streams default to the process's
// standard streams.
func NewShell(cfg ShellConfig) *Shell {
	if cfg.Shell == "" {
		cfg.Shell = "sh"
	}
	if cfg.Stdin == nil {
		cfg.Stdin = os.Stdin
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	return &Shell{cfg: cfg, logger: logging.GetLogger("backend")}
}

// Name returns the configured package manager name.
func (s *Shell) Name() string {
	return s.cfg.Manager
}

// Install builds and installs pkg. An installed pkg is rebuilt with the
// Reinstall command when one is configured.
func (s *Shell) Install(ctx context.Context, pkg *catalog.Package) ExitStatus {
	cmd := s.cfg.Commands.Install
	if pkg.Installed && s.cfg.Commands.Reinstall != "" {
		cmd = s.cfg.Commands.Reinstall
	}
	return s.run(ctx, OpInstall, CommandLine(s.cfg.InstallVars, cmd, s.cfg.InstallOpts, pkg.Name))
}

// Upgrade rebuilds pkg at the repository version.
func (s *Shell) Upgrade(ctx context.Context, pkg *catalog.Package) ExitStatus {
	return s.run(ctx, OpUpgrade, CommandLine(s.cfg.UpgradeVars, s.cfg.Commands.Upgrade, s.cfg.UpgradeOpts, pkg.Name))
}

// Remove uninstalls pkg.
func (s *Shell) Remove(ctx context.Context, pkg *catalog.Package) ExitStatus {
	return s.run(ctx, OpRemove, CommandLine("", s.cfg.Commands.Remove, "", pkg.Name))
}

// Sync refreshes the repository.
func (s *Shell) Sync(ctx context.Context) ExitStatus {
	return s.run(ctx, OpSync, CommandLine("", s.cfg.Commands.Sync, "", ""))
}

func (s *Shell) run(ctx context.Context, op Op, line string) ExitStatus {
	if line == "" {
		s.logger.Error().Str("op", string(op)).Msg("No command configured")
		return StatusMissing
	}

	s.logger.Info().
		Str("op", string(op)).
		Str("shell", s.cfg.Shell).
		Str("command", line).
		Msg("Running backend command")

	cmd := exec.CommandContext(ctx, s.cfg.Shell, "-c", line)
	cmd.Stdin = s.cfg.Stdin
	cmd.Stdout = s.cfg.Stdout
	cmd.Stderr = s.cfg.Stderr

	status := exitStatus(cmd.Run())
	event := s.logger.Debug()
	if !status.Success() {
		event = s.logger.Warn()
	}
	event.Str("op", string(op)).Str("command", line).Int("status", int(status)).Msg("Backend command finished")

	return status
}

// CommandLine joins the non-empty parts of "<vars> <cmd> <opts> <name>".
func CommandLine(vars, cmd, opts, name string) string {
	var parts []string
	for _, p := range []string{vars, cmd, opts, name} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if strings.TrimSpace(cmd) == "" {
		return ""
	}
	return strings.Join(parts, " ")
}

func exitStatus(err error) ExitStatus {
	if err == nil {
		return StatusOK
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code > 0 {
			return ExitStatus(code)
		}
		return StatusFailed
	}

	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return StatusMissing
	}
	return StatusFailed
}
