package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/sbplan/internal/catalog"
	"github.com/danieljhkim/sbplan/internal/executor"
)

// Sync refreshes the local repository through the backend's sync command.
func (e *Engine) Sync(ctx context.Context) (*SyncResult, error) {
	e.logger.Info().Str("backend", e.backend.Name()).Msg("Syncing repository")

	status := e.backend.Sync(ctx)
	result := &SyncResult{Backend: e.backend.Name(), Status: status}

	switch {
	case status.Success():
		return result, nil
	case status.Missing():
		return result, fmt.Errorf("%w: %s", executor.ErrBackendMissing, e.backend.Name())
	default:
		return result, fmt.Errorf("%w: exit status %d", ErrSyncFailed, status)
	}
}

// Export writes the catalog to a YAML or TOML snapshot file.
func (e *Engine) Export(req *ExportRequest) (*ExportResult, error) {
	if err := catalog.WriteFile(e.fs, req.Path, e.catalog); err != nil {
		return nil, fmt.Errorf("failed to export catalog: %w", err)
	}
	return &ExportResult{Path: req.Path, Packages: e.catalog.Len()}, nil
}
