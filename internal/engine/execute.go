package engine

import (
	"context"

	"github.com/danieljhkim/sbplan/internal/executor"
	"github.com/danieljhkim/sbplan/internal/logging"
)

// Execute runs the included entries of a plan through the backend.
// A dry run returns the entries that would run without touching the backend.
// Execution errors are returned together with the partial result.
func (e *Engine) Execute(ctx context.Context, req *ExecuteRequest) (*ExecuteResult, error) {
	done := logging.LogOperationStart(e.logger, "execute")
	defer done()

	planned := req.Plan.Included()
	if len(planned) == 0 {
		return nil, ErrNothingToDo
	}

	result := &ExecuteResult{Planned: planned, DryRun: req.DryRun}
	if req.DryRun {
		e.logger.Info().Str("plan", req.Plan.Title()).Int("entries", len(planned)).Msg("Dry run, nothing executed")
		return result, nil
	}

	res, err := e.newExecutor().Run(ctx, req.Plan, req.Hooks)
	result.Result = res
	if err != nil {
		return result, err
	}

	if failed := res.Failed(); len(failed) > 0 {
		e.logger.Warn().Int("failed", len(failed)).Msg("Plan finished with failures")
	}
	return result, nil
}

// Succeeded reports whether every attempted entry succeeded and nothing was
// left unattempted.
func (r *ExecuteResult) Succeeded() bool {
	if r.Result == nil {
		return r.DryRun
	}
	return r.Result.Outcome == executor.OutcomeCompleted && len(r.Result.Failed()) == 0
}
