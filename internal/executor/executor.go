package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/danieljhkim/sbplan/internal/backend"
	"github.com/danieljhkim/sbplan/internal/clock"
	"github.com/danieljhkim/sbplan/internal/logging"
	"github.com/danieljhkim/sbplan/internal/planner"
)

// Outcome is the aggregate result of a run.
type Outcome string

// Outcome constants
const (
	// OutcomeCompleted means every included entry was attempted.
	OutcomeCompleted Outcome = "completed"

	// OutcomeAbortedEarly means the caller stopped the run after a failure.
	OutcomeAbortedEarly Outcome = "aborted-early"

	// OutcomeAbortedMissingBackend means the backend tool was not found.
	OutcomeAbortedMissingBackend Outcome = "aborted-missing-backend"
)

// Decision is the caller's answer to a soft failure.
type Decision int

// Decision constants
const (
	Abort Decision = iota
	Continue
)

// Failure describes a soft failure awaiting a decision.
type Failure struct {
	Entry  planner.Entry
	Status backend.ExitStatus

	// Remaining is the number of included entries not yet attempted
	Remaining int
}

// Hooks are the caller's callbacks. All fields are optional; a nil Decide
// aborts on the first soft failure.
type Hooks struct {
	// OnStart is called before entry number n (1-based) of total included entries
	OnStart func(n, total int, entry planner.Entry)

	// OnFinish is called after each attempted entry
	OnFinish func(result EntryResult)

	// Decide is asked whether to continue after a soft failure
	Decide func(failure Failure) Decision
}

// EntryResult is the outcome of one attempted entry.
type EntryResult struct {
	Entry     planner.Entry      `json:"entry"`
	Status    backend.ExitStatus `json:"status"`
	StartedAt time.Time          `json:"started_at"`
	Duration  time.Duration      `json:"duration"`
}

// Success reports whether the entry's operation succeeded.
func (r EntryResult) Success() bool {
	return r.Status.Success()
}

// Result is the outcome of a run.
type Result struct {
	Entries []EntryResult `json:"entries"`
	Outcome Outcome       `json:"outcome"`

	// Unattempted counts the included entries that never ran
	Unattempted int `json:"unattempted"`
}

// Succeeded returns the entries whose operation succeeded.
func (r *Result) Succeeded() []EntryResult {
	return r.filter(true)
}

// Failed returns the entries whose operation failed.
func (r *Result) Failed() []EntryResult {
	return r.filter(false)
}

func (r *Result) filter(success bool) []EntryResult {
	var out []EntryResult
	for _, e := range r.Entries {
		if e.Success() == success {
			out = append(out, e)
		}
	}
	return out
}

// Executor drives a backend through a plan.
type Executor struct {
	backend backend.Backend
	clock   clock.Clock
	logger  zerolog.Logger
}

// New creates an Executor.
func New(b backend.Backend, clk clock.Clock) *Executor {
	return &Executor{
		backend: b,
		clock:   clk,
		logger:  logging.GetLogger("executor"),
	}
}

// Run executes the included entries of plan in order.
//
// The returned Result is never nil. The error is nil when every included
// entry was attempted, even if some failed; otherwise it wraps
// ErrBackendMissing or ErrAborted.
func (x *Executor) Run(ctx context.Context, plan *planner.Plan, hooks Hooks) (*Result, error) {
	entries := plan.Included()
	result := &Result{Outcome: OutcomeCompleted}

	x.logger.Info().
		Str("plan", plan.Title()).
		Str("backend", x.backend.Name()).
		Int("entries", len(entries)).
		Msg("Executing plan")

	for i, entry := range entries {
		remaining := len(entries) - i

		if err := ctx.Err(); err != nil {
			result.Outcome = OutcomeAbortedEarly
			result.Unattempted = remaining
			return result, fmt.Errorf("%w: %w", ErrAborted, err)
		}

		if hooks.OnStart != nil {
			hooks.OnStart(i+1, len(entries), entry)
		}

		// A started backend call always runs to completion; cancellation
		// only takes effect between entries.
		started := x.clock.Now()
		status := x.dispatch(context.WithoutCancel(ctx), entry)
		er := EntryResult{
			Entry:     entry,
			Status:    status,
			StartedAt: started,
			Duration:  x.clock.Since(started),
		}
		result.Entries = append(result.Entries, er)

		x.logger.Debug().
			Str("package", entry.Name()).
			Str("action", string(entry.Action)).
			Int("status", int(status)).
			Dur("duration", er.Duration).
			Msg("Entry finished")

		if hooks.OnFinish != nil {
			hooks.OnFinish(er)
		}

		if status.Success() {
			continue
		}

		if status.Missing() {
			result.Outcome = OutcomeAbortedMissingBackend
			result.Unattempted = remaining - 1
			x.logger.Error().Str("backend", x.backend.Name()).Msg("Package manager not found")
			return result, fmt.Errorf("%w: %s", ErrBackendMissing, x.backend.Name())
		}

		opErr := &OperationFailedError{Package: entry.Name(), Action: entry.Action, Status: status}
		x.logger.Warn().Err(opErr).Msg("Operation failed")

		left := remaining - 1
		if left == 0 {
			break
		}

		if err := ctx.Err(); err != nil {
			result.Outcome = OutcomeAbortedEarly
			result.Unattempted = left
			return result, fmt.Errorf("%w: %w", ErrAborted, err)
		}

		if decide(hooks, Failure{Entry: entry, Status: status, Remaining: left}) == Abort {
			result.Outcome = OutcomeAbortedEarly
			result.Unattempted = left
			return result, fmt.Errorf("%w: %w", ErrAborted, opErr)
		}
	}

	return result, nil
}

func (x *Executor) dispatch(ctx context.Context, entry planner.Entry) backend.ExitStatus {
	pkg := &entry.Package
	switch entry.Action {
	case planner.ActionUpgrade:
		return x.backend.Upgrade(ctx, pkg)
	case planner.ActionRemove:
		return x.backend.Remove(ctx, pkg)
	default:
		// Install and Reinstall
		return x.backend.Install(ctx, pkg)
	}
}

func decide(hooks Hooks, f Failure) Decision {
	if hooks.Decide == nil {
		return Abort
	}
	return hooks.Decide(f)
}
