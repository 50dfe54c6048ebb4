package engine

import (
	"context"
	"fmt"
	"slices"

	"github.com/danieljhkim/sbplan/internal/logging"
	"github.com/danieljhkim/sbplan/internal/planner"
)

// Plan builds the plan for an action on a package.
//
// This method:
// 1. Looks up the requested package
// 2. Resolves and classifies its prerequisites (or plans it alone)
// 3. Applies the SelectAll and Skip selections
// 4. Checks removal plans for packages still needed by others
func (e *Engine) Plan(ctx context.Context, req *PlanRequest) (*PlanResult, error) {
	done := logging.LogOperationStart(e.logger, "plan")
	defer done()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := planner.ParseAction(string(req.Action)); err != nil {
		return nil, err
	}
	if _, err := e.lookup(req.Package); err != nil {
		return nil, err
	}

	var plan *planner.Plan
	var err error
	if req.ResolveDeps {
		plan, err = planner.Build(e.catalog, req.Package, req.Action)
	} else {
		plan, err = planner.Single(e.catalog, req.Package, req.Action)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to plan %s %s: %w", req.Action, req.Package, err)
	}

	if req.SelectAll {
		plan.SelectAll()
	}

	skipped, err := applySkips(plan, req.Skip)
	if err != nil {
		return nil, err
	}

	if plan.Action == planner.ActionRemove {
		for _, c := range planner.NewConflictChecker(e.catalog).Check(plan) {
			plan.AddConflict(c)
		}
	}

	e.logger.Info().
		Str("package", req.Package).
		Str("action", string(req.Action)).
		Int("entries", len(plan.Entries)).
		Int("included", len(plan.Included())).
		Int("conflicts", len(plan.Conflicts)).
		Msg("Plan built")

	return &PlanResult{
		Plan:                 plan,
		Skipped:              skipped,
		DependenciesSelected: plan.AllDependenciesSelected(),
	}, nil
}

// applySkips excludes the named dependency entries. Names are matched once
// each; the target cannot be skipped.
func applySkips(plan *planner.Plan, names []string) ([]string, error) {
	var skipped []string
	for _, name := range names {
		if slices.Contains(skipped, name) {
			continue
		}

		idx := slices.IndexFunc(plan.Entries, func(e planner.Entry) bool { return e.Name() == name })
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s", ErrNotInPlan, name)
		}
		if plan.IsTarget(idx) {
			return nil, fmt.Errorf("cannot skip %s: %w", name, planner.ErrTargetLocked)
		}
		if plan.Entries[idx].Included {
			if err := plan.Toggle(idx); err != nil {
				return nil, err
			}
		}
		skipped = append(skipped, name)
	}
	return skipped, nil
}
