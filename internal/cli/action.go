package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/sbplan/internal/catalog"
	"github.com/danieljhkim/sbplan/internal/engine"
	"github.com/danieljhkim/sbplan/internal/executor"
	"github.com/danieljhkim/sbplan/internal/planner"
	"github.com/danieljhkim/sbplan/internal/tui"
)

// selectPlan runs the interactive plan dialog. Tests replace it.
var selectPlan = func(plan *planner.Plan) (bool, error) {
	return tui.Select(plan)
}

type actionOptions struct {
	interactive bool
	all         bool
	skip        []string
	noDeps      bool
	dryRun      bool
	yes         bool
}

// actionOutput is the JSON document printed by the action commands.
type actionOutput struct {
	Plan   *engine.PlanResult    `json:"plan"`
	Result *engine.ExecuteResult `json:"result,omitempty"`
}

var actionHelp = map[planner.Action]struct{ short, long string }{
	planner.ActionInstall: {
		short: "Install a package and the prerequisites it is missing",
		long: `Resolve the prerequisites of a package and install it.

Missing prerequisites are installed and outdated ones upgraded. Prerequisites
that are already current are listed as reinstalls and left out unless selected
with --all or in the interactive dialog.`,
	},
	planner.ActionUpgrade: {
		short: "Upgrade a package and its outdated prerequisites",
		long: `Resolve the prerequisites of a package and upgrade it.

Missing prerequisites are installed and outdated ones upgraded before the
package itself.`,
	},
	planner.ActionReinstall: {
		short: "Rebuild and reinstall a package",
		long: `Resolve the prerequisites of a package and reinstall it.

Prerequisites are only rebuilt when they are missing or outdated, or when
selected with --all or in the interactive dialog.`,
	},
	planner.ActionRemove: {
		short: "Remove a package and optionally its installed prerequisites",
		long: `Remove a package.

Installed prerequisites are listed but only removed when selected with --all
or in the interactive dialog. Prerequisites still needed by other installed
packages are reported as conflicts.`,
	},
}

// actionCommands returns the install, upgrade, reinstall and remove commands.
func actionCommands() []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(planner.Actions))
	for _, action := range planner.Actions {
		cmds = append(cmds, newActionCmd(action))
	}
	return cmds
}

func newActionCmd(action planner.Action) *cobra.Command {
	opts := &actionOptions{}
	help := actionHelp[action]

	cmd := &cobra.Command{
		Use:   strings.ToLower(string(action)) + " <package>",
		Short: help.short,
		Long:  help.long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, action, args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Choose the plan entries in a dialog")
	cmd.Flags().BoolVar(&opts.all, "all", false, "Include every prerequisite")
	cmd.Flags().StringSliceVar(&opts.skip, "skip", nil, "Leave out a prerequisite (repeatable)")
	cmd.Flags().BoolVar(&opts.noDeps, "no-deps", false, "Do not resolve prerequisites")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Show what would be done without doing it")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

func runAction(cmd *cobra.Command, action planner.Action, name string, opts *actionOptions) error {
	ctx := cmd.Context()

	eng, settings, err := newEngine()
	if err != nil {
		return err
	}

	planned, err := eng.Plan(ctx, &engine.PlanRequest{
		Package:     name,
		Action:      action,
		ResolveDeps: settings.ResolveDeps && !opts.noDeps,
		SelectAll:   opts.all,
		Skip:        opts.skip,
	})
	if err != nil {
		return err
	}
	plan := planned.Plan

	if opts.interactive {
		if !stdinIsTerminal() {
			return fmt.Errorf("--interactive: %w", errNoTerminal)
		}
		accepted, err := selectPlan(plan)
		if err != nil {
			return err
		}
		if !accepted {
			PrintInfo("Cancelled")
			return nil
		}
		planned.DependenciesSelected = plan.AllDependenciesSelected()
		if plan.Action == planner.ActionRemove {
			plan.Conflicts = planner.NewConflictChecker(eng.Catalog()).Check(plan)
		}
	}

	if !jsonOutput {
		printPlan(planned)
	}

	if opts.dryRun {
		result, err := eng.Execute(ctx, &engine.ExecuteRequest{Plan: plan, DryRun: true})
		if err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(actionOutput{Plan: planned, Result: result})
		}
		PrintSubsection("Dry run, would run:")
		printEntries(result.Planned)
		return nil
	}

	if settings.ConfirmChanges && !opts.yes {
		if !stdinIsTerminal() {
			return fmt.Errorf("confirmation needed (use --yes): %w", errNoTerminal)
		}
		ok, err := confirm(fmt.Sprintf("Proceed with %s", PrintCount(len(plan.Included()), "operation", "operations")))
		if err != nil {
			return err
		}
		if !ok {
			PrintInfo("Cancelled")
			return nil
		}
	}

	result, err := eng.Execute(ctx, &engine.ExecuteRequest{Plan: plan, Hooks: executionHooks()})
	if errors.Is(err, engine.ErrNothingToDo) {
		PrintInfo("Nothing to do")
		return nil
	}

	if jsonOutput {
		if result != nil {
			if jerr := outputJSON(actionOutput{Plan: planned, Result: result}); jerr != nil {
				return jerr
			}
		}
	} else if result != nil && result.Result != nil {
		printSummary(result.Result)
	}

	if err != nil {
		return err
	}
	if !result.Succeeded() {
		return fmt.Errorf("%s %s: %s failed", strings.ToLower(string(action)), name,
			PrintCount(len(result.Result.Failed()), "operation", "operations"))
	}
	return nil
}

// executionHooks prints progress and asks whether to continue after a
// failure. Without a terminal a failure aborts the run.
func executionHooks() executor.Hooks {
	return executor.Hooks{
		OnStart: func(n, total int, entry planner.Entry) {
			if jsonOutput {
				return
			}
			_, _ = headerColor.Fprintf(stdout, "[%d/%d] ", n, total)
			fmt.Fprintf(stdout, "%s %s\n", entry.Action, entry.Name())
		},
		OnFinish: func(result executor.EntryResult) {
			if jsonOutput || result.Success() {
				return
			}
			PrintError(fmt.Sprintf("%s %s failed (exit status %d)", result.Entry.Action, result.Entry.Name(), result.Status))
		},
		Decide: func(failure executor.Failure) executor.Decision {
			if !stdinIsTerminal() {
				return executor.Abort
			}
			PrintWarning(fmt.Sprintf("%s %s failed, %s left",
				failure.Entry.Action, failure.Entry.Name(), PrintCount(failure.Remaining, "operation", "operations")))
			ok, err := confirm("Continue anyway")
			if err != nil || !ok {
				return executor.Abort
			}
			return executor.Continue
		},
	}
}

func printPlan(planned *engine.PlanResult) {
	plan := planned.Plan
	PrintSection(plan.Title())

	rows := make([][]string, 0, len(plan.Entries))
	for _, e := range plan.Entries {
		mark := "[ ]"
		if e.Included {
			mark = "[x]"
		}
		rows = append(rows, []string{mark, string(e.Action), e.Name(), versionLabel(e.Package, e.Action)})
	}
	PrintTable([]string{"", "ACTION", "PACKAGE", "VERSION"}, rows)
	fmt.Fprintln(stdout)

	if len(planned.Skipped) > 0 {
		PrintLabelValue("Skipped", strings.Join(planned.Skipped, ", "))
	}
	if !planned.DependenciesSelected {
		PrintWarning("Not all dependencies are selected; the build may fail")
	}
	for _, c := range plan.Conflicts {
		PrintWarning(fmt.Sprintf("%s is %s", c.Package, c.Reason))
	}
}

func printEntries(entries []planner.Entry) {
	items := make([]string, 0, len(entries))
	for _, e := range entries {
		items = append(items, fmt.Sprintf("%s %s", e.Action, e.Name()))
	}
	PrintNumberedList(items, 1)
}

func printSummary(res *executor.Result) {
	fmt.Fprintln(stdout)
	if ok := res.Succeeded(); len(ok) > 0 {
		PrintSuccess(fmt.Sprintf("%s succeeded", PrintCount(len(ok), "operation", "operations")))
	}
	if failed := res.Failed(); len(failed) > 0 {
		names := make([]string, 0, len(failed))
		for _, f := range failed {
			names = append(names, f.Entry.Name())
		}
		PrintWarning(fmt.Sprintf("%s failed: %s", PrintCount(len(failed), "operation", "operations"), strings.Join(names, ", ")))
	}
	if res.Unattempted > 0 {
		PrintWarning(fmt.Sprintf("%s not attempted", PrintCount(res.Unattempted, "operation", "operations")))
	}
}

// versionLabel shows the version change an action makes.
func versionLabel(pkg catalog.Package, action planner.Action) string {
	switch {
	case action == planner.ActionUpgrade && pkg.InstalledVersion != "":
		return pkg.InstalledVersion + " -> " + pkg.AvailableVersion
	case pkg.Installed && pkg.InstalledVersion != "":
		return pkg.InstalledVersion
	default:
		return pkg.AvailableVersion
	}
}
