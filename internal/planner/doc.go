// Package planner turns a resolved build order into an editable plan.
//
// The planner classifies the action each prerequisite needs (Install,
// Upgrade, Reinstall or Remove) from its installation state, appends the
// requested package as the final entry, and exposes the selection state the
// user edits before execution.
//
// Key responsibilities:
//   - Classify resolved packages into ordered Plan entries
//   - Toggle inclusion of dependency entries; the target is always executed
//   - Report whether every required dependency is selected
//   - Detect removals that would break other installed packages
package planner
