package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/danieljhkim/sbplan/internal/planner"
)

// Select runs the dialog for plan and reports whether the user accepted it.
// Selection changes are made on plan directly.
func Select(plan *planner.Plan, opts ...tea.ProgramOption) (bool, error) {
	final, err := tea.NewProgram(New(plan), opts...).Run()
	if err != nil {
		return false, fmt.Errorf("plan dialog failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return false, fmt.Errorf("plan dialog returned unexpected model %T", final)
	}
	return m.Accepted, nil
}
