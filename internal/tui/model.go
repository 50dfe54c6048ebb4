// Package tui provides the interactive plan selection dialog.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"github.com/danieljhkim/sbplan/internal/planner"
)

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Home      key.Binding
	End       key.Binding
	Toggle    key.Binding
	SelectAll key.Binding
	Accept    key.Binding
	Cancel    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.SelectAll, k.Accept, k.Cancel}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Home, k.End},
		{k.Toggle, k.SelectAll, k.Accept, k.Cancel},
	}
}

func defaultKeys() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Home:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home", "first")),
		End:       key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end", "last")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "space", "x"), key.WithHelp("space", "toggle")),
		SelectAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
		Accept:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "accept")),
		Cancel:    key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("esc/q", "cancel")),
	}
}

// Model is the selection dialog state. The plan is edited in place.
type Model struct {
	Plan   *planner.Plan
	Cursor int

	// Accepted is set when the user confirms the plan
	Accepted bool

	// Cancelled is set when the user leaves without confirming
	Cancelled bool

	// Message is a one-line notice shown under the list
	Message string

	keys  keyMap
	help  help.Model
	width int
}

// New returns a dialog for plan with the cursor on the first entry.
func New(plan *planner.Plan) Model {
	return Model{
		Plan: plan,
		keys: defaultKeys(),
		help: help.New(),
	}
}
