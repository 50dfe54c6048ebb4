package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/danieljhkim/sbplan/internal/planner"
)

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		m.Message = ""
		last := len(m.Plan.Entries) - 1

		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.Cancelled = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Accept):
			m.Accepted = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.Cursor > 0 {
				m.Cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.Cursor < last {
				m.Cursor++
			}
		case key.Matches(msg, m.keys.Home):
			m.Cursor = 0
		case key.Matches(msg, m.keys.End):
			m.Cursor = last
		case key.Matches(msg, m.keys.Toggle):
			if err := m.Plan.Toggle(m.Cursor); err != nil {
				if errors.Is(err, planner.ErrTargetLocked) {
					m.Message = fmt.Sprintf("%s is the requested package and is always run", m.Plan.Target().Name())
				} else {
					m.Message = err.Error()
				}
			}
		case key.Matches(msg, m.keys.SelectAll):
			n := m.Plan.SelectAll()
			m.Message = fmt.Sprintf("Selected %d more %s", n, plural(n, "entry", "entries"))
		}
	}

	return m, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
