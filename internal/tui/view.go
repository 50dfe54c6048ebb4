package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/danieljhkim/sbplan/internal/planner"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	excludedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	targetStyle = lipgloss.NewStyle().
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208"))

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81"))
)

// View renders the dialog.
func (m Model) View() string {
	if m.Accepted || m.Cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %s", m.Plan.Action, m.Plan.Title())))
	b.WriteString("\n\n")

	for i, e := range m.Plan.Entries {
		b.WriteString(m.renderEntry(i, e))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if !m.Plan.AllDependenciesSelected() {
		b.WriteString(warningStyle.Render("Some required dependencies are not selected."))
		b.WriteString("\n")
	}
	for _, c := range m.Plan.Conflicts {
		b.WriteString(warningStyle.Render(fmt.Sprintf("%s: %s", c.Package, c.Reason)))
		b.WriteString("\n")
	}
	if m.Message != "" {
		b.WriteString(messageStyle.Render(m.Message))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderEntry(i int, e planner.Entry) string {
	cursor := "  "
	if i == m.Cursor {
		cursor = cursorStyle.Render("> ")
	}

	mark := "[ ]"
	if e.Included {
		mark = "[x]"
	}

	line := fmt.Sprintf("%s %-9s %s", mark, e.Action, e.Name())
	if v := versionLabel(e); v != "" {
		line += " " + v
	}

	switch {
	case m.Plan.IsTarget(i):
		line = targetStyle.Render(line)
	case !e.Included:
		line = excludedStyle.Render(line)
	}
	return cursor + line
}

func versionLabel(e planner.Entry) string {
	p := e.Package
	switch {
	case e.Action == planner.ActionUpgrade && p.InstalledVersion != "" && p.AvailableVersion != "":
		return fmt.Sprintf("(%s -> %s)", p.InstalledVersion, p.AvailableVersion)
	case p.Installed && p.InstalledVersion != "":
		return fmt.Sprintf("(%s)", p.InstalledVersion)
	case p.AvailableVersion != "":
		return fmt.Sprintf("(%s)", p.AvailableVersion)
	}
	return ""
}
