package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateWeeks:
		content = lipgloss.JoinHorizontal(lipgloss.Top,
			paneStyle.Render(m.weeks.View()),
			paneStyle.Render(m.detail.View()),
		)
	case StateIssues:
		content = paneStyle.Render(m.issues.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.help.View(m.keys),
	)
}

func (m Model) viewTabs() string {
	labels := []string{"Weeks", fmt.Sprintf("Issues (%d)", len(m.report.Issues))}
	var tabs []string
	for i, label := range labels {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	tabs = append(tabs, headerStyle.Render(m.edition.Title()))
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
