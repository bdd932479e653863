package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			if m.state == StateWeeks {
				m.state = StateIssues
			} else {
				m.state = StateWeeks
			}
			return m, nil
		}

		if m.state == StateIssues {
			m.issues, cmd = m.issues.Update(msg)
			return m, cmd
		}

		if key.Matches(msg, m.keys.PageUp, m.keys.PageDown) {
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
		m.weeks, cmd = m.weeks.Update(msg)
		m.syncDetail()
		return m, cmd
	}

	return m, nil
}
