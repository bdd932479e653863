// Package tui is a read-only browser for a stored edition: a week list on the
// left, the selected week on the right, and a tab with the full QA report.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/almanac/internal/models"
	"github.com/julianstephens/almanac/internal/qa"
	"github.com/julianstephens/almanac/internal/tui/components/detail"
	"github.com/julianstephens/almanac/internal/tui/components/issues"
	"github.com/julianstephens/almanac/internal/tui/components/weeklist"
)

type SessionState int

const (
	StateWeeks SessionState = iota
	StateIssues
)

const listWidth = 38

type Model struct {
	edition  models.Edition
	report   qa.Report
	state    SessionState
	keys     KeyMap
	help     help.Model
	weeks    weeklist.Model
	detail   detail.Model
	issues   issues.Model
	quitting bool
	width    int
	height   int
}

func NewModel(ed models.Edition) Model {
	report := qa.Report{Issues: ed.Issues}
	m := Model{
		edition: ed,
		report:  report,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		weeks:   weeklist.New(ed.Weeks, report, 0, 0),
		detail:  detail.New(0, 0),
		issues:  issues.New(report, 0, 0),
	}
	m.syncDetail()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) syncDetail() {
	if w, ok := m.weeks.Selected(); ok {
		m.detail.SetWeek(w, m.report.ForWeek(w.Week))
	}
}

func (m *Model) resize() {
	// tabs, help and pane borders
	bodyHeight := max(m.height-5, 1)
	m.weeks.SetSize(listWidth, bodyHeight)
	m.detail.SetSize(max(m.width-listWidth-4, 10), bodyHeight)
	m.issues.SetSize(max(m.width-2, 10), bodyHeight)
}

// State reports which view is active.
func (m Model) State() SessionState { return m.state }
