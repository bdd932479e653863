package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/almanac/internal/models"
)

func testEdition() models.Edition {
	ed := models.Edition{
		ID:     "ed-tui",
		Locale: models.Locale{City: "Boise"},
		Issues: []models.QAIssue{
			{WeekNumber: 2, Severity: models.SeverityWarning, Category: models.IssuePractical, Message: "Only 2 activities"},
		},
	}
	for n := 1; n <= 3; n++ {
		ed.Weeks = append(ed.Weeks, models.Week{
			Week:         n,
			Title:        []string{"Cozy Beginnings", "Frosty Story Time", "Snowy Farm Friends"}[n-1],
			Season:       models.SeasonWinter,
			PlaceToVisit: "Boise Library",
			Activities:   []models.Activity{{Name: "Read", Description: "Pick a picture book"}},
			Song:         models.Song{Title: "Snowflakes", Artist: "Traditional"},
			Book:         models.Book{Title: "Owl Moon", Author: "Jane Yolen"},
			Recipe:       models.Recipe{Name: "Cocoa"},
		})
	}
	return ed
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func TestModel_SelectsFirstWeek(t *testing.T) {
	m := NewModel(testEdition())
	if !strings.Contains(m.detail.Content(), "Week 1: Cozy Beginnings") {
		t.Errorf("Expected week 1 in detail, got %q", m.detail.Content())
	}
}

func TestModel_NavigateWeeks(t *testing.T) {
	m := NewModel(testEdition())
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})

	content := m.detail.Content()
	if !strings.Contains(content, "Week 2: Frosty Story Time") {
		t.Fatalf("Expected week 2 after moving down, got %q", content)
	}
	if !strings.Contains(content, "Only 2 activities") {
		t.Errorf("Expected week 2 QA issue in detail, got %q", content)
	}
}

func TestModel_TabTogglesIssues(t *testing.T) {
	m := NewModel(testEdition())
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.State() != StateIssues {
		t.Fatalf("Expected issues view after tab, got %v", m.State())
	}
	if !strings.Contains(m.issues.Content(), "WARNING (1)") {
		t.Errorf("Expected warning group in issues view, got %q", m.issues.Content())
	}
	if !strings.Contains(m.View(), "Issues (1)") {
		t.Error("Expected issue count in tab bar")
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.State() != StateWeeks {
		t.Errorf("Expected weeks view after second tab, got %v", m.State())
	}
}

func TestModel_Quit(t *testing.T) {
	m := NewModel(testEdition())
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("Expected empty view after quitting")
	}
}
