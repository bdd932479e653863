package issues

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/almanac/internal/models"
	"github.com/julianstephens/almanac/internal/qa"
)

var (
	severityStyles = map[models.Severity]lipgloss.Style{
		models.SeverityError:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		models.SeverityWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		models.SeverityInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
	}

	lineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	okStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

type Model struct {
	viewport viewport.Model
	report   qa.Report
}

func New(report qa.Report, width, height int) Model {
	m := Model{viewport: viewport.New(width, height), report: report}
	m.viewport.SetContent(m.Content())
	return m
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.viewport.SetContent(m.Content())
}

// Content renders every issue grouped by severity.
func (m Model) Content() string {
	if len(m.report.Issues) == 0 {
		return okStyle.Render("No QA issues detected.")
	}

	var b strings.Builder
	for _, sev := range []models.Severity{models.SeverityError, models.SeverityWarning, models.SeverityInfo} {
		n := m.report.Count(sev)
		if n == 0 {
			continue
		}
		b.WriteString(severityStyles[sev].Render(fmt.Sprintf("%s (%d)", strings.ToUpper(string(sev)), n)) + "\n")
		for _, i := range m.report.Issues {
			if i.Severity != sev {
				continue
			}
			b.WriteString(lineStyle.Render(fmt.Sprintf("  week %2d  %-11s %s", i.WeekNumber, i.Category, i.Message)) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
