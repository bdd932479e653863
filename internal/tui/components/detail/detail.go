package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/almanac/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Bold(true)

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	issueStyles = map[models.Severity]lipgloss.Style{
		models.SeverityError:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		models.SeverityWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		models.SeverityInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	}
)

type Model struct {
	viewport viewport.Model
	week     *models.Week
	issues   []models.QAIssue
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.week == nil {
		return "Select a week."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetWeek(w models.Week, issues []models.QAIssue) {
	m.week = &w
	m.issues = issues
	m.Render()
	m.viewport.GotoTop()
}

// Content returns the rendered text, without viewport clipping.
func (m Model) Content() string {
	if m.week == nil {
		return ""
	}
	return render(*m.week, m.issues)
}

func (m *Model) Render() {
	if m.week == nil {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(render(*m.week, m.issues))
}

func render(w models.Week, issues []models.QAIssue) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Week %d: %s", w.Week, w.Title)) + "\n")
	b.WriteString(itemStyle.Render(fmt.Sprintf("%s · %s", w.Season, w.PlaceToVisit)) + "\n\n")

	b.WriteString(sectionStyle.Render("Activities") + "\n")
	for _, a := range w.Activities {
		b.WriteString(itemStyle.Render(fmt.Sprintf("• %s: %s", a.Name, a.Description)) + "\n")
	}

	b.WriteString("\n" + sectionStyle.Render("Song") + "\n")
	b.WriteString(itemStyle.Render(fmt.Sprintf("%q by %s", w.Song.Title, w.Song.Artist)) + "\n")

	b.WriteString("\n" + sectionStyle.Render("Book") + "\n")
	b.WriteString(itemStyle.Render(fmt.Sprintf("%s by %s", w.Book.Title, w.Book.Author)) + "\n")

	b.WriteString("\n" + sectionStyle.Render("Recipe") + "\n")
	b.WriteString(itemStyle.Render(w.Recipe.Name) + "\n")
	if len(w.Recipe.Ingredients) > 0 {
		b.WriteString(itemStyle.Render(strings.Join(w.Recipe.Ingredients, ", ")) + "\n")
	}
	if w.Recipe.ToddlerTask != "" {
		b.WriteString(itemStyle.Render("Toddler task: "+w.Recipe.ToddlerTask) + "\n")
	}

	if len(issues) > 0 {
		b.WriteString("\n" + sectionStyle.Render("QA") + "\n")
		for _, i := range issues {
			b.WriteString(issueStyles[i.Severity].Render(fmt.Sprintf("[%s] %s", i.Severity, i.Message)) + "\n")
		}
	}
	return b.String()
}
