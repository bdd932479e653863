package weeklist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/almanac/internal/models"
	"github.com/julianstephens/almanac/internal/qa"
)

type Item struct {
	Week   models.Week
	Issues int
}

func (i Item) Title() string {
	return fmt.Sprintf("%2d. %s", i.Week.Week, i.Week.Title)
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s · %s", i.Week.Season, i.Week.PlaceToVisit)
	if i.Issues > 0 {
		desc += fmt.Sprintf(" · %d issue(s)", i.Issues)
	}
	return desc
}

func (i Item) FilterValue() string { return i.Week.Title }

type Model struct {
	list list.Model
}

func New(weeks []models.Week, report qa.Report, width, height int) Model {
	items := make([]list.Item, len(weeks))
	for i, w := range weeks {
		items[i] = Item{Week: w, Issues: len(report.ForWeek(w.Week))}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Weeks"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	return Model{list: l}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "No weeks in this edition."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Selected returns the highlighted week.
func (m Model) Selected() (models.Week, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Week, true
	}
	return models.Week{}, false
}

func (m Model) Index() int { return m.list.Index() }
