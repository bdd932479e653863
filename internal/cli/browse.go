package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/almanac/internal/tui"
)

type BrowseCmd struct {
	ID string `arg:"" help:"Edition ID or unique prefix."`
}

func (c *BrowseCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	ed, err := ctx.Store.GetEdition(c.ID)
	if err != nil {
		return editionErr(c.ID, err)
	}

	p := tea.NewProgram(tui.NewModel(ed), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browser exited with error: %w", err)
	}
	return nil
}
