package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/almanac/internal/constants"
	"github.com/julianstephens/almanac/internal/export"
	"github.com/julianstephens/almanac/internal/storage"
)

type EditionsListCmd struct{}

func (c *EditionsListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	list, err := ctx.Store.ListEditions()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		ctx.println("No editions yet. Run 'almanac generate' to build one.")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("ID", "LOCATION", "GENERATED", "WEEKS", "ERRORS", "WARNINGS").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			return cellStyle
		})
	for _, s := range list {
		t.Row(shortID(s.ID), s.Locale.String(), s.GeneratedAt.Local().Format(constants.DateFormat+" 15:04"),
			strconv.Itoa(s.Weeks), strconv.Itoa(s.Errors), strconv.Itoa(s.Warnings))
	}
	ctx.println(t.Render())
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

type EditionsShowCmd struct {
	ID string `arg:"" help:"Edition ID or unique prefix."`
}

func (c *EditionsShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	ed, err := ctx.Store.GetEdition(c.ID)
	if err != nil {
		return editionErr(c.ID, err)
	}
	return export.Summary(ctx.out(), ed)
}

type EditionsDeleteCmd struct {
	ID  string `arg:"" help:"Edition ID or unique prefix."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *EditionsDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	ed, err := ctx.Store.GetEdition(c.ID)
	if err != nil {
		return editionErr(c.ID, err)
	}

	if !c.Yes {
		if !ctx.Interactive {
			return errors.New("refusing to delete without confirmation, pass --yes")
		}
		confirmed := false
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Delete %s (%s)?", ed.Title(), shortID(ed.ID))).
					Affirmative("Delete").
					Negative("Cancel").
					Value(&confirmed),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("confirmation prompt failed: %w", err)
		}
		if !confirmed {
			ctx.println("Cancelled.")
			return nil
		}
	}

	if err := ctx.Store.DeleteEdition(ed.ID); err != nil {
		return fmt.Errorf("failed to delete edition: %w", err)
	}
	ctx.printf("Deleted edition: %s (ID: %s)\n", ed.Title(), ed.ID)
	return nil
}

func editionErr(id string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no edition matches %q", id)
	}
	return err
}
