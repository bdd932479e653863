package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/almanac/internal/backup"
	"github.com/julianstephens/almanac/internal/runlock"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	snap, err := backup.NewManager(ctx.Store.Path()).Create()
	if err != nil {
		return err
	}
	ctx.printf("%s %s (%s)\n", okStyle.Render("Created snapshot"), snap.Path, humanize.Bytes(uint64(snap.Size)))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.Path())
	snaps, err := mgr.List()
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		ctx.printf("No snapshots in %s.\n", mgr.Dir())
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("SNAPSHOT", "TAKEN", "SIZE").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			return cellStyle
		})
	for _, s := range snaps {
		t.Row(s.Name(), humanize.Time(s.TakenAt), humanize.Bytes(uint64(s.Size)))
	}
	ctx.println(t.Render())
	return nil
}

type BackupRestoreCmd struct {
	Snapshot string `arg:"" help:"Snapshot file name or path."`
	Yes      bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.Path())
	path, err := mgr.Resolve(c.Snapshot)
	if err != nil {
		return err
	}

	if !c.Yes {
		if !ctx.Interactive {
			return errors.New("refusing to replace the archive without confirmation, pass --yes")
		}
		confirmed := false
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Replace the edition archive with %s?", c.Snapshot)).
					Affirmative("Restore").
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

	lock, err := runlock.Acquire(ctx.dataDir())
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close archive: %w", err)
	}
	previous, err := mgr.Restore(path)
	if previous != nil {
		ctx.printf("Saved current archive as %s\n", previous.Name())
	}
	if err != nil {
		return err
	}
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("restored archive failed to open: %w", err)
	}
	ctx.printf("%s %s\n", okStyle.Render("Restored archive from"), path)
	return nil
}
