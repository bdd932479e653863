package cli

import (
	"github.com/julianstephens/almanac/internal/export"
)

type ExportCmd struct {
	ID     string   `arg:"" help:"Edition ID or unique prefix."`
	Out    string   `help:"Output directory." type:"path"`
	Format []string `help:"Export formats (markdown, json, csv, summary, ics)." sep:","`
}

func (c *ExportCmd) Run(ctx *Context) error {
	formats, err := parseFormats(c.Format, ctx.Config.Export.Formats)
	if err != nil {
		return err
	}
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	ed, err := ctx.Store.GetEdition(c.ID)
	if err != nil {
		return editionErr(c.ID, err)
	}

	out := c.Out
	if out == "" {
		out = ctx.Config.Export.OutputDir
	}
	paths, err := export.WriteFiles(ed, out, formats)
	if err != nil {
		return err
	}
	for _, f := range formats {
		ctx.printf("  %-8s %s\n", f, paths[f])
	}
	return nil
}
