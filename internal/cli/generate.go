package cli

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/almanac/internal/export"
	"github.com/julianstephens/almanac/internal/ingest"
	"github.com/julianstephens/almanac/internal/models"
	"github.com/julianstephens/almanac/internal/pipeline"
	"github.com/julianstephens/almanac/internal/qa"
	"github.com/julianstephens/almanac/internal/runlock"
)

// LocaleFlags are shared by commands that build a calendar.
type LocaleFlags struct {
	City    string `help:"City the calendar is for."`
	Region  string `help:"State or region."`
	Country string `help:"Country."`
}

func (f LocaleFlags) resolve(ctx *Context) (models.Locale, error) {
	loc := models.Locale{
		City:    strings.TrimSpace(f.City),
		Region:  strings.TrimSpace(f.Region),
		Country: strings.TrimSpace(f.Country),
	}
	if loc.City != "" {
		return loc, nil
	}
	if !ctx.Interactive {
		return loc, errors.New("--city is required when not running in a terminal")
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("City").
				Value(&loc.City).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("city is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("State or region").
				Value(&loc.Region),
		),
	)
	if err := form.Run(); err != nil {
		return loc, fmt.Errorf("locale prompt failed: %w", err)
	}
	loc.City = strings.TrimSpace(loc.City)
	loc.Region = strings.TrimSpace(loc.Region)
	return loc, nil
}

func readCandidates(path string) ([]ingest.Candidate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open places file: %w", err)
	}
	defer f.Close()
	return ingest.Decode(f)
}

type GenerateCmd struct {
	LocaleFlags

	Places  string   `help:"JSON file of candidate places." type:"existingfile" required:""`
	Seed    uint64   `help:"Content seed. Zero picks a random one."`
	Offline bool     `help:"Use the offline generator regardless of config."`
	Out     string   `help:"Output directory for exports." type:"path"`
	Format  []string `help:"Export formats (markdown, json, csv, summary, ics)." sep:","`
	NoSave  bool     `help:"Do not store the edition in the archive."`
}

func (c *GenerateCmd) Run(ctx *Context) error {
	locale, err := c.resolve(ctx)
	if err != nil {
		return err
	}
	formats, err := c.formats(ctx)
	if err != nil {
		return err
	}
	cands, err := readCandidates(c.Places)
	if err != nil {
		return err
	}
	opts, err := PipelineOptions(ctx.Config)
	if err != nil {
		return err
	}
	gen, err := NewGenerator(ctx.Config, c.Offline)
	if err != nil {
		return err
	}
	if !c.NoSave {
		if err := ctx.Store.Load(); err != nil {
			return err
		}
	}

	lock, err := runlock.Acquire(ctx.dataDir())
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	seed := c.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ctx.printf("%s\n", titleStyle.Render(fmt.Sprintf("Building %s Edition (%s generator, seed %d)", locale.City, gen.Name(), seed)))
	edition, err := pipeline.New().Run(runCtx, pipeline.Request{
		Locale:     locale,
		Candidates: cands,
		Seed:       seed,
		Generator:  gen,
		Options:    opts,
		OnProgress: func(p pipeline.Progress) {
			ctx.printf("%s %s\n", mutedStyle.Render(fmt.Sprintf("[%3d%%]", p.Percent)), p.Message)
		},
	})
	if err != nil {
		return err
	}

	if !c.NoSave {
		if err := ctx.Store.SaveEdition(edition); err != nil {
			return fmt.Errorf("failed to save edition: %w", err)
		}
		ctx.printf("%s %s\n", okStyle.Render("Saved edition"), edition.ID)
	}

	printRunSummary(ctx, edition)

	outDir := c.Out
	if outDir == "" {
		outDir = ctx.Config.Export.OutputDir
	}
	paths, err := export.WriteFiles(edition, outDir, formats)
	if err != nil {
		return err
	}
	for _, f := range formats {
		ctx.printf("  %-8s %s\n", f, paths[f])
	}
	return nil
}

func (c *GenerateCmd) formats(ctx *Context) ([]export.Format, error) {
	return parseFormats(c.Format, ctx.Config.Export.Formats)
}

func parseFormats(flags, configured []string) ([]export.Format, error) {
	names := flags
	if len(names) == 0 {
		names = configured
	}
	out := make([]export.Format, 0, len(names))
	for _, n := range names {
		f, err := export.ParseFormat(n)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func printRunSummary(ctx *Context, ed models.Edition) {
	m := ed.Metadata
	ctx.printf("\n%d weeks · %d curated places · %d generic fallback weeks · %d content exhaustions\n",
		len(ed.Weeks), m.CuratedPlaces, len(m.FallbackWeeks), len(m.Exhaustions))
	if len(m.Rejected) > 0 {
		ctx.printf("%s\n", warnStyle.Render(fmt.Sprintf("%d candidate(s) rejected during ingestion", len(m.Rejected))))
	}
	if m.BelowViableThreshold {
		ctx.printf("%s\n", warnStyle.Render("Fewer curated places than a full year needs; generic outings filled the gaps."))
	}
	report := qa.Report{Issues: ed.Issues}
	printReport(ctx, &report)
}

func printReport(ctx *Context, report *qa.Report) {
	if len(report.Issues) == 0 {
		ctx.printf("%s\n\n", okStyle.Render("No QA issues detected."))
		return
	}
	ctx.printf("\nQA issues: %s, %s, %s\n",
		errStyle.Render(fmt.Sprintf("%d errors", report.Count(models.SeverityError))),
		warnStyle.Render(fmt.Sprintf("%d warnings", report.Count(models.SeverityWarning))),
		mutedStyle.Render(fmt.Sprintf("%d info", report.Count(models.SeverityInfo))))
	for _, i := range report.Issues {
		ctx.printf("  %s week %d (%s): %s\n",
			severityStyle(i.Severity).Render(fmt.Sprintf("[%s]", i.Severity)), i.WeekNumber, i.Category, i.Message)
	}
	ctx.println()
}
