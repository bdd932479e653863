package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/almanac/internal/models"
	"github.com/julianstephens/almanac/internal/pipeline"
)

// PlanCmd runs curation, allocation and content assignment without generating prose.
type PlanCmd struct {
	LocaleFlags

	Places string `help:"JSON file of candidate places." type:"existingfile" required:""`
	Seed   uint64 `help:"Content seed." default:"1"`
}

func (c *PlanCmd) Run(ctx *Context) error {
	cands, err := readCandidates(c.Places)
	if err != nil {
		return err
	}
	opts, err := PipelineOptions(ctx.Config)
	if err != nil {
		return err
	}
	plan, err := pipeline.New().Plan(pipeline.Request{
		Locale:     models.Locale{City: c.City, Region: c.Region, Country: c.Country},
		Candidates: cands,
		Seed:       c.Seed,
		Options:    opts,
	})
	if err != nil {
		return err
	}

	fallback := make(map[int]bool, len(plan.Allocation.Fallbacks))
	for _, w := range plan.Allocation.Fallbacks {
		fallback[w] = true
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("WEEK", "SEASON", "PLACE", "SONG", "BOOK", "RECIPE").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			return cellStyle
		})

	for i, tmpl := range plan.Allocation.Templates {
		place := ""
		if tmpl.Place != nil {
			place = tmpl.Place.Name
		}
		if fallback[tmpl.WeekNumber] {
			place += " *"
		}
		a := plan.Content.Assignments[i]
		t.Row(strconv.Itoa(tmpl.WeekNumber), string(tmpl.Season), place, a.Song.Title, a.Book.Title, a.Recipe.Name)
	}
	ctx.println(t.Render())

	cur := plan.Curation
	ctx.printf("%d raw, %d after dedup, %d kept, %d dropped below min score\n",
		cur.Raw, cur.Deduplicated, cur.Kept, cur.Dropped)
	if len(plan.Rejections) > 0 {
		ctx.printf("%s\n", warnStyle.Render(fmt.Sprintf("%d candidate(s) rejected:", len(plan.Rejections))))
		for _, r := range plan.Rejections {
			ctx.printf("  #%d %s: %s\n", r.Index, r.Name, r.Reason)
		}
	}
	if len(plan.Allocation.Fallbacks) > 0 {
		ctx.printf("%s\n", mutedStyle.Render("* generic fallback outing"))
	}
	return nil
}
