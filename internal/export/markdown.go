package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/julianstephens/almanac/internal/calendar"
	"github.com/julianstephens/almanac/internal/models"
)

var seasonOrder = []models.Season{
	models.SeasonWinter, models.SeasonSpring, models.SeasonSummer, models.SeasonFall,
}

// Markdown writes the edition as a book: title page, contents by season, then one
// section per week.
func Markdown(w io.Writer, ed models.Edition) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# %s\n\n", ed.Title())
	fmt.Fprintf(bw, "*52 Weeks of Seasonal Learning & Play for Families*\n\n")
	fmt.Fprintf(bw, "Generated: %s\n", ed.GeneratedAt.Format("January 2, 2006"))
	fmt.Fprintf(bw, "Version: %s\n\n---\n\n", ed.Version)

	writeContents(bw, ed.Weeks)

	for _, week := range ed.Weeks {
		bw.WriteString("\n---\n\n")
		writeWeek(bw, week)
	}

	return bw.Flush()
}

func writeContents(bw *bufio.Writer, weeks []models.Week) {
	bw.WriteString("# Table of Contents\n")
	for _, season := range seasonOrder {
		var inSeason []models.Week
		for _, w := range weeks {
			if calendar.SeasonForWeek(w.Week) == season {
				inSeason = append(inSeason, w)
			}
		}
		if len(inSeason) == 0 {
			continue
		}

		fmt.Fprintf(bw, "\n## %s Weeks (Weeks %d-%d)\n\n", capitalize(string(season)),
			inSeason[0].Week, inSeason[len(inSeason)-1].Week)
		for _, w := range inSeason {
			if w.PlaceToVisit != "" {
				fmt.Fprintf(bw, "%d. %s - *%s*\n", w.Week, w.Title, w.PlaceToVisit)
			} else {
				fmt.Fprintf(bw, "%d. %s\n", w.Week, w.Title)
			}
		}
	}
}

func writeWeek(bw *bufio.Writer, w models.Week) {
	fmt.Fprintf(bw, "## Week %d: %s\n\n", w.Week, w.Title)
	if w.PlaceToVisit != "" {
		fmt.Fprintf(bw, "**Place to visit:** %s\n\n", w.PlaceToVisit)
	}

	bw.WriteString("### Activities\n\n")
	for _, a := range w.Activities {
		if a.Description != "" {
			fmt.Fprintf(bw, "- **%s**: %s\n", a.Name, a.Description)
		} else {
			fmt.Fprintf(bw, "- **%s**\n", a.Name)
		}
	}

	fmt.Fprintf(bw, "\n### Song\n\n\"%s\" by %s\n", w.Song.Title, w.Song.Artist)
	fmt.Fprintf(bw, "\n### Book\n\n*%s* by %s\n", w.Book.Title, w.Book.Author)

	fmt.Fprintf(bw, "\n### Recipe: %s\n\n", w.Recipe.Name)
	if len(w.Recipe.Ingredients) > 0 {
		bw.WriteString("Ingredients:\n")
		for _, ing := range w.Recipe.Ingredients {
			fmt.Fprintf(bw, "- %s\n", ing)
		}
		bw.WriteString("\n")
	}
	if w.Recipe.Instructions != "" {
		fmt.Fprintf(bw, "Instructions: %s\n\n", w.Recipe.Instructions)
	}
	if w.Recipe.ToddlerTask != "" {
		fmt.Fprintf(bw, "Toddler task: %s\n", w.Recipe.ToddlerTask)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
