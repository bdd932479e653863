package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/julianstephens/almanac/internal/models"
	"github.com/julianstephens/almanac/internal/qa"
)

var csvHeader = []string{
	"week_number", "title", "season", "place_name",
	"activity_1_name", "activity_2_name", "activity_3_name", "activity_4_name",
	"recipe_name", "song_title", "song_artist", "book_title", "book_author",
}

// JSON writes the full edition, indented.
func JSON(w io.Writer, ed models.Edition) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ed)
}

// CSV writes one row per week with a fixed four activity columns.
func CSV(w io.Writer, ed models.Edition) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, week := range ed.Weeks {
		row := []string{
			strconv.Itoa(week.Week), week.Title, string(week.Season), week.PlaceToVisit,
		}
		for i := range 4 {
			name := ""
			if i < len(week.Activities) {
				name = week.Activities[i].Name
			}
			row = append(row, name)
		}
		row = append(row, week.Recipe.Name, week.Song.Title, week.Song.Artist, week.Book.Title, week.Book.Author)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Summary writes a plain-text run report: counts, fallbacks and QA issues.
func Summary(w io.Writer, ed models.Edition) error {
	m := ed.Metadata
	report := qa.Report{Issues: ed.Issues}

	_, err := fmt.Fprintf(w, `%s - Generation Summary
Generated: %s
Version: %s
Edition ID: %s
Seed: %d

LOCATION:
- %s

CONTENT STATISTICS:
- Total Weeks: %d
- Candidate Places: %d
- Rejected Candidates: %d
- After Deduplication: %d
- Curated Places: %d
- Generic Fallback Weeks: %d
- Content Exhaustions: %d
- Generation Time: %.1fs

%s
`,
		ed.Title(), ed.GeneratedAt.Format("2006-01-02 15:04:05 MST"), ed.Version, ed.ID, ed.Seed,
		ed.Locale,
		len(ed.Weeks), m.TotalCandidates, len(m.Rejected), m.Deduplicated, m.CuratedPlaces,
		len(m.FallbackWeeks), len(m.Exhaustions), float64(m.GenerationTimeMs)/1000,
		report.FormatReport())
	if err != nil {
		return err
	}

	if m.BelowViableThreshold {
		_, err = fmt.Fprintln(w, "\nNote: fewer curated places than a full year needs; generic outings were used.")
	}
	return err
}
