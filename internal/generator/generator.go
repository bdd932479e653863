// Package generator is the boundary to the text generator that writes week titles
// and activities. Place, song, book and recipe are fixed before any call is made.
package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/almanac/internal/models"
)

var ErrMissingAPIKey = errors.New("generator API key not configured")

// WeekRequest carries everything a generator needs for one week.
type WeekRequest struct {
	Template models.WeekTemplate
	Content  models.ContentAssignment
	Locale   models.Locale
	// UsedTitles are the titles already claimed in this run.
	UsedTitles []string
	// Attempt counts from 1 across retries of the same week.
	Attempt int
}

// Draft is a generator's answer. Title is ignored for constant weeks.
type Draft struct {
	Title      string            `json:"title"`
	Activities []models.Activity `json:"activities"`
}

type Generator interface {
	Name() string
	GenerateWeek(ctx context.Context, req WeekRequest) (Draft, error)
}

// BuildPrompt renders the instructions sent to a language-model generator.
func BuildPrompt(req WeekRequest) string {
	tmpl := req.Template
	var b strings.Builder

	b.WriteString("You write weekly family activity guides for children ages 0-5.\n\n")
	fmt.Fprintf(&b, "LOCATION: %s\n", req.Locale)
	fmt.Fprintf(&b, "WEEK: %d\nSEASON: %s\n", tmpl.WeekNumber, tmpl.Season)
	if tmpl.IsConstant {
		fmt.Fprintf(&b, "TITLE (LOCKED): %s\n", tmpl.Title)
	}
	if tmpl.Theme != "" {
		fmt.Fprintf(&b, "THEME: %s\n", tmpl.Theme)
	}
	if p := tmpl.Place; p != nil {
		desc := p.Description
		if desc == "" {
			desc = "A local activity spot"
		}
		fmt.Fprintf(&b, "PLACE TO VISIT: %s\nDESCRIPTION: %s\nTYPE: %s\n", p.Name, desc, p.Category)
	}
	fmt.Fprintf(&b, "SONG: %s by %s\nBOOK: %s by %s\nRECIPE: %s\n",
		req.Content.Song.Title, req.Content.Song.Artist,
		req.Content.Book.Title, req.Content.Book.Author,
		req.Content.Recipe.Name)

	if !tmpl.IsConstant && len(req.UsedTitles) > 0 {
		fmt.Fprintf(&b, "\nTITLES ALREADY USED (DO NOT REPEAT):\n%s\n", strings.Join(req.UsedTitles, ", "))
	}

	b.WriteString("\nTASK:\n")
	if !tmpl.IsConstant {
		b.WriteString("1. Write a warm, evocative week title of 3-5 words that is not in the used list.\n")
	}
	b.WriteString("2. Write 3-4 activities. Name: short and action-oriented. Description: 5-10 simple words.\n")
	b.WriteString("Use everyday language, assume limited time and resources.\n\n")
	b.WriteString(`Respond with JSON only: {"title": "...", "activities": [{"name": "...", "description": "..."}]}`)
	return b.String()
}
