package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/almanac/internal/constants"
	"github.com/julianstephens/almanac/internal/content"
	"github.com/julianstephens/almanac/internal/generator"
	"github.com/julianstephens/almanac/internal/logger"
	"github.com/julianstephens/almanac/internal/models"
)

func (r *Runner) generate(ctx context.Context, req Request, plan PlanResult) ([]models.Week, error) {
	titles := content.NewWeekTitleRegistry()
	templates := plan.Allocation.Templates
	weeks := make([]models.Week, 0, len(templates))

	for i, tmpl := range templates {
		if i%6 == 0 {
			r.progress(req, StageGenerate,
				fmt.Sprintf("Generating weeks %d-%d", i+1, min(i+6, len(templates))),
				30+60*i/len(templates))
		}

		assignment := plan.Content.Assignments[i]
		draft, err := r.generateWeek(ctx, req, tmpl, assignment, titles)
		if err != nil {
			return nil, err
		}

		acts := draft.Activities
		if len(acts) > constants.MaxActivities {
			acts = acts[:constants.MaxActivities]
		}
		weeks = append(weeks, models.Week{
			Week:         tmpl.WeekNumber,
			Title:        draft.Title,
			Season:       tmpl.Season,
			PlaceToVisit: tmpl.Place.Name,
			Activities:   acts,
			Song:         assignment.Song,
			Book:         assignment.Book,
			Recipe:       assignment.Recipe,
		})
	}
	return weeks, nil
}

// generateWeek asks the generator for one week, retrying with exponential backoff.
// A draft whose title is already claimed counts as a failed attempt. If the last
// attempt still collides, the title is suffixed with the week number.
func (r *Runner) generateWeek(ctx context.Context, req Request, tmpl models.WeekTemplate,
	assignment models.ContentAssignment, titles *content.TitleRegistry) (generator.Draft, error) {
	attempts := max(req.Options.MaxRetries, 1)

	var (
		lastErr   error
		collision *generator.Draft
	)
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return generator.Draft{}, err
		}

		draft, err := req.Generator.GenerateWeek(ctx, generator.WeekRequest{
			Template:   tmpl,
			Content:    assignment,
			Locale:     req.Locale,
			UsedTitles: titles.Used(),
			Attempt:    attempt,
		})
		switch {
		case err != nil:
			lastErr = err
			logger.Warn("Week generation failed", "week", tmpl.WeekNumber,
				"attempt", attempt, "max_attempts", attempts, "error", err)
		case tmpl.IsConstant:
			draft.Title = tmpl.Title
			return draft, nil
		case draft.Title == "":
			lastErr = fmt.Errorf("generator returned an empty title")
			logger.Warn("Week generation returned no title", "week", tmpl.WeekNumber, "attempt", attempt)
		case titles.Reserve(draft.Title):
			return draft, nil
		default:
			d := draft
			collision = &d
			lastErr = fmt.Errorf("title %q already used", draft.Title)
			logger.Warn("Generated title already used", "week", tmpl.WeekNumber,
				"attempt", attempt, "title", draft.Title)
		}

		if attempt < attempts {
			delay := req.Options.Backoff * time.Duration(1<<(attempt-1))
			if err := r.sleep(ctx, delay); err != nil {
				return generator.Draft{}, err
			}
		}
	}

	if collision != nil {
		collision.Title = fmt.Sprintf("%s (Week %d)", collision.Title, tmpl.WeekNumber)
		titles.Reserve(collision.Title)
		logger.Warn("Disambiguated repeated title", "week", tmpl.WeekNumber, "title", collision.Title)
		return *collision, nil
	}
	return generator.Draft{}, fmt.Errorf("failed to generate week %d after %d attempts: %w",
		tmpl.WeekNumber, attempts, lastErr)
}
