// Package qa audits a finished calendar. Findings are advisory and never change the weeks.
package qa

import (
	"fmt"
	"strings"

	"github.com/julianstephens/almanac/internal/constants"
	"github.com/julianstephens/almanac/internal/logger"
	"github.com/julianstephens/almanac/internal/models"
)

var (
	allergens        = []string{"peanut", "tree nut", "shellfish", "egg", "milk", "dairy", "soy", "wheat"}
	directivePhrases = []string{"you must", "you need to", "make sure", "be sure to"}
	summerOnlyTerms  = []string{"splash pad", "outdoor pool", "beach", "water park"}
)

const maxPlaceUses = 2

// Report is the outcome of one QA pass.
type Report struct {
	Issues []models.QAIssue
}

// Count returns the number of issues with the given severity.
func (r *Report) Count(sev models.Severity) int {
	n := 0
	for _, i := range r.Issues {
		if i.Severity == sev {
			n++
		}
	}
	return n
}

// HasErrors reports whether any error-severity issue was found.
func (r *Report) HasErrors() bool {
	return r.Count(models.SeverityError) > 0
}

// ForWeek returns the issues attached to one week.
func (r *Report) ForWeek(week int) []models.QAIssue {
	var out []models.QAIssue
	for _, i := range r.Issues {
		if i.WeekNumber == week {
			out = append(out, i)
		}
	}
	return out
}

// FormatReport returns a human-readable summary of all issues.
func (r *Report) FormatReport() string {
	if len(r.Issues) == 0 {
		return "No QA issues detected."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "QA issues: %d errors, %d warnings, %d info\n",
		r.Count(models.SeverityError), r.Count(models.SeverityWarning), r.Count(models.SeverityInfo))
	for _, sev := range []models.Severity{models.SeverityError, models.SeverityWarning, models.SeverityInfo} {
		for _, i := range r.Issues {
			if i.Severity == sev {
				fmt.Fprintf(&b, "- [%s] week %d (%s): %s\n", i.Severity, i.WeekNumber, i.Category, i.Message)
			}
		}
	}
	return b.String()
}

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// Validate runs every check over weeks and returns the findings in a stable order:
// per-week checks in week order, then cross-week checks.
func (v *Validator) Validate(weeks []models.Week) Report {
	var issues []models.QAIssue

	for _, w := range weeks {
		issues = append(issues, checkSafety(w)...)
		issues = append(issues, checkTone(w)...)
		issues = append(issues, checkPractical(w)...)
	}

	issues = append(issues, checkCoverage(weeks)...)
	issues = append(issues, checkTitleRepetition(weeks)...)
	songIssues := checkSongRepetition(weeks)
	issues = append(issues, songIssues...)
	issues = append(issues, checkPlaceRepetition(weeks)...)
	issues = append(issues, checkContentRepetition(weeks)...)
	issues = append(issues, checkSeasonal(weeks)...)

	report := Report{Issues: issues}
	logger.Info("QA complete",
		"errors", report.Count(models.SeverityError), "warnings", report.Count(models.SeverityWarning))
	if len(songIssues) > 0 {
		logger.Error("Song repetition detected", "instances", len(songIssues))
	}
	return report
}

func checkSafety(w models.Week) []models.QAIssue {
	var issues []models.QAIssue
	text := strings.ToLower(w.Recipe.Name + " " + strings.Join(w.Recipe.Ingredients, " "))
	for _, allergen := range allergens {
		if strings.Contains(text, allergen) {
			issues = append(issues, models.QAIssue{
				WeekNumber: w.Week,
				Severity:   models.SeverityInfo,
				Category:   models.IssueSafety,
				Message:    fmt.Sprintf("Recipe contains %s, make parents aware", allergen),
				Field:      "recipe",
			})
		}
	}
	return issues
}

func checkTone(w models.Week) []models.QAIssue {
	var issues []models.QAIssue
	text := strings.ToLower(w.Recipe.ToddlerTask + " " + w.Recipe.Instructions)
	for _, phrase := range directivePhrases {
		if strings.Contains(text, phrase) {
			issues = append(issues, models.QAIssue{
				WeekNumber: w.Week,
				Severity:   models.SeverityWarning,
				Category:   models.IssueTone,
				Message:    fmt.Sprintf("Uses directive phrase %q, consider softer wording like \"might\" or \"could\"", phrase),
				Field:      "recipe",
			})
		}
	}
	return issues
}

func checkPractical(w models.Week) []models.QAIssue {
	if len(w.Activities) >= constants.MinActivities {
		return nil
	}
	return []models.QAIssue{{
		WeekNumber: w.Week,
		Severity:   models.SeverityWarning,
		Category:   models.IssuePractical,
		Message:    fmt.Sprintf("Only %d activities, recommend %d-%d", len(w.Activities), constants.MinActivities, constants.MaxActivities),
		Field:      "activities",
	}}
}

func checkCoverage(weeks []models.Week) []models.QAIssue {
	var issues []models.QAIssue
	seen := make(map[int]int, len(weeks))
	for _, w := range weeks {
		seen[w.Week]++
	}
	for week := 1; week <= constants.WeeksPerYear; week++ {
		switch n := seen[week]; {
		case n == 0:
			issues = append(issues, models.QAIssue{
				WeekNumber: week,
				Severity:   models.SeverityError,
				Category:   models.IssueDevelopment,
				Message:    fmt.Sprintf("Week %d is missing from the calendar", week),
				Field:      "week",
			})
		case n > 1:
			issues = append(issues, models.QAIssue{
				WeekNumber: week,
				Severity:   models.SeverityError,
				Category:   models.IssueDevelopment,
				Message:    fmt.Sprintf("Week %d appears %d times", week, n),
				Field:      "week",
			})
		}
	}
	return issues
}

func checkTitleRepetition(weeks []models.Week) []models.QAIssue {
	var issues []models.QAIssue
	for _, g := range groupBy(weeks, func(w models.Week) (string, string) {
		return strings.ToLower(strings.TrimSpace(w.Title)), w.Title
	}) {
		if len(g.weeks) > 1 {
			issues = append(issues, models.QAIssue{
				WeekNumber: g.weeks[0],
				Severity:   models.SeverityError,
				Category:   models.IssueDevelopment,
				Message:    fmt.Sprintf("Title repetition: %q appears in weeks %s", g.label, joinWeeks(g.weeks)),
				Field:      "title",
			})
		}
	}
	return issues
}

func checkSongRepetition(weeks []models.Week) []models.QAIssue {
	var issues []models.QAIssue
	for _, g := range groupBy(weeks, func(w models.Week) (string, string) {
		return w.Song.Key(), w.Song.Title
	}) {
		if len(g.weeks) > 1 {
			issues = append(issues, models.QAIssue{
				WeekNumber: g.weeks[0],
				Severity:   models.SeverityError,
				Category:   models.IssueDevelopment,
				Message:    fmt.Sprintf("Song repetition: %q appears in weeks %s", g.label, joinWeeks(g.weeks)),
				Field:      "song",
			})
		}
	}
	return issues
}

func checkPlaceRepetition(weeks []models.Week) []models.QAIssue {
	var issues []models.QAIssue
	for _, g := range groupBy(weeks, func(w models.Week) (string, string) {
		return w.PlaceToVisit, w.PlaceToVisit
	}) {
		if len(g.weeks) > maxPlaceUses {
			issues = append(issues, models.QAIssue{
				WeekNumber: g.weeks[0],
				Severity:   models.SeverityWarning,
				Category:   models.IssueDevelopment,
				Message: fmt.Sprintf("Excessive place repetition: %q appears %d times in weeks %s",
					g.label, len(g.weeks), joinWeeks(g.weeks)),
				Field: "placeToVisit",
			})
		}
	}
	return issues
}

// checkContentRepetition flags repeated books and recipes. They can only repeat
// after a pool was exhausted, so they are warnings.
func checkContentRepetition(weeks []models.Week) []models.QAIssue {
	var issues []models.QAIssue
	for _, g := range groupBy(weeks, func(w models.Week) (string, string) {
		return w.Book.Key(), w.Book.Title
	}) {
		if len(g.weeks) > 1 {
			issues = append(issues, models.QAIssue{
				WeekNumber: g.weeks[0],
				Severity:   models.SeverityWarning,
				Category:   models.IssueDevelopment,
				Message:    fmt.Sprintf("Book repetition: %q appears in weeks %s", g.label, joinWeeks(g.weeks)),
				Field:      "book",
			})
		}
	}
	for _, g := range groupBy(weeks, func(w models.Week) (string, string) {
		return w.Recipe.Key(), w.Recipe.Name
	}) {
		if len(g.weeks) > 1 {
			issues = append(issues, models.QAIssue{
				WeekNumber: g.weeks[0],
				Severity:   models.SeverityWarning,
				Category:   models.IssueDevelopment,
				Message:    fmt.Sprintf("Recipe repetition: %q appears in weeks %s", g.label, joinWeeks(g.weeks)),
				Field:      "recipe",
			})
		}
	}
	return issues
}

func checkSeasonal(weeks []models.Week) []models.QAIssue {
	var issues []models.QAIssue
	for _, w := range weeks {
		if w.Week < 1 || w.Week > constants.WinterCheckLastWeek || w.PlaceToVisit == "" {
			continue
		}
		place := strings.ToLower(w.PlaceToVisit)
		if strings.Contains(place, "indoor") {
			continue
		}
		for _, term := range summerOnlyTerms {
			if strings.Contains(place, term) {
				issues = append(issues, models.QAIssue{
					WeekNumber: w.Week,
					Severity:   models.SeverityWarning,
					Category:   models.IssueLocal,
					Message:    fmt.Sprintf("Potential seasonal mismatch: %q in winter (week %d)", w.PlaceToVisit, w.Week),
					Field:      "placeToVisit",
				})
			}
		}
	}
	return issues
}

type group struct {
	label string
	weeks []int
}

// groupBy buckets weeks by key in first-appearance order. Empty keys are skipped.
func groupBy(weeks []models.Week, key func(models.Week) (string, string)) []group {
	index := make(map[string]int)
	var groups []group
	for _, w := range weeks {
		k, label := key(w)
		if k == "" || k == "|" {
			continue
		}
		if i, ok := index[k]; ok {
			groups[i].weeks = append(groups[i].weeks, w.Week)
			continue
		}
		index[k] = len(groups)
		groups = append(groups, group{label: label, weeks: []int{w.Week}})
	}
	return groups
}

func joinWeeks(weeks []int) string {
	parts := make([]string, len(weeks))
	for i, w := range weeks {
		parts[i] = fmt.Sprint(w)
	}
	return strings.Join(parts, ", ")
}
