// Package allocator assigns one place to each of the 52 week slots.
package allocator

import (
	"slices"
	"strings"

	"github.com/julianstephens/almanac/internal/calendar"
	"github.com/julianstephens/almanac/internal/constants"
	"github.com/julianstephens/almanac/internal/logger"
	"github.com/julianstephens/almanac/internal/models"
)

var (
	harvestNameTerms    = []string{"pumpkin", "harvest"}
	holidayNameTerms    = []string{"holiday", "light", "christmas", "december"}
	holidayDescTerms    = []string{"holiday", "christmas", "december"}
	farmMuseumExemption = "museum"
)

// Result is the output of one allocation run.
type Result struct {
	Templates []models.WeekTemplate
	// Fallbacks lists the weeks that received a generic place.
	Fallbacks []int
	State     *State
}

type Allocator struct{}

func New() *Allocator {
	return &Allocator{}
}

// Allocate fills all 52 weeks from the bank. Every template gets a non-nil place.
func (a *Allocator) Allocate(bank models.CuratedPlacesBank) Result {
	state := NewState()
	res := Result{
		Templates: make([]models.WeekTemplate, 0, constants.WeeksPerYear),
		State:     state,
	}

	for week := 1; week <= constants.WeeksPerYear; week++ {
		tmpl, generic := a.AllocateWeek(state, bank, week)
		if generic {
			res.Fallbacks = append(res.Fallbacks, week)
		}
		res.Templates = append(res.Templates, tmpl)
	}

	logger.Info("Week allocation complete",
		"unique_places", state.UsedCount(), "generic_fallbacks", len(res.Fallbacks))
	return res
}

// AllocateWeek decides a single week against state and updates it. The boolean
// reports whether a generic fallback was used.
func (a *Allocator) AllocateWeek(state *State, bank models.CuratedPlacesBank, week int) (models.WeekTemplate, bool) {
	tmpl := calendar.Template(week)

	pool := Pool(bank, week, state)
	var chosen models.Place
	generic := len(pool) == 0

	if generic {
		chosen = GenericPlace(tmpl.Season, week)
		logger.Warn("No unique places available, using generic fallback",
			"week", week, "season", tmpl.Season, "place", chosen.Name)
	} else {
		chosen = SelectBest(pool, state.RecentCategories(week))
		state.MarkUsed(chosen.Name)
	}
	state.Record(week, chosen.Category)

	tmpl.Place = &chosen
	return tmpl, generic
}

// Pool builds the candidate set for a week, excluding places already used.
func Pool(bank models.CuratedPlacesBank, week int, state *State) []models.Place {
	if calendar.InHolidayWindow(week) {
		return holidayPool(bank, state)
	}
	season := calendar.Template(week).Season
	return unused(state, bank.Season(season), bank.YearRound)
}

func holidayPool(bank models.CuratedPlacesBank, state *State) []models.Place {
	merged := unused(state, bank.Fall, bank.YearRound, bank.Winter)

	pool := make([]models.Place, 0, len(merged))
	for _, p := range merged {
		if !harvestThemed(p) {
			pool = append(pool, p)
		}
	}

	var holiday []models.Place
	for _, p := range pool {
		if holidayThemed(p) {
			holiday = append(holiday, p)
		}
	}
	if len(holiday) > 0 {
		return holiday
	}
	return pool
}

// unused concatenates buckets in order, dropping used names and repeated names.
func unused(state *State, buckets ...[]models.Place) []models.Place {
	seen := make(map[string]bool)
	var out []models.Place
	for _, bucket := range buckets {
		for _, p := range bucket {
			if seen[p.Name] || state.IsUsed(p.Name) {
				continue
			}
			seen[p.Name] = true
			out = append(out, p)
		}
	}
	return out
}

func harvestThemed(p models.Place) bool {
	name := strings.ToLower(p.Name)
	if containsAny(name, harvestNameTerms) {
		return true
	}
	return p.Category == models.CategoryFarm && !strings.Contains(name, farmMuseumExemption)
}

func holidayThemed(p models.Place) bool {
	return containsAny(strings.ToLower(p.Name), holidayNameTerms) ||
		containsAny(strings.ToLower(p.Description), holidayDescTerms)
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// SelectBest applies the type-diversity rule and returns the highest scorer.
// The earliest place in pool order wins a tie. pool must be non-empty.
func SelectBest(pool []models.Place, recent []models.Category) models.Place {
	candidates := make([]models.Place, 0, len(pool))
	for _, p := range pool {
		if !slices.Contains(recent, p.Category) {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		candidates = pool
	}

	best := candidates[0]
	for _, p := range candidates[1:] {
		if p.Score > best.Score {
			best = p
		}
	}
	return best
}
