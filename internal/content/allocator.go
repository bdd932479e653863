package content

import (
	"math/rand/v2"

	"github.com/julianstephens/almanac/internal/constants"
	"github.com/julianstephens/almanac/internal/logger"
	"github.com/julianstephens/almanac/internal/models"
)

const (
	KindSong   = "song"
	KindBook   = "book"
	KindRecipe = "recipe"
)

// RNG is the randomness the allocator draws from. *rand.Rand satisfies it.
type RNG interface {
	IntN(n int) int
}

// NewRNG returns a seeded generator. Equal seeds give equal allocations.
func NewRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type Options struct {
	// ThemeMatch enables keyword hints from the week's theme and place.
	ThemeMatch bool
}

type Result struct {
	Assignments []models.ContentAssignment
	Exhaustions []models.Exhaustion
}

// Allocator hands out songs, books and recipes for one run, never repeating an
// entry until its pool is exhausted.
type Allocator struct {
	lib  *Library
	rng  RNG
	opts Options

	usedSongs   map[string]bool
	usedBooks   map[string]bool
	usedRecipes map[string]bool
}

func NewAllocator(lib *Library, rng RNG, opts Options) *Allocator {
	return &Allocator{
		lib:         lib,
		rng:         rng,
		opts:        opts,
		usedSongs:   make(map[string]bool),
		usedBooks:   make(map[string]bool),
		usedRecipes: make(map[string]bool),
	}
}

// Assign computes content for every template up front, in week order.
func Assign(lib *Library, templates []models.WeekTemplate, rng RNG, opts Options) Result {
	a := NewAllocator(lib, rng, opts)
	res := Result{Assignments: make([]models.ContentAssignment, 0, len(templates))}
	for _, tmpl := range templates {
		assignment, exhausted := a.AssignWeek(tmpl)
		res.Assignments = append(res.Assignments, assignment)
		res.Exhaustions = append(res.Exhaustions, exhausted...)
	}
	return res
}

// AssignWeek picks the song, book and recipe for one week and marks them used.
func (a *Allocator) AssignWeek(tmpl models.WeekTemplate) (models.ContentAssignment, []models.Exhaustion) {
	var hintText string
	if a.opts.ThemeMatch {
		hintText = themeText(tmpl)
	}

	var exhausted []models.Exhaustion
	note := func(kind string, ok bool) {
		if ok {
			return
		}
		logger.Warn("Content pool exhausted, allowing reuse", "week", tmpl.WeekNumber, "kind", kind)
		exhausted = append(exhausted, models.Exhaustion{WeekNumber: tmpl.WeekNumber, Kind: kind})
	}

	songHints := matchHints(a.lib.Themes.Songs, hintText)
	song, ok := pick(a.rng, a.lib.Songs, a.usedSongs, songFilter(tmpl), songHints)
	note(KindSong, ok)

	bookHints := matchHints(a.lib.Themes.Books, hintText)
	book, ok := pick(a.rng, a.lib.Books, a.usedBooks, seasonFilter[models.Book](tmpl.Season), bookHints)
	note(KindBook, ok)

	recipe, ok := pick(a.rng, a.lib.Recipes, a.usedRecipes, seasonFilter[models.Recipe](tmpl.Season), nil)
	note(KindRecipe, ok)

	return models.ContentAssignment{
		WeekNumber: tmpl.WeekNumber,
		Song:       song,
		Book:       book,
		Recipe:     recipe,
	}, exhausted
}

// songFilter narrows to the week's season and applies the holiday rule: holiday
// songs only in the holiday week, and only holiday songs there when any remain.
func songFilter(tmpl models.WeekTemplate) func([]models.Song) []models.Song {
	return func(available []models.Song) []models.Song {
		var seasonal, holiday []models.Song
		for _, s := range available {
			switch {
			case !s.InSeason(tmpl.Season):
			case s.Holiday:
				holiday = append(holiday, s)
			default:
				seasonal = append(seasonal, s)
			}
		}
		if tmpl.WeekNumber == constants.HolidayWeek && len(holiday) > 0 {
			return holiday
		}
		return seasonal
	}
}

func seasonFilter[T entry](season models.Season) func([]T) []T {
	return func(available []T) []T {
		var out []T
		for _, e := range available {
			if e.InSeason(season) {
				out = append(out, e)
			}
		}
		return out
	}
}

type entry interface {
	Key() string
	Label() string
	InSeason(models.Season) bool
}

// pick runs the relaxation ladder for one content kind: seasonal and unused
// (theme hints first), then any unused, then the whole library. The
// chosen entry is marked used. ok is false when the library was exhausted.
func pick[T entry](rng RNG, library []T, used map[string]bool, narrow func([]T) []T, hints []string) (chosen T, ok bool) {
	available := make([]T, 0, len(library))
	for _, e := range library {
		if !used[e.Key()] {
			available = append(available, e)
		}
	}

	switch seasonal := narrow(available); {
	case len(seasonal) > 0:
		chosen, ok = hinted(seasonal, hints)
		if !ok {
			chosen = seasonal[rng.IntN(len(seasonal))]
		}
		ok = true
	case len(available) > 0:
		chosen = available[rng.IntN(len(available))]
		ok = true
	case len(library) > 0:
		chosen = library[rng.IntN(len(library))]
	default:
		return chosen, false
	}

	used[chosen.Key()] = true
	return chosen, ok
}

// hinted returns the first candidate whose label contains a hint, trying hints in order.
func hinted[T entry](candidates []T, hints []string) (T, bool) {
	for _, hint := range hints {
		for _, e := range candidates {
			if labelMatches(e.Label(), hint) {
				return e, true
			}
		}
	}
	var zero T
	return zero, false
}
