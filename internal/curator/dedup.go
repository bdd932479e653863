package curator

import (
	"regexp"
	"slices"
	"strings"

	"github.com/julianstephens/almanac/internal/models"
)

var punctuation = regexp.MustCompile(`[^\w\s]`)

// Key returns the merge key for a place: its normalized name joined with the
// first comma-separated segment of its address.
func Key(p models.Place) string {
	name := strings.TrimSpace(punctuation.ReplaceAllString(strings.ToLower(p.Name), ""))
	street, _, _ := strings.Cut(p.Address, ",")
	return name + "|" + strings.ToLower(strings.TrimSpace(street))
}

// Deduplicate merges places that share a Key. The first occurrence fixes the
// output position.
func Deduplicate(places []models.Place) []models.Place {
	index := make(map[string]int, len(places))
	out := make([]models.Place, 0, len(places))

	for _, p := range places {
		key := Key(p)
		if i, ok := index[key]; ok {
			out[i] = merge(out[i], p)
			continue
		}
		index[key] = len(out)
		p.Tags = union[string](nil, p.Tags)
		p.BestSeasons = union[models.Season](nil, p.BestSeasons)
		out = append(out, p)
	}
	return out
}

func merge(existing, incoming models.Place) models.Place {
	if len(incoming.Description) > len(existing.Description) {
		existing.Description = incoming.Description
	}
	if existing.Address == "" {
		existing.Address = incoming.Address
	}
	if existing.URL == "" {
		existing.URL = incoming.URL
	}
	existing.Tags = union(existing.Tags, incoming.Tags)
	existing.BestSeasons = union(existing.BestSeasons, incoming.BestSeasons)
	return existing
}

func union[T comparable](a, b []T) []T {
	for _, v := range b {
		if !slices.Contains(a, v) {
			a = append(a, v)
		}
	}
	return a
}
