package curator

import (
	"sort"

	"github.com/julianstephens/almanac/internal/models"
)

// yearRoundSeasons is the best-season count at which a place moves to the year-round bucket.
const yearRoundSeasons = 3

// Organize buckets scored places by season. Places suited to three or more seasons
// go only to YearRound; the rest are copied into each season they name. Every bucket
// is sorted by score descending, stable on input order.
func Organize(places []models.Place) models.CuratedPlacesBank {
	var bank models.CuratedPlacesBank

	for _, p := range places {
		if len(p.BestSeasons) >= yearRoundSeasons {
			bank.YearRound = append(bank.YearRound, p)
			continue
		}
		seen := make(map[models.Season]bool, len(p.BestSeasons))
		for _, s := range p.BestSeasons {
			if seen[s] {
				continue
			}
			seen[s] = true
			switch s {
			case models.SeasonWinter:
				bank.Winter = append(bank.Winter, p)
			case models.SeasonSpring:
				bank.Spring = append(bank.Spring, p)
			case models.SeasonSummer:
				bank.Summer = append(bank.Summer, p)
			case models.SeasonFall:
				bank.Fall = append(bank.Fall, p)
			}
		}
	}

	for _, bucket := range []*[]models.Place{&bank.Winter, &bank.Spring, &bank.Summer, &bank.Fall, &bank.YearRound} {
		sortByScore(*bucket)
	}
	return bank
}

func sortByScore(places []models.Place) {
	sort.SliceStable(places, func(i, j int) bool {
		return places[i].Score > places[j].Score
	})
}
