package curator

import (
	"strings"

	"github.com/julianstephens/almanac/internal/constants"
	"github.com/julianstephens/almanac/internal/models"
)

// Weights is the additive scoring table applied to every deduplicated place.
type Weights struct {
	Baseline int `koanf:"baseline" yaml:"baseline"`

	CostFree       int `koanf:"cost_free" yaml:"cost_free"`
	CostLow        int `koanf:"cost_low" yaml:"cost_low"`
	CostMembership int `koanf:"cost_membership" yaml:"cost_membership"`
	CostMedium     int `koanf:"cost_medium" yaml:"cost_medium"`
	CostHigh       int `koanf:"cost_high" yaml:"cost_high"`

	ToddlerFriendly    int `koanf:"toddler_friendly" yaml:"toddler_friendly"`
	MentionsToddler    int `koanf:"mentions_toddler" yaml:"mentions_toddler"`
	MentionsAges0To5   int `koanf:"mentions_ages_0_5" yaml:"mentions_ages_0_5"`
	MentionsInfant     int `koanf:"mentions_infant" yaml:"mentions_infant"`
	StrollerAccessible int `koanf:"stroller_accessible" yaml:"stroller_accessible"`
	Parking            int `koanf:"parking" yaml:"parking"`
	IndoorAndOutdoor   int `koanf:"indoor_and_outdoor" yaml:"indoor_and_outdoor"`

	ThreeOrMoreSeasons int `koanf:"three_or_more_seasons" yaml:"three_or_more_seasons"`
	TwoSeasons         int `koanf:"two_seasons" yaml:"two_seasons"`
	OneSeason          int `koanf:"one_season" yaml:"one_season"`

	SnackFriendly int            `koanf:"snack_friendly" yaml:"snack_friendly"`
	TagBonuses    map[string]int `koanf:"tag_bonuses" yaml:"tag_bonuses"`

	NotChain      int      `koanf:"not_chain" yaml:"not_chain"`
	ChainDenylist []string `koanf:"chain_denylist" yaml:"chain_denylist"`

	LongDescription      int `koanf:"long_description" yaml:"long_description"`
	LongDescriptionChars int `koanf:"long_description_chars" yaml:"long_description_chars"`
	HasURL               int `koanf:"has_url" yaml:"has_url"`
}

// DefaultWeights returns the stock scoring table.
func DefaultWeights() Weights {
	return Weights{
		Baseline: 50,

		CostFree:       20,
		CostLow:        15,
		CostMembership: 12,
		CostMedium:     10,
		CostHigh:       5,

		ToddlerFriendly:    15,
		MentionsToddler:    5,
		MentionsAges0To5:   5,
		MentionsInfant:     3,
		StrollerAccessible: 10,
		Parking:            5,
		IndoorAndOutdoor:   5,

		ThreeOrMoreSeasons: 15,
		TwoSeasons:         10,
		OneSeason:          5,

		SnackFriendly: 3,
		TagBonuses: map[string]int{
			"restrooms":        3,
			"nursing-friendly": 2,
			"shaded":           2,
		},

		NotChain: 10,
		ChainDenylist: []string{
			"mcdonalds", "burger king", "walmart", "target", "costco",
			"chuck e cheese", "dave and busters", "urban air", "sky zone",
		},

		LongDescription:      3,
		LongDescriptionChars: 100,
		HasURL:               2,
	}
}

func (w Weights) costBonus(c models.CostTier) int {
	switch c {
	case models.CostFree:
		return w.CostFree
	case models.CostLow:
		return w.CostLow
	case models.CostMembership:
		return w.CostMembership
	case models.CostMedium:
		return w.CostMedium
	case models.CostHigh:
		return w.CostHigh
	default:
		return 0
	}
}

// IsChain reports whether the place name matches the chain denylist.
func (w Weights) IsChain(name string) bool {
	lower := strings.ToLower(name)
	for _, chain := range w.ChainDenylist {
		if chain != "" && strings.Contains(lower, strings.ToLower(chain)) {
			return true
		}
	}
	return false
}

// Score computes a place's suitability score, clamped to [0, 100].
// Any score already on the place is ignored.
func (w Weights) Score(p models.Place) int {
	score := w.Baseline
	score += w.costBonus(p.Cost)

	desc := strings.ToLower(p.Description)
	if p.ToddlerFriendly {
		score += w.ToddlerFriendly
	}
	if strings.Contains(desc, "toddler") {
		score += w.MentionsToddler
	}
	if strings.Contains(desc, "ages 0-5") {
		score += w.MentionsAges0To5
	}
	if strings.Contains(desc, "infant") {
		score += w.MentionsInfant
	}

	if p.StrollerAccessible {
		score += w.StrollerAccessible
	}
	if p.Parking {
		score += w.Parking
	}
	if p.Indoor && p.Outdoor {
		score += w.IndoorAndOutdoor
	}

	switch n := len(p.BestSeasons); {
	case n >= 3:
		score += w.ThreeOrMoreSeasons
	case n == 2:
		score += w.TwoSeasons
	case n == 1:
		score += w.OneSeason
	}

	if p.SnackFriendly {
		score += w.SnackFriendly
	}
	for tag, bonus := range w.TagBonuses {
		if p.HasTag(tag) {
			score += bonus
		}
	}

	if !w.IsChain(p.Name) {
		score += w.NotChain
	}
	if len(p.Description) > w.LongDescriptionChars {
		score += w.LongDescription
	}
	if p.URL != "" {
		score += w.HasURL
	}

	return clamp(score)
}

func clamp(score int) int {
	if score < constants.MinScore {
		return constants.MinScore
	}
	if score > constants.MaxScore {
		return constants.MaxScore
	}
	return score
}

// ScoreAll returns a copy of places with Score set on each.
func ScoreAll(places []models.Place, w Weights) []models.Place {
	out := make([]models.Place, len(places))
	for i, p := range places {
		p.Score = w.Score(p)
		out[i] = p
	}
	return out
}

// FilterByScore keeps places scoring at least minScore, preserving order.
// It returns the kept places and the number dropped.
func FilterByScore(places []models.Place, minScore int) ([]models.Place, int) {
	kept := make([]models.Place, 0, len(places))
	for _, p := range places {
		if p.Score >= minScore {
			kept = append(kept, p)
		}
	}
	return kept, len(places) - len(kept)
}
