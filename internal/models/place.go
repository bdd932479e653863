package models

import "slices"

type Season string

const (
	SeasonWinter Season = "winter"
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
)

// Seasons lists the four seasons in calendar order.
var Seasons = []Season{SeasonWinter, SeasonSpring, SeasonSummer, SeasonFall}

type CostTier string

const (
	CostFree       CostTier = "free"
	CostLow        CostTier = "low"
	CostMedium     CostTier = "medium"
	CostHigh       CostTier = "high"
	CostMembership CostTier = "membership"
)

type Category string

const (
	CategoryPark            Category = "park"
	CategoryPlayground      Category = "playground"
	CategoryMuseum          Category = "museum"
	CategoryLibrary         Category = "library"
	CategoryIndoorPlay      Category = "indoor_play"
	CategoryFarm            Category = "farm"
	CategoryMarket          Category = "market"
	CategoryNatureCenter    Category = "nature_center"
	CategoryBotanicalGarden Category = "botanical_garden"
	CategoryZoo             Category = "zoo"
	CategoryAquarium        Category = "aquarium"
	CategorySplashPad       Category = "splash_pad"
	CategoryPool            Category = "pool"
	CategoryBeach           Category = "beach"
	CategoryTrail           Category = "trail"
	CategoryForest          Category = "forest"
	CategoryGarden          Category = "garden"
	CategoryArtStudio       Category = "art_studio"
	CategoryBakery          Category = "bakery"
	CategoryCafe            Category = "cafe"
	CategoryCulturalCenter  Category = "cultural_center"
	CategoryOther           Category = "other"
)

// Place is a candidate venue. Name is the uniqueness key during allocation.
type Place struct {
	Name               string   `json:"name"`
	Category           Category `json:"category"`
	Description        string   `json:"description,omitempty"`
	Address            string   `json:"address,omitempty"`
	URL                string   `json:"url,omitempty"`
	Cost               CostTier `json:"cost"`
	Indoor             bool     `json:"indoor"`
	Outdoor            bool     `json:"outdoor"`
	ToddlerFriendly    bool     `json:"toddler_friendly"`
	StrollerAccessible bool     `json:"stroller_accessible"`
	Parking            bool     `json:"parking"`
	SnackFriendly      bool     `json:"snack_friendly"`
	BestSeasons        []Season `json:"best_seasons"`
	Tags               []string `json:"tags"`
	Score              int      `json:"score"`
	// Generic marks a synthesized fallback place that was not researched.
	Generic bool `json:"generic,omitempty"`
}

// HasTag reports whether the place carries the given tag.
func (p Place) HasTag(tag string) bool {
	return slices.Contains(p.Tags, tag)
}

// CuratedPlacesBank holds scored places bucketed by season, each sorted by score descending.
type CuratedPlacesBank struct {
	Winter    []Place `json:"winter"`
	Spring    []Place `json:"spring"`
	Summer    []Place `json:"summer"`
	Fall      []Place `json:"fall"`
	YearRound []Place `json:"year_round"`
}

// Season returns the bucket for a single season.
func (b CuratedPlacesBank) Season(s Season) []Place {
	switch s {
	case SeasonWinter:
		return b.Winter
	case SeasonSpring:
		return b.Spring
	case SeasonSummer:
		return b.Summer
	case SeasonFall:
		return b.Fall
	default:
		return nil
	}
}

// Total returns the number of bucket entries. A place in two seasons counts twice.
func (b CuratedPlacesBank) Total() int {
	return len(b.Winter) + len(b.Spring) + len(b.Summer) + len(b.Fall) + len(b.YearRound)
}
