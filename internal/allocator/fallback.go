package allocator

import (
	"github.com/julianstephens/almanac/internal/calendar"
	"github.com/julianstephens/almanac/internal/constants"
	"github.com/julianstephens/almanac/internal/models"
)

type genericVenue struct {
	name     string
	category models.Category
}

// holidayGenerics is indexed by week-48.
var holidayGenerics = []genericVenue{
	{"Local toy store or children's shop", models.CategoryOther},
	{"Neighborhood holiday light displays", models.CategoryCulturalCenter},
	{"Local botanical garden holiday show", models.CategoryBotanicalGarden},
	{"Community Christmas lights display", models.CategoryCulturalCenter},
	{"Local children's museum", models.CategoryMuseum},
}

// lateSummerGenerics rotate so consecutive late-summer fallbacks differ.
var lateSummerGenerics = []genericVenue{
	{"Local splash pad or pool", models.CategorySplashPad},
	{"Neighborhood park with playground", models.CategoryPark},
	{"Local farmers market", models.CategoryMarket},
	{"Community pool or recreation center", models.CategoryPool},
}

var seasonGenerics = map[models.Season]genericVenue{
	models.SeasonWinter: {"Local library children's section", models.CategoryLibrary},
	models.SeasonSpring: {"Neighborhood parks and gardens", models.CategoryPark},
	models.SeasonSummer: {"Local park with playground", models.CategoryPark},
	models.SeasonFall:   {"Local farmers market", models.CategoryMarket},
}

const genericScore = 50

// GenericPlace synthesizes the fallback venue for a week whose pool is empty.
func GenericPlace(season models.Season, week int) models.Place {
	p := models.Place{
		Cost:               models.CostLow,
		ToddlerFriendly:    true,
		StrollerAccessible: true,
		Parking:            true,
		SnackFriendly:      true,
		Score:              genericScore,
		Generic:            true,
	}

	switch {
	case calendar.InHolidayWindow(week):
		venue := holidayGenerics[week-constants.HolidayWindowStart]
		p.Name, p.Category = venue.name, venue.category
		p.Description = "A local family-friendly winter venue"
		p.Indoor = true
		p.BestSeasons = []models.Season{models.SeasonWinter}
		p.Tags = []string{"winter", "holiday"}
	case season == models.SeasonSummer && week >= constants.LateSummerStart:
		venue := lateSummerGenerics[(week-constants.LateSummerStart)%len(lateSummerGenerics)]
		p.Name, p.Category = venue.name, venue.category
		p.Description = "A local family-friendly summer venue"
		p.Outdoor = true
		p.BestSeasons = []models.Season{models.SeasonSummer}
	default:
		venue, ok := seasonGenerics[season]
		if !ok {
			venue = seasonGenerics[models.SeasonWinter]
			season = models.SeasonWinter
		}
		p.Name, p.Category = venue.name, venue.category
		p.Description = "A local family-friendly venue"
		p.Indoor = season == models.SeasonWinter
		p.Outdoor = season != models.SeasonWinter
		p.BestSeasons = []models.Season{season}
	}
	return p
}
