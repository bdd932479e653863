package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/almanac/internal/content"
	"github.com/julianstephens/almanac/internal/models"
)

var seasonWords = map[models.Season][]string{
	models.SeasonWinter: {"Frosty", "Cozy", "Snowy", "Winter", "Mitten"},
	models.SeasonSpring: {"Blooming", "Puddle", "Sprouting", "Spring", "Breezy"},
	models.SeasonSummer: {"Sunny", "Splashy", "Summer", "Firefly", "Golden"},
	models.SeasonFall:   {"Crisp", "Leafy", "Autumn", "Acorn", "Harvest"},
}

var categoryNouns = map[models.Category][]string{
	models.CategoryPark:            {"Park Days", "Open Fields", "Picnic Adventures"},
	models.CategoryPlayground:      {"Playground Play", "Slides & Swings", "Climbing Days"},
	models.CategoryMuseum:          {"Museum Wonders", "Curious Minds", "Exhibit Explorers"},
	models.CategoryLibrary:         {"Story Time", "Book Nooks", "Library Tales"},
	models.CategoryIndoorPlay:      {"Indoor Adventures", "Wiggle Days", "Play Space Fun"},
	models.CategoryFarm:            {"Farm Friends", "Barnyard Days", "Tractor Tales"},
	models.CategoryMarket:          {"Market Mornings", "Fresh Finds", "Market Helpers"},
	models.CategoryNatureCenter:    {"Nature Trails", "Little Naturalists", "Critter Watch"},
	models.CategoryBotanicalGarden: {"Garden Strolls", "Blossom Walks", "Green Wonders"},
	models.CategoryZoo:             {"Animal Friends", "Zoo Days", "Wild Wonders"},
	models.CategoryAquarium:        {"Under the Sea", "Fish Friends", "Ocean Wonders"},
	models.CategorySplashPad:       {"Splash Days", "Water Play", "Sprinkler Fun"},
	models.CategoryPool:            {"Swim Days", "Pool Play", "Water Wiggles"},
	models.CategoryBeach:           {"Sand & Shells", "Shore Days", "Beach Combers"},
	models.CategoryTrail:           {"Trail Walks", "Little Hikers", "Path Finders"},
	models.CategoryForest:          {"Forest Walks", "Tall Trees", "Woodland Wonders"},
	models.CategoryGarden:          {"Garden Helpers", "Dig & Grow", "Flower Friends"},
	models.CategoryArtStudio:       {"Art & Wonder", "Little Artists", "Color Days"},
	models.CategoryBakery:          {"Bakery Treats", "Sweet Smells", "Little Bakers"},
	models.CategoryCafe:            {"Cafe Mornings", "Cocoa Dates", "Snack Stops"},
	models.CategoryCulturalCenter:  {"Culture & Community", "Music & Lights", "Celebration Days"},
	models.CategoryOther:           {"Local Adventures", "Neighborhood Days", "Out & About"},
}

var seasonActivities = map[models.Season][]models.Activity{
	models.SeasonWinter: {
		{Name: "Ice Painting", Description: "Paint ice cubes with watercolors"},
		{Name: "Sock Snowballs", Description: "Toss rolled socks into a basket"},
		{Name: "Window Frost", Description: "Draw shapes on a foggy window"},
	},
	models.SeasonSpring: {
		{Name: "Puddle Jumping", Description: "Put on boots and splash"},
		{Name: "Seed Cups", Description: "Plant beans in paper cups"},
		{Name: "Bug Hunt", Description: "Look under rocks for tiny critters"},
	},
	models.SeasonSummer: {
		{Name: "Chalk Trails", Description: "Draw a chalk path to follow"},
		{Name: "Ice Treasure", Description: "Free toys frozen in ice"},
		{Name: "Shadow Tag", Description: "Chase shadows on a sunny day"},
	},
	models.SeasonFall: {
		{Name: "Leaf Rubbings", Description: "Rub crayons over leaves on paper"},
		{Name: "Acorn Count", Description: "Collect and count acorns together"},
		{Name: "Leaf Pile", Description: "Rake a pile and jump in"},
	},
}

// Offline writes drafts from fixed phrase tables. It needs no network and is
// deterministic for a given request.
type Offline struct{}

func NewOffline() *Offline {
	return &Offline{}
}

func (o *Offline) Name() string { return "offline" }

func (o *Offline) GenerateWeek(ctx context.Context, req WeekRequest) (Draft, error) {
	if err := ctx.Err(); err != nil {
		return Draft{}, err
	}

	tmpl := req.Template
	draft := Draft{Activities: offlineActivities(req)}
	if tmpl.IsConstant {
		draft.Title = tmpl.Title
		return draft, nil
	}
	draft.Title = offlineTitle(req)
	return draft, nil
}

func offlineTitle(req WeekRequest) string {
	tmpl := req.Template
	category := models.CategoryOther
	if tmpl.Place != nil {
		category = tmpl.Place.Category
	}
	words := seasonWords[tmpl.Season]
	nouns, ok := categoryNouns[category]
	if !ok {
		nouns = categoryNouns[models.CategoryOther]
	}
	if len(words) == 0 {
		words = seasonWords[models.SeasonWinter]
	}

	used := content.NewTitleRegistry(req.UsedTitles...)
	total := len(words) * len(nouns)
	start := tmpl.WeekNumber + max(req.Attempt-1, 0)
	for i := 0; i < total; i++ {
		n := start + i
		title := words[n%len(words)] + " " + nouns[(n/len(words))%len(nouns)]
		if !used.Contains(title) {
			return title
		}
	}
	return fmt.Sprintf("%s %s", words[0], nouns[0])
}

func offlineActivities(req WeekRequest) []models.Activity {
	tmpl := req.Template
	placeName := "the neighborhood"
	if tmpl.Place != nil && tmpl.Place.Name != "" {
		placeName = tmpl.Place.Name
	}

	acts := []models.Activity{
		{Name: "Field Trip", Description: "Visit " + placeName + " together"},
	}
	if list := seasonActivities[tmpl.Season]; len(list) > 0 {
		acts = append(acts, list[tmpl.WeekNumber%len(list)])
	}
	acts = append(acts, models.Activity{
		Name:        "Story & Song",
		Description: fmt.Sprintf("Read %s, then sing %s", req.Content.Book.Title, req.Content.Song.Title),
	})
	if tmpl.WeekNumber%2 == 0 && req.Content.Recipe.Name != "" {
		acts = append(acts, models.Activity{
			Name:        "Kitchen Helper",
			Description: "Make " + strings.ToLower(req.Content.Recipe.Name) + " side by side",
		})
	}
	return acts
}
