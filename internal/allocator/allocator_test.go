package allocator

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/julianstephens/almanac/internal/calendar"
	"github.com/julianstephens/almanac/internal/models"
)

func place(name string, cat models.Category, score int, seasons ...models.Season) models.Place {
	return models.Place{Name: name, Category: cat, Score: score, BestSeasons: seasons}
}

func sampleBank() models.CuratedPlacesBank {
	var bank models.CuratedPlacesBank
	cats := []models.Category{models.CategoryPark, models.CategoryMuseum, models.CategoryLibrary, models.CategoryZoo}
	for i := 0; i < 8; i++ {
		cat := cats[i%len(cats)]
		bank.Winter = append(bank.Winter, place(fmt.Sprintf("Winter Spot %d", i), cat, 90-i, models.SeasonWinter))
		bank.Spring = append(bank.Spring, place(fmt.Sprintf("Spring Spot %d", i), cat, 90-i, models.SeasonSpring))
		bank.Summer = append(bank.Summer, place(fmt.Sprintf("Summer Spot %d", i), cat, 90-i, models.SeasonSummer))
		bank.Fall = append(bank.Fall, place(fmt.Sprintf("Fall Spot %d", i), cat, 90-i, models.SeasonFall))
	}
	bank.YearRound = []models.Place{
		place("Everyday Museum", models.CategoryMuseum, 95, models.Seasons...),
	}
	return bank
}

func TestAllocate_TotalCoverage(t *testing.T) {
	banks := map[string]models.CuratedPlacesBank{
		"sample": sampleBank(),
		"single": {YearRound: []models.Place{place("Only Park", models.CategoryPark, 70, models.Seasons...)}},
		"empty":  {},
	}

	for name, bank := range banks {
		t.Run(name, func(t *testing.T) {
			res := New().Allocate(bank)
			if len(res.Templates) != 52 {
				t.Fatalf("Expected 52 templates, got %d", len(res.Templates))
			}
			for i, tmpl := range res.Templates {
				if tmpl.WeekNumber != i+1 {
					t.Errorf("Template %d has week number %d", i, tmpl.WeekNumber)
				}
				if tmpl.Place == nil || tmpl.Place.Name == "" {
					t.Errorf("Week %d has no place", tmpl.WeekNumber)
				}
			}
		})
	}
}

func TestAllocate_NoSpecificPlaceRepeats(t *testing.T) {
	res := New().Allocate(sampleBank())
	seen := make(map[string]int)
	for _, tmpl := range res.Templates {
		if tmpl.Place.Generic {
			continue
		}
		if prev, ok := seen[tmpl.Place.Name]; ok {
			t.Errorf("Place %q used in weeks %d and %d", tmpl.Place.Name, prev, tmpl.WeekNumber)
		}
		seen[tmpl.Place.Name] = tmpl.WeekNumber
	}
}

func TestAllocate_Deterministic(t *testing.T) {
	first := New().Allocate(sampleBank())
	second := New().Allocate(sampleBank())
	if !reflect.DeepEqual(first.Templates, second.Templates) {
		t.Error("Expected identical templates for identical input")
	}
	if !reflect.DeepEqual(first.Fallbacks, second.Fallbacks) {
		t.Error("Expected identical fallback weeks for identical input")
	}
}

func TestAllocate_ConstantWeekIntegrity(t *testing.T) {
	for name, bank := range map[string]models.CuratedPlacesBank{"sample": sampleBank(), "empty": {}} {
		res := New().Allocate(bank)
		for _, week := range []int{1, 7, 27, 44, 47, 51, 52} {
			c, ok := calendar.Constant(week)
			if !ok {
				t.Fatalf("week %d missing from constant table", week)
			}
			tmpl := res.Templates[c.Week-1]
			if !tmpl.IsConstant {
				t.Errorf("%s: week %d not marked constant", name, c.Week)
			}
			if tmpl.Title != c.Title || tmpl.Season != c.Season || tmpl.Theme != c.Theme {
				t.Errorf("%s: week %d = (%q, %s, %q), want (%q, %s, %q)",
					name, c.Week, tmpl.Title, tmpl.Season, tmpl.Theme, c.Title, c.Season, c.Theme)
			}
		}
	}
}

func TestAllocate_EmptySpringUsesGeneric(t *testing.T) {
	bank := sampleBank()
	bank.Spring = nil
	bank.YearRound = nil

	res := New().Allocate(bank)
	for week := 14; week <= 26; week++ {
		p := res.Templates[week-1].Place
		if p.Name != "Neighborhood parks and gardens" {
			t.Errorf("Week %d: expected spring generic, got %q", week, p.Name)
		}
		if !p.Generic {
			t.Errorf("Week %d: expected place marked generic", week)
		}
	}
	if len(res.Fallbacks) < 13 {
		t.Errorf("Expected at least 13 fallback weeks, got %v", res.Fallbacks)
	}
}

func TestPool_HolidayWindowExcludesHarvest(t *testing.T) {
	bank := models.CuratedPlacesBank{
		Fall: []models.Place{
			place("Sunnybrook Pumpkin Farm", models.CategoryFarm, 98, models.SeasonFall),
			place("Harvest Moon Hayride", models.CategoryOther, 92, models.SeasonFall),
			place("Green Acres", models.CategoryFarm, 91, models.SeasonFall),
			place("Farm Museum of History", models.CategoryFarm, 60, models.SeasonFall),
		},
		Winter: []models.Place{
			place("City Botanical Garden Holiday Lights", models.CategoryBotanicalGarden, 70, models.SeasonWinter),
			place("Ice Rink", models.CategoryOther, 85, models.SeasonWinter),
		},
	}

	for week := 48; week <= 52; week++ {
		pool := Pool(bank, week, NewState())
		for _, p := range pool {
			if p.Name == "Sunnybrook Pumpkin Farm" || p.Name == "Harvest Moon Hayride" || p.Name == "Green Acres" {
				t.Errorf("Week %d: harvest-themed %q in pool", week, p.Name)
			}
		}
		if len(pool) != 1 || pool[0].Name != "City Botanical Garden Holiday Lights" {
			t.Errorf("Week %d: expected holiday sub-pool with only the lit garden, got %v", week, pool)
		}
	}

	tmpl, generic := New().AllocateWeek(NewState(), bank, 48)
	if generic || tmpl.Place.Name != "City Botanical Garden Holiday Lights" {
		t.Errorf("Expected week 48 to pick the holiday garden, got %q (generic=%v)", tmpl.Place.Name, generic)
	}
}

func TestPool_HolidayWindowWithoutHolidayPlaces(t *testing.T) {
	bank := models.CuratedPlacesBank{
		Fall:      []models.Place{place("Farm Museum of History", models.CategoryFarm, 60, models.SeasonFall)},
		YearRound: []models.Place{place("Library", models.CategoryLibrary, 80, models.Seasons...)},
	}
	pool := Pool(bank, 50, NewState())
	if len(pool) != 2 {
		t.Errorf("Expected farm museum and year-round library in pool, got %v", pool)
	}
}

func TestPool_ExcludesUsed(t *testing.T) {
	bank := sampleBank()
	state := NewState()
	state.MarkUsed("Spring Spot 0")
	for _, p := range Pool(bank, 14, state) {
		if p.Name == "Spring Spot 0" {
			t.Error("Expected used place to be excluded from the pool")
		}
	}
}

func TestSelectBest_DiversityWindow(t *testing.T) {
	pool := []models.Place{
		place("Big Park", models.CategoryPark, 90),
		place("Small Park", models.CategoryPark, 85),
		place("Museum", models.CategoryMuseum, 60),
	}

	if got := SelectBest(pool, nil); got.Name != "Big Park" {
		t.Errorf("Expected highest scorer, got %q", got.Name)
	}
	if got := SelectBest(pool, []models.Category{models.CategoryPark}); got.Name != "Museum" {
		t.Errorf("Expected recent category skipped, got %q", got.Name)
	}
	all := []models.Category{models.CategoryPark, models.CategoryMuseum}
	if got := SelectBest(pool, all); got.Name != "Big Park" {
		t.Errorf("Expected fallback to full pool, got %q", got.Name)
	}

	tied := []models.Place{place("First", models.CategoryZoo, 70), place("Second", models.CategoryZoo, 70)}
	if got := SelectBest(tied, nil); got.Name != "First" {
		t.Errorf("Expected tie to keep pool order, got %q", got.Name)
	}
}

func TestState_RecentCategories(t *testing.T) {
	s := NewState()
	s.Record(1, models.CategoryPark)
	s.Record(2, models.CategoryZoo)
	s.Record(3, models.CategoryMuseum)
	s.Record(4, models.CategoryLibrary)

	got := s.RecentCategories(5)
	want := []models.Category{models.CategoryZoo, models.CategoryMuseum, models.CategoryLibrary}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RecentCategories(5) = %v, want %v", got, want)
	}
	if got := s.RecentCategories(1); len(got) != 0 {
		t.Errorf("RecentCategories(1) = %v, want empty", got)
	}
}

func TestGenericPlace_Catalogs(t *testing.T) {
	tests := []struct {
		season models.Season
		week   int
		want   string
	}{
		{models.SeasonFall, 48, "Local toy store or children's shop"},
		{models.SeasonFall, 49, "Neighborhood holiday light displays"},
		{models.SeasonWinter, 51, "Community Christmas lights display"},
		{models.SeasonWinter, 52, "Local children's museum"},
		{models.SeasonSummer, 36, "Local splash pad or pool"},
		{models.SeasonSummer, 39, "Community pool or recreation center"},
		{models.SeasonSummer, 30, "Local park with playground"},
		{models.SeasonWinter, 5, "Local library children's section"},
		{models.SeasonSpring, 20, "Neighborhood parks and gardens"},
		{models.SeasonFall, 41, "Local farmers market"},
	}

	for _, tt := range tests {
		p := GenericPlace(tt.season, tt.week)
		if p.Name != tt.want {
			t.Errorf("GenericPlace(%s, %d) = %q, want %q", tt.season, tt.week, p.Name, tt.want)
		}
		if !p.Generic || p.Score != 50 {
			t.Errorf("GenericPlace(%s, %d) should be generic with score 50", tt.season, tt.week)
		}
	}
}

func TestAllocate_GenericNotMarkedUsed(t *testing.T) {
	res := New().Allocate(models.CuratedPlacesBank{})
	if res.State.UsedCount() != 0 {
		t.Errorf("Expected generic places never marked used, got %d", res.State.UsedCount())
	}
	if len(res.Fallbacks) != 52 {
		t.Errorf("Expected 52 fallback weeks for an empty bank, got %d", len(res.Fallbacks))
	}
}
