package curator

import (
	"testing"

	"github.com/julianstephens/almanac/internal/models"
)

func TestOrganize_Buckets(t *testing.T) {
	places := []models.Place{
		{Name: "All Seasons Museum", Score: 80, BestSeasons: []models.Season{models.SeasonWinter, models.SeasonSpring, models.SeasonFall}},
		{Name: "Splash Pad", Score: 70, BestSeasons: []models.Season{models.SeasonSummer}},
		{Name: "Orchard", Score: 60, BestSeasons: []models.Season{models.SeasonSummer, models.SeasonFall}},
		{Name: "Tide Pools", Score: 90, BestSeasons: []models.Season{models.SeasonSummer}},
	}

	bank := Organize(places)

	if len(bank.YearRound) != 1 || bank.YearRound[0].Name != "All Seasons Museum" {
		t.Errorf("Expected only the three-season museum in year-round, got %v", names(bank.YearRound))
	}
	if len(bank.Winter) != 0 || len(bank.Spring) != 0 {
		t.Errorf("Expected year-round place not replicated into seasons, got winter=%v spring=%v",
			names(bank.Winter), names(bank.Spring))
	}

	want := []string{"Tide Pools", "Splash Pad", "Orchard"}
	got := names(bank.Summer)
	if len(got) != len(want) {
		t.Fatalf("Expected summer %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Summer[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if len(bank.Fall) != 1 || bank.Fall[0].Name != "Orchard" {
		t.Errorf("Expected orchard in fall as well, got %v", names(bank.Fall))
	}
	if bank.Total() != 5 {
		t.Errorf("Expected 5 bucket entries, got %d", bank.Total())
	}
}

func TestOrganize_StableTies(t *testing.T) {
	places := []models.Place{
		{Name: "First", Score: 70, BestSeasons: []models.Season{models.SeasonSpring}},
		{Name: "Second", Score: 70, BestSeasons: []models.Season{models.SeasonSpring}},
		{Name: "Third", Score: 70, BestSeasons: []models.Season{models.SeasonSpring}},
	}
	got := names(Organize(places).Spring)
	want := []string{"First", "Second", "Third"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected stable order %v, got %v", want, got)
			break
		}
	}
}

func TestCurate_Counts(t *testing.T) {
	places := []models.Place{
		{Name: "Good Park", Cost: models.CostFree, BestSeasons: []models.Season{models.SeasonSpring}},
		{Name: "good park", Cost: models.CostFree},
		{Name: "Walmart", BestSeasons: nil},
	}

	opts := DefaultOptions()
	opts.MinScore = 55

	res := Curate(places, opts)
	if res.Raw != 3 || res.Deduplicated != 2 {
		t.Errorf("Expected raw=3 deduplicated=2, got raw=%d deduplicated=%d", res.Raw, res.Deduplicated)
	}
	if res.Kept != 1 || res.Dropped != 1 {
		t.Errorf("Expected kept=1 dropped=1, got kept=%d dropped=%d", res.Kept, res.Dropped)
	}
	if !res.BelowViableThreshold {
		t.Error("Expected viable-run advisory for a tiny pool")
	}
	if len(res.Bank.Spring) != 1 {
		t.Errorf("Expected the park in spring, got %v", names(res.Bank.Spring))
	}
}

func names(places []models.Place) []string {
	out := make([]string, len(places))
	for i, p := range places {
		out[i] = p.Name
	}
	return out
}
