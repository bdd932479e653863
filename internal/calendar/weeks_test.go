package calendar

import (
	"slices"
	"testing"

	"github.com/julianstephens/almanac/internal/models"
)

func TestSeasonForWeek_Quarters(t *testing.T) {
	tests := []struct {
		week int
		want models.Season
	}{
		{1, models.SeasonWinter},
		{13, models.SeasonWinter},
		{14, models.SeasonSpring},
		{26, models.SeasonSpring},
		{27, models.SeasonSummer},
		{39, models.SeasonSummer},
		{40, models.SeasonFall},
		{52, models.SeasonFall},
		{0, models.SeasonWinter},
		{53, models.SeasonWinter},
	}

	for _, tt := range tests {
		if got := SeasonForWeek(tt.week); got != tt.want {
			t.Errorf("SeasonForWeek(%d) = %s, want %s", tt.week, got, tt.want)
		}
	}
}

func TestConstant_Table(t *testing.T) {
	want := []int{1, 7, 27, 44, 47, 51, 52}
	var got []int
	for w := 1; w <= 52; w++ {
		c, ok := Constant(w)
		if !ok {
			continue
		}
		got = append(got, c.Week)
		if c.Title == "" || c.Theme == "" {
			t.Errorf("Constant week %d missing title or theme", c.Week)
		}
	}
	if !slices.Equal(got, want) {
		t.Errorf("Expected constant weeks %v, got %v", want, got)
	}
	if titles := ConstantTitles(); len(titles) != len(want) || titles[0] != "Cozy Beginnings" {
		t.Errorf("Unexpected constant titles %v", titles)
	}
}

func TestTemplate_ConstantWeekTakesTableSeason(t *testing.T) {
	tmpl := Template(51)
	if !tmpl.IsConstant {
		t.Fatal("Expected week 51 to be constant")
	}
	if tmpl.Season != models.SeasonWinter {
		t.Errorf("Expected week 51 season winter from constant table, got %s", tmpl.Season)
	}
	if tmpl.Title != "Christmas Week" {
		t.Errorf("Expected title %q, got %q", "Christmas Week", tmpl.Title)
	}

	plain := Template(50)
	if plain.IsConstant || plain.Title != "" || plain.Theme != "" {
		t.Errorf("Expected week 50 to be a plain slot, got %+v", plain)
	}
	if plain.Season != models.SeasonFall {
		t.Errorf("Expected week 50 season fall, got %s", plain.Season)
	}
}

func TestInHolidayWindow(t *testing.T) {
	for w := 1; w <= 52; w++ {
		want := w >= 48
		if got := InHolidayWindow(w); got != want {
			t.Errorf("InHolidayWindow(%d) = %v, want %v", w, got, want)
		}
	}
}
