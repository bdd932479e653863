// Package calendar holds the static week tables every allocation run is built on.
package calendar

import (
	"github.com/julianstephens/almanac/internal/constants"
	"github.com/julianstephens/almanac/internal/models"
)

// ConstantWeek is a week slot whose title, season and theme never change.
type ConstantWeek struct {
	Week   int
	Title  string
	Season models.Season
	Theme  string
}

var constantWeeks = []ConstantWeek{
	{Week: 1, Title: "Cozy Beginnings", Season: models.SeasonWinter, Theme: "Starting the year with comfort and connection"},
	{Week: 7, Title: "Kindness & Hearts", Season: models.SeasonWinter, Theme: "Valentine's celebration and love"},
	{Week: 27, Title: "Patriotic Play", Season: models.SeasonSummer, Theme: "Fourth of July celebration"},
	{Week: 44, Title: "Halloween Fun", Season: models.SeasonFall, Theme: "Costume play and autumn magic"},
	{Week: 47, Title: "Gratitude Week", Season: models.SeasonFall, Theme: "Thanksgiving and thankfulness"},
	{Week: 51, Title: "Christmas Week", Season: models.SeasonWinter, Theme: "Holiday wonder and traditions"},
	{Week: 52, Title: "New Year's Celebrations", Season: models.SeasonWinter, Theme: "Reflection and fresh starts"},
}

// weekSeasons is indexed by week number; index 0 is unused.
var weekSeasons = buildWeekSeasons()

func buildWeekSeasons() [constants.WeeksPerYear + 1]models.Season {
	var table [constants.WeeksPerYear + 1]models.Season
	for w := 1; w <= constants.WeeksPerYear; w++ {
		switch {
		case w <= 13:
			table[w] = models.SeasonWinter
		case w <= 26:
			table[w] = models.SeasonSpring
		case w <= 39:
			table[w] = models.SeasonSummer
		default:
			table[w] = models.SeasonFall
		}
	}
	return table
}

// SeasonForWeek returns the quarter season of a week. Out-of-range weeks map to winter.
func SeasonForWeek(week int) models.Season {
	if week < 1 || week > constants.WeeksPerYear {
		return models.SeasonWinter
	}
	return weekSeasons[week]
}

// Constant looks up the constant-week entry for a week.
func Constant(week int) (ConstantWeek, bool) {
	for _, c := range constantWeeks {
		if c.Week == week {
			return c, true
		}
	}
	return ConstantWeek{}, false
}

// ConstantTitles lists the locked titles, used to seed the generated-title registry.
func ConstantTitles() []string {
	titles := make([]string, 0, len(constantWeeks))
	for _, c := range constantWeeks {
		titles = append(titles, c.Title)
	}
	return titles
}

// InHolidayWindow reports whether a week falls in the late-year holiday bridge.
func InHolidayWindow(week int) bool {
	return week >= constants.HolidayWindowStart && week <= constants.HolidayWindowEnd
}

// Template returns the empty slot for a week with its season and constant-week fields resolved.
// A constant week takes its season from the constant table.
func Template(week int) models.WeekTemplate {
	t := models.WeekTemplate{
		WeekNumber: week,
		Season:     SeasonForWeek(week),
	}
	if c, ok := Constant(week); ok {
		t.Title = c.Title
		t.Season = c.Season
		t.Theme = c.Theme
		t.IsConstant = true
	}
	return t
}
