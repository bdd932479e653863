package models

import (
	"slices"
	"strings"
)

// WeekTemplate is one of the 52 allocation slots.
type WeekTemplate struct {
	WeekNumber int    `json:"week_number"`
	Title      string `json:"title,omitempty"` // set only for constant weeks
	Season     Season `json:"season"`
	IsConstant bool   `json:"is_constant"`
	Place      *Place `json:"place_to_visit"`
	Theme      string `json:"theme,omitempty"` // set only for constant weeks
}

type Activity struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Song struct {
	Title   string   `json:"title" yaml:"title"`
	Artist  string   `json:"artist" yaml:"artist"`
	Holiday bool     `json:"holiday,omitempty" yaml:"holiday"`
	Seasons []Season `json:"-" yaml:"seasons"`
}

// Key identifies a song by its title and artist pair.
func (s Song) Key() string {
	return strings.ToLower(s.Title) + "|" + strings.ToLower(s.Artist)
}

func (s Song) Label() string { return s.Title }

func (s Song) InSeason(season Season) bool { return slices.Contains(s.Seasons, season) }

type Book struct {
	Title   string   `json:"title" yaml:"title"`
	Author  string   `json:"author" yaml:"author"`
	Seasons []Season `json:"-" yaml:"seasons"`
}

// Key identifies a book by its title and author pair.
func (b Book) Key() string {
	return strings.ToLower(b.Title) + "|" + strings.ToLower(b.Author)
}

func (b Book) Label() string { return b.Title }

func (b Book) InSeason(season Season) bool { return slices.Contains(b.Seasons, season) }

type Recipe struct {
	Name         string   `json:"name" yaml:"name"`
	Ingredients  []string `json:"ingredients" yaml:"ingredients"`
	Instructions string   `json:"instructions" yaml:"instructions"`
	ToddlerTask  string   `json:"toddler_task" yaml:"toddler_task"`
	Seasons      []Season `json:"-" yaml:"seasons"`
}

// Key identifies a recipe by its name.
func (r Recipe) Key() string {
	return strings.ToLower(r.Name)
}

func (r Recipe) Label() string { return r.Name }

func (r Recipe) InSeason(season Season) bool { return slices.Contains(r.Seasons, season) }

// ContentAssignment is the song, book and recipe fixed for one week before prose generation.
type ContentAssignment struct {
	WeekNumber int    `json:"week_number"`
	Song       Song   `json:"song"`
	Book       Book   `json:"book"`
	Recipe     Recipe `json:"recipe"`
}

// Week is a finished calendar entry.
type Week struct {
	Week         int        `json:"week"`
	Title        string     `json:"title"`
	Season       Season     `json:"season"`
	PlaceToVisit string     `json:"place_to_visit"`
	Activities   []Activity `json:"activities"`
	Song         Song       `json:"song"`
	Book         Book       `json:"book"`
	Recipe       Recipe     `json:"recipe"`
}
