package allocator

import (
	"github.com/julianstephens/almanac/internal/constants"
	"github.com/julianstephens/almanac/internal/models"
)

// State is the bookkeeping carried across the 52 sequential week decisions of one run.
// It is never shared between runs.
type State struct {
	used   map[string]bool
	recent map[int]models.Category
}

func NewState() *State {
	return &State{
		used:   make(map[string]bool),
		recent: make(map[int]models.Category),
	}
}

// IsUsed reports whether a place name has already been assigned.
func (s *State) IsUsed(name string) bool {
	return s.used[name]
}

// MarkUsed records a specific place as assigned.
func (s *State) MarkUsed(name string) {
	s.used[name] = true
}

// UsedCount is the number of distinct specific places assigned so far.
func (s *State) UsedCount() int {
	return len(s.used)
}

// Record stores the category chosen for a week.
func (s *State) Record(week int, category models.Category) {
	s.recent[week] = category
}

// RecentCategories returns the categories chosen in the diversity window before week.
func (s *State) RecentCategories(week int) []models.Category {
	var cats []models.Category
	for w := max(1, week-constants.DiversityWindowWeeks); w < week; w++ {
		if c, ok := s.recent[w]; ok {
			cats = append(cats, c)
		}
	}
	return cats
}
