package content

import (
	"strings"

	"github.com/julianstephens/almanac/internal/calendar"
)

// TitleRegistry tracks week titles already claimed in one run. Matching is case-insensitive.
type TitleRegistry struct {
	seen  map[string]bool
	order []string
}

// NewTitleRegistry returns a registry pre-seeded with titles.
func NewTitleRegistry(titles ...string) *TitleRegistry {
	r := &TitleRegistry{seen: make(map[string]bool)}
	for _, t := range titles {
		r.Reserve(t)
	}
	return r
}

// NewWeekTitleRegistry seeds a registry with every constant-week title so a
// generated title can never collide with a fixed one.
func NewWeekTitleRegistry() *TitleRegistry {
	return NewTitleRegistry(calendar.ConstantTitles()...)
}

func normalizeTitle(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), " "))
}

// Contains reports whether the title is already claimed.
func (r *TitleRegistry) Contains(title string) bool {
	return r.seen[normalizeTitle(title)]
}

// Reserve claims a title. It returns false for an empty or already-claimed title.
func (r *TitleRegistry) Reserve(title string) bool {
	key := normalizeTitle(title)
	if key == "" || r.seen[key] {
		return false
	}
	r.seen[key] = true
	r.order = append(r.order, strings.TrimSpace(title))
	return true
}

// Used lists claimed titles in the order they were reserved.
func (r *TitleRegistry) Used() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
