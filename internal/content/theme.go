package content

import (
	"strings"

	"github.com/julianstephens/almanac/internal/models"
)

// themeText is the text theme hints are matched against: the fixed title and
// theme of a constant week plus the assigned place name.
func themeText(tmpl models.WeekTemplate) string {
	parts := []string{tmpl.Title, tmpl.Theme}
	if tmpl.Place != nil {
		parts = append(parts, tmpl.Place.Name)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// matchHints returns the titles of every hint with a keyword found in text, in table order.
func matchHints(hints []ThemeHint, text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var titles []string
	for _, h := range hints {
		for _, kw := range h.Keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				titles = append(titles, h.Title)
				break
			}
		}
	}
	return titles
}

// labelMatches reports whether a library label contains the hinted title, ignoring case.
func labelMatches(label, hint string) bool {
	hint = strings.ToLower(strings.TrimSpace(hint))
	return hint != "" && strings.Contains(strings.ToLower(label), hint)
}
