// Package content holds the song, book and recipe library and the allocator that
// assigns one of each to every week without repetition.
package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/almanac/internal/models"
)

//go:embed library.yaml
var embeddedLibrary []byte

// ThemeHint maps title keywords to a preferred library entry.
type ThemeHint struct {
	Keywords []string `yaml:"keywords"`
	Title    string   `yaml:"title"`
}

type Themes struct {
	Songs []ThemeHint `yaml:"songs"`
	Books []ThemeHint `yaml:"books"`
}

// Library is the full cross-season content catalog.
type Library struct {
	Songs   []models.Song   `yaml:"songs"`
	Books   []models.Book   `yaml:"books"`
	Recipes []models.Recipe `yaml:"recipes"`
	Themes  Themes          `yaml:"themes"`
}

var loadDefault = sync.OnceValues(func() (*Library, error) {
	return LoadLibrary(bytes.NewReader(embeddedLibrary))
})

// DefaultLibrary returns the embedded library. The result is shared and must not be modified.
func DefaultLibrary() (*Library, error) {
	return loadDefault()
}

// LoadLibrary parses a YAML library document.
func LoadLibrary(r io.Reader) (*Library, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var lib Library
	if err := dec.Decode(&lib); err != nil {
		return nil, fmt.Errorf("failed to parse content library: %w", err)
	}
	if err := lib.Validate(); err != nil {
		return nil, err
	}
	return &lib, nil
}

// Validate checks that every entry is named and tagged with known seasons.
func (l *Library) Validate() error {
	if len(l.Songs) == 0 || len(l.Books) == 0 || len(l.Recipes) == 0 {
		return fmt.Errorf("content library needs at least one song, book and recipe")
	}
	for i, s := range l.Songs {
		if s.Title == "" || s.Artist == "" {
			return fmt.Errorf("song %d: title and artist are required", i)
		}
		if err := checkSeasons(s.Seasons); err != nil {
			return fmt.Errorf("song %q: %w", s.Title, err)
		}
	}
	for i, b := range l.Books {
		if b.Title == "" || b.Author == "" {
			return fmt.Errorf("book %d: title and author are required", i)
		}
		if err := checkSeasons(b.Seasons); err != nil {
			return fmt.Errorf("book %q: %w", b.Title, err)
		}
	}
	for i, r := range l.Recipes {
		if r.Name == "" {
			return fmt.Errorf("recipe %d: name is required", i)
		}
		if err := checkSeasons(r.Seasons); err != nil {
			return fmt.Errorf("recipe %q: %w", r.Name, err)
		}
	}
	return nil
}

func checkSeasons(seasons []models.Season) error {
	if len(seasons) == 0 {
		return fmt.Errorf("no seasons listed")
	}
	for _, s := range seasons {
		if !slices.Contains(models.Seasons, s) {
			return fmt.Errorf("unknown season %q", s)
		}
	}
	return nil
}
