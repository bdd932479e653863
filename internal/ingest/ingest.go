// Package ingest decodes raw candidate place records and rejects malformed ones
// before they reach curation.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/julianstephens/almanac/internal/logger"
	"github.com/julianstephens/almanac/internal/models"
)

// Candidate is one raw place record as produced by the research step.
// Any supplied score is accepted on the wire and discarded.
type Candidate struct {
	Name        string `json:"name" validate:"required"`
	Category    string `json:"category" validate:"required,oneof=park playground museum library indoor_play farm market nature_center botanical_garden zoo aquarium splash_pad pool beach trail forest garden art_studio bakery cafe cultural_center other"`
	Description string `json:"description"`
	Address     string `json:"address"`
	URL         string `json:"url"`
	Cost        string `json:"cost" validate:"required,oneof=free low medium high membership"`

	Indoor             bool `json:"indoor"`
	Outdoor            bool `json:"outdoor"`
	ToddlerFriendly    bool `json:"toddlerFriendly"`
	StrollerAccessible bool `json:"strollerAccessible"`
	Parking            bool `json:"parking"`
	SnackFriendly      bool `json:"snackFriendly"`

	BestSeason []string `json:"bestSeason" validate:"dive,oneof=winter spring summer fall"`
	Tags       []string `json:"tags"`
	Score      *float64 `json:"score,omitempty"`

	// Type is the research step's older name for Category.
	Type string `json:"type,omitempty"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Decode reads a JSON array of candidate records.
func Decode(r io.Reader) ([]Candidate, error) {
	var cands []Candidate
	if err := json.NewDecoder(r).Decode(&cands); err != nil {
		return nil, fmt.Errorf("failed to decode candidates: %w", err)
	}
	return cands, nil
}

// Normalize validates every candidate and converts the valid ones to places.
// Invalid records are returned as rejections and never fail the batch.
func Normalize(cands []Candidate) ([]models.Place, []models.Rejection) {
	places := make([]models.Place, 0, len(cands))
	var rejections []models.Rejection

	for i, c := range cands {
		c = clean(c)
		if c.URL != "" && getValidator().Var(c.URL, "url") != nil {
			logger.Warn("Dropping invalid candidate URL", "index", i, "name", c.Name, "url", c.URL)
			c.URL = ""
		}
		if err := getValidator().Struct(&c); err != nil {
			rej := models.Rejection{Index: i, Name: c.Name, Reason: describe(err)}
			logger.Warn("Rejected candidate place", "index", i, "name", c.Name, "reason", rej.Reason)
			rejections = append(rejections, rej)
			continue
		}
		places = append(places, toPlace(c))
	}
	return places, rejections
}

func clean(c Candidate) Candidate {
	c.Name = strings.TrimSpace(c.Name)
	c.Category = strings.ToLower(strings.TrimSpace(c.Category))
	if c.Category == "" {
		c.Category = strings.ToLower(strings.TrimSpace(c.Type))
	}
	c.Description = strings.TrimSpace(c.Description)
	c.Address = strings.TrimSpace(c.Address)
	c.URL = strings.TrimSpace(c.URL)
	c.Cost = strings.ToLower(strings.TrimSpace(c.Cost))

	seasons := make([]string, 0, len(c.BestSeason))
	for _, s := range c.BestSeason {
		if s = strings.ToLower(strings.TrimSpace(s)); !slices.Contains(seasons, s) {
			seasons = append(seasons, s)
		}
	}
	c.BestSeason = seasons

	tags := make([]string, 0, len(c.Tags))
	for _, t := range c.Tags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			tags = append(tags, t)
		}
	}
	c.Tags = tags
	return c
}

func toPlace(c Candidate) models.Place {
	seasons := make([]models.Season, 0, len(c.BestSeason))
	for _, s := range c.BestSeason {
		seasons = append(seasons, models.Season(s))
	}
	return models.Place{
		Name:               c.Name,
		Category:           models.Category(c.Category),
		Description:        c.Description,
		Address:            c.Address,
		URL:                c.URL,
		Cost:               models.CostTier(c.Cost),
		Indoor:             c.Indoor,
		Outdoor:            c.Outdoor,
		ToddlerFriendly:    c.ToddlerFriendly,
		StrollerAccessible: c.StrollerAccessible,
		Parking:            c.Parking,
		SnackFriendly:      c.SnackFriendly,
		BestSeasons:        seasons,
		Tags:               c.Tags,
	}
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fieldName(fe.StructField())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s %q is not one of [%s]", field, fe.Value(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

func fieldName(structField string) string {
	base, index, indexed := strings.Cut(structField, "[")
	switch base {
	case "BestSeason":
		base = "bestSeason"
	default:
		base = strings.ToLower(base)
	}
	if indexed {
		return base + "[" + index
	}
	return base
}
