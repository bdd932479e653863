// Package curator turns raw candidate places into a scored, season-bucketed bank.
package curator

import (
	"github.com/julianstephens/almanac/internal/constants"
	"github.com/julianstephens/almanac/internal/logger"
	"github.com/julianstephens/almanac/internal/models"
)

type Options struct {
	Weights         Weights
	MinScore        int
	ViableThreshold int
}

// DefaultOptions returns the stock weights, gate and viable-run threshold.
func DefaultOptions() Options {
	return Options{
		Weights:         DefaultWeights(),
		MinScore:        constants.DefaultMinScore,
		ViableThreshold: constants.DefaultViableThreshold,
	}
}

type Result struct {
	Bank models.CuratedPlacesBank
	// Places is the gated, scored sequence the bank was built from.
	Places       []models.Place
	Raw          int
	Deduplicated int
	Kept         int
	Dropped      int
	// BelowViableThreshold is advisory. The run continues either way.
	BelowViableThreshold bool
}

// Curate runs dedup, scoring, the min-score gate and seasonal bucketing.
func Curate(places []models.Place, opts Options) Result {
	deduped := Deduplicate(places)
	scored := ScoreAll(deduped, opts.Weights)
	kept, dropped := FilterByScore(scored, opts.MinScore)

	res := Result{
		Bank:         Organize(kept),
		Places:       kept,
		Raw:          len(places),
		Deduplicated: len(deduped),
		Kept:         len(kept),
		Dropped:      dropped,
	}

	logger.Info("Curated candidate places",
		"raw", res.Raw, "deduplicated", res.Deduplicated, "kept", res.Kept, "dropped", res.Dropped,
		"bucket_entries", res.Bank.Total())

	if res.Kept < opts.ViableThreshold {
		res.BelowViableThreshold = true
		logger.Warn("Candidate pool below viable threshold, generic fallbacks likely",
			"kept", res.Kept, "threshold", opts.ViableThreshold)
	}
	return res
}
