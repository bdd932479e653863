// Package pipeline runs one calendar build end to end: ingest, curate, allocate,
// assign content, generate prose with retries, then audit.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/almanac/internal/allocator"
	"github.com/julianstephens/almanac/internal/constants"
	"github.com/julianstephens/almanac/internal/content"
	"github.com/julianstephens/almanac/internal/curator"
	"github.com/julianstephens/almanac/internal/generator"
	"github.com/julianstephens/almanac/internal/ingest"
	"github.com/julianstephens/almanac/internal/logger"
	"github.com/julianstephens/almanac/internal/models"
	"github.com/julianstephens/almanac/internal/qa"
)

var ErrNoCandidates = errors.New("no valid candidate places")

const (
	StageIngest   = "ingest"
	StageCurate   = "curate"
	StageAllocate = "allocate"
	StageContent  = "content"
	StageGenerate = "generate"
	StageQA       = "qa"
	StageDone     = "done"
)

// Progress is reported as each stage advances.
type Progress struct {
	Stage   string
	Message string
	Percent int
}

type Options struct {
	Curator    curator.Options
	Content    content.Options
	Library    *content.Library
	MaxRetries int
	Backoff    time.Duration
}

// DefaultOptions returns stock curation and retry settings. Library is left nil
// and resolved to the embedded library at run time.
func DefaultOptions() Options {
	return Options{
		Curator:    curator.DefaultOptions(),
		Content:    content.Options{ThemeMatch: true},
		MaxRetries: constants.DefaultMaxRetries,
		Backoff:    constants.DefaultBackoffMillis * time.Millisecond,
	}
}

type Request struct {
	Locale     models.Locale
	Candidates []ingest.Candidate
	Seed       uint64
	Generator  generator.Generator
	Options    Options
	OnProgress func(Progress)
}

// PlanResult is the deterministic core of a run, before any prose is generated.
type PlanResult struct {
	Rejections []models.Rejection
	Curation   curator.Result
	Allocation allocator.Result
	Content    content.Result
	Timings    map[string]int64
}

// Runner carries the clock and sleeper so tests can replace them.
type Runner struct {
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func New() *Runner {
	return &Runner{now: time.Now, sleep: sleepCtx}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (r *Runner) progress(req Request, stage, msg string, pct int) {
	logger.Debug("Pipeline progress", "stage", stage, "percent", pct, "message", msg)
	if req.OnProgress != nil {
		req.OnProgress(Progress{Stage: stage, Message: msg, Percent: pct})
	}
}

// Plan runs ingest, curation, allocation and content assignment. It returns
// ErrNoCandidates when nothing survives ingestion.
func (r *Runner) Plan(req Request) (PlanResult, error) {
	lib := req.Options.Library
	if lib == nil {
		var err error
		if lib, err = content.DefaultLibrary(); err != nil {
			return PlanResult{}, fmt.Errorf("failed to load content library: %w", err)
		}
	}

	res := PlanResult{Timings: make(map[string]int64)}
	timed := func(stage string, fn func()) {
		start := r.now()
		fn()
		res.Timings[stage] = r.now().Sub(start).Milliseconds()
	}

	var places []models.Place
	r.progress(req, StageIngest, "Validating candidate places", 5)
	timed(StageIngest, func() {
		places, res.Rejections = ingest.Normalize(req.Candidates)
	})
	if len(places) == 0 {
		return res, ErrNoCandidates
	}

	r.progress(req, StageCurate, fmt.Sprintf("Curating %d places", len(places)), 15)
	timed(StageCurate, func() {
		res.Curation = curator.Curate(places, req.Options.Curator)
	})

	r.progress(req, StageAllocate, "Assigning places to weeks", 25)
	timed(StageAllocate, func() {
		res.Allocation = allocator.New().Allocate(res.Curation.Bank)
	})

	r.progress(req, StageContent, "Assigning songs, books and recipes", 30)
	timed(StageContent, func() {
		res.Content = content.Assign(lib, res.Allocation.Templates, content.NewRNG(req.Seed), req.Options.Content)
	})
	return res, nil
}

// Run builds a full edition. The only errors are ErrNoCandidates, a content library
// failure, cancellation, or a week whose generation failed on every attempt.
func (r *Runner) Run(ctx context.Context, req Request) (models.Edition, error) {
	if req.Generator == nil {
		return models.Edition{}, fmt.Errorf("no generator configured")
	}
	start := r.now()

	plan, err := r.Plan(req)
	if err != nil {
		return models.Edition{}, err
	}

	genStart := r.now()
	weeks, err := r.generate(ctx, req, plan)
	if err != nil {
		return models.Edition{}, err
	}
	plan.Timings[StageGenerate] = r.now().Sub(genStart).Milliseconds()

	r.progress(req, StageQA, "Running quality checks", 95)
	qaStart := r.now()
	report := qa.New().Validate(weeks)
	plan.Timings[StageQA] = r.now().Sub(qaStart).Milliseconds()

	edition := models.Edition{
		ID:          uuid.New().String(),
		Locale:      req.Locale,
		GeneratedAt: r.now().UTC(),
		Version:     constants.EditionVersion,
		Seed:        req.Seed,
		Weeks:       weeks,
		Issues:      report.Issues,
		Metadata: models.EditionMetadata{
			TotalCandidates:      len(req.Candidates),
			Rejected:             plan.Rejections,
			Deduplicated:         plan.Curation.Deduplicated,
			CuratedPlaces:        plan.Curation.Kept,
			BelowViableThreshold: plan.Curation.BelowViableThreshold,
			FallbackWeeks:        plan.Allocation.Fallbacks,
			Exhaustions:          plan.Content.Exhaustions,
			StageTimings:         plan.Timings,
		},
	}
	edition.Metadata.GenerationTimeMs = r.now().Sub(start).Milliseconds()

	r.progress(req, StageDone, "Edition complete", 100)
	logger.Info("Edition generated", "id", edition.ID, "locale", req.Locale.String(),
		"issues", len(edition.Issues), "fallback_weeks", len(edition.Metadata.FallbackWeeks))
	return edition, nil
}
