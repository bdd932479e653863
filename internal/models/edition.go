package models

import "time"

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

type IssueCategory string

const (
	IssueSafety      IssueCategory = "safety"
	IssueTone        IssueCategory = "tone"
	IssueDevelopment IssueCategory = "development"
	IssueLocal       IssueCategory = "local"
	IssuePractical   IssueCategory = "practical"
)

// QAIssue is an advisory finding about a finished calendar.
type QAIssue struct {
	WeekNumber int           `json:"week_number"`
	Severity   Severity      `json:"severity"`
	Category   IssueCategory `json:"category"`
	Message    string        `json:"message"`
	Field      string        `json:"field,omitempty"`
}

// Locale names the place a calendar is built for.
type Locale struct {
	City    string `json:"city"`
	Region  string `json:"region,omitempty"`
	Country string `json:"country,omitempty"`
}

func (l Locale) String() string {
	if l.Region == "" {
		return l.City
	}
	return l.City + ", " + l.Region
}

// Exhaustion records a week where a content pool ran dry and reuse was allowed.
type Exhaustion struct {
	WeekNumber int    `json:"week_number"`
	Kind       string `json:"kind"`
}

// Rejection records a candidate that failed ingestion.
type Rejection struct {
	Index  int    `json:"index"`
	Name   string `json:"name,omitempty"`
	Reason string `json:"reason"`
}

type EditionMetadata struct {
	TotalCandidates      int              `json:"total_candidates"`
	Rejected             []Rejection      `json:"rejected,omitempty"`
	Deduplicated         int              `json:"deduplicated"`
	CuratedPlaces        int              `json:"curated_places"`
	BelowViableThreshold bool             `json:"below_viable_threshold"`
	FallbackWeeks        []int            `json:"fallback_weeks,omitempty"`
	Exhaustions          []Exhaustion     `json:"exhaustions,omitempty"`
	StageTimings         map[string]int64 `json:"stage_timings_ms,omitempty"`
	GenerationTimeMs     int64            `json:"generation_time_ms"`
}

// Edition is a completed 52-week calendar with its QA report.
type Edition struct {
	ID          string          `json:"id"`
	Locale      Locale          `json:"locale"`
	GeneratedAt time.Time       `json:"generated_at"`
	Version     string          `json:"version"`
	Seed        uint64          `json:"seed"`
	Weeks       []Week          `json:"weeks"`
	Issues      []QAIssue       `json:"issues"`
	Metadata    EditionMetadata `json:"metadata"`
}

// Title returns the display name of the edition.
func (e Edition) Title() string {
	return e.Locale.City + " Edition"
}
