package constants

const (
	AppName            = "almanac"
	Version            = "v0.3.0"
	EditionVersion     = "1.0"
	DefaultKeyringUser = "generator-api-key"
	DefaultDataDir     = "~/.config/almanac"
	DatabaseFileName   = "almanac.db"
	LockfileName       = "almanac.lock"
	LogFileName        = "almanac.log"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// WeeksPerYear is the number of week slots in one calendar
	WeeksPerYear = 52

	// Curation defaults
	DefaultMinScore        = 40
	DefaultViableThreshold = 65
	MaxScore               = 100
	MinScore               = 0

	// Allocation windows
	DiversityWindowWeeks = 3
	HolidayWindowStart   = 48
	HolidayWindowEnd     = 52
	LateSummerStart      = 36
	HolidayWeek          = 51
	WinterCheckLastWeek  = 13

	// Week content arity
	MinActivities = 3
	MaxActivities = 4

	// Generator defaults
	DefaultGeneratorProvider = "offline"
	DefaultGeneratorModel    = "claude-sonnet-4-20250514"
	DefaultGeneratorBaseURL  = "https://api.anthropic.com"
	DefaultMaxRetries        = 3
	DefaultTimeoutSeconds    = 60
	DefaultBackoffMillis     = 1000
)
