// Package config loads almanac settings from defaults, an optional YAML file and
// ALMANAC_ environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/julianstephens/almanac/internal/constants"
	"github.com/julianstephens/almanac/internal/curator"
)

const (
	// EnvPrefix prefixes every environment override. A double underscore separates
	// nesting levels: ALMANAC_CURATION__MIN_SCORE -> curation.min_score.
	EnvPrefix = "ALMANAC_"

	// ConfigPathEnvVar points at an explicit config file.
	ConfigPathEnvVar = "ALMANAC_CONFIG"

	ConfigFileName = "config.yaml"
)

// ExportFormats lists the renderer names accepted in export.formats.
var ExportFormats = []string{"markdown", "json", "csv", "summary", "ics"}

var generatorProviders = []string{"offline", "anthropic"}

// sliceConfigPaths are split on commas when they arrive as a single env string.
var sliceConfigPaths = []string{
	"export.formats",
	"curation.scoring.chain_denylist",
}

type Config struct {
	DataDir   string          `koanf:"data_dir"`
	Debug     bool            `koanf:"debug"`
	LogLevel  string          `koanf:"log_level"`
	Curation  CurationConfig  `koanf:"curation"`
	Content   ContentConfig   `koanf:"content"`
	Generator GeneratorConfig `koanf:"generator"`
	Export    ExportConfig    `koanf:"export"`
}

type CurationConfig struct {
	MinScore        int             `koanf:"min_score"`
	ViableThreshold int             `koanf:"viable_threshold"`
	Scoring         curator.Weights `koanf:"scoring"`
}

type ContentConfig struct {
	ThemeMatch bool `koanf:"theme_match"`
	// LibraryPath replaces the embedded song/book/recipe library when set.
	LibraryPath string `koanf:"library_path"`
}

type GeneratorConfig struct {
	Provider   string        `koanf:"provider"`
	BaseURL    string        `koanf:"base_url"`
	Model      string        `koanf:"model"`
	APIKey     string        `koanf:"api_key"`
	MaxRetries int           `koanf:"max_retries"`
	Timeout    time.Duration `koanf:"timeout"`
	Backoff    time.Duration `koanf:"backoff"`
}

type ExportConfig struct {
	OutputDir string   `koanf:"output_dir"`
	Formats   []string `koanf:"formats"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataDir: constants.DefaultDataDir,
		Curation: CurationConfig{
			MinScore:        constants.DefaultMinScore,
			ViableThreshold: constants.DefaultViableThreshold,
			Scoring:         curator.DefaultWeights(),
		},
		Content: ContentConfig{
			ThemeMatch: true,
		},
		Generator: GeneratorConfig{
			Provider:   constants.DefaultGeneratorProvider,
			BaseURL:    constants.DefaultGeneratorBaseURL,
			Model:      constants.DefaultGeneratorModel,
			MaxRetries: constants.DefaultMaxRetries,
			Timeout:    constants.DefaultTimeoutSeconds * time.Second,
			Backoff:    constants.DefaultBackoffMillis * time.Millisecond,
		},
		Export: ExportConfig{
			OutputDir: ".",
			Formats:   []string{"markdown", "json", "csv"},
		},
	}
}

// Load builds the configuration. path may be empty, in which case ALMANAC_CONFIG and
// then <data-dir>/config.yaml are tried. A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	defaults := Default()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(path); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.DataDir = ExpandHome(cfg.DataDir)
	cfg.Export.OutputDir = ExpandHome(cfg.Export.OutputDir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate rejects values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.Curation.MinScore < constants.MinScore || c.Curation.MinScore > constants.MaxScore {
		return fmt.Errorf("curation.min_score must be between %d and %d, got %d",
			constants.MinScore, constants.MaxScore, c.Curation.MinScore)
	}
	if c.Curation.ViableThreshold < 0 {
		return fmt.Errorf("curation.viable_threshold must not be negative, got %d", c.Curation.ViableThreshold)
	}
	if !slices.Contains(generatorProviders, c.Generator.Provider) {
		return fmt.Errorf("generator.provider must be one of %v, got %q", generatorProviders, c.Generator.Provider)
	}
	if c.Generator.MaxRetries < 0 {
		return fmt.Errorf("generator.max_retries must not be negative, got %d", c.Generator.MaxRetries)
	}
	if c.Generator.Timeout <= 0 {
		return fmt.Errorf("generator.timeout must be positive, got %s", c.Generator.Timeout)
	}
	if c.Generator.Backoff < 0 {
		return fmt.Errorf("generator.backoff must not be negative, got %s", c.Generator.Backoff)
	}
	for _, f := range c.Export.Formats {
		if !slices.Contains(ExportFormats, f) {
			return fmt.Errorf("unknown export format %q, valid formats: %v", f, ExportFormats)
		}
	}
	return nil
}

// CuratorOptions maps the curation section onto curator options.
func (c *Config) CuratorOptions() curator.Options {
	return curator.Options{
		Weights:         c.Curation.Scoring,
		MinScore:        c.Curation.MinScore,
		ViableThreshold: c.Curation.ViableThreshold,
	}
}

// DatabasePath is the edition archive location inside the data directory.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, constants.DatabaseFileName)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func findConfigFile(explicit string) string {
	candidates := []string{explicit, os.Getenv(ConfigPathEnvVar)}
	if dataDir := os.Getenv(EnvPrefix + "DATA_DIR"); dataDir != "" {
		candidates = append(candidates, filepath.Join(ExpandHome(dataDir), ConfigFileName))
	}
	candidates = append(candidates, filepath.Join(ExpandHome(constants.DefaultDataDir), ConfigFileName))

	for _, path := range candidates {
		if path == "" {
			continue
		}
		path = ExpandHome(path)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		var parts []string
		for _, p := range strings.Split(strVal, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}
