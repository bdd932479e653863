package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/julianstephens/almanac/internal/config"
	"github.com/julianstephens/almanac/internal/content"
	"github.com/julianstephens/almanac/internal/generator"
	"github.com/julianstephens/almanac/internal/keyring"
	"github.com/julianstephens/almanac/internal/logger"
	"github.com/julianstephens/almanac/internal/pipeline"
	"github.com/julianstephens/almanac/internal/storage"
)

// APIKeyEnvVar is read when no key is configured.
const APIKeyEnvVar = "ANTHROPIC_API_KEY"

type Context struct {
	Config *config.Config
	Store  storage.Provider
	// Out receives command output. Nil means stdout.
	Out io.Writer
	// Interactive enables huh prompts. main sets it from the terminal state.
	Interactive bool
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

// IsTerminal reports whether stdin and stdout are both attached to a terminal.
func IsTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

// dataDir returns the configured data directory with ~ expanded.
func (c *Context) dataDir() string {
	return config.ExpandHome(c.Config.DataDir)
}

// ResolveAPIKey looks in the config, then ANTHROPIC_API_KEY, then the OS keyring.
func ResolveAPIKey(cfg *config.Config) (string, error) {
	if cfg.Generator.APIKey != "" {
		return cfg.Generator.APIKey, nil
	}
	if key := os.Getenv(APIKeyEnvVar); key != "" {
		return key, nil
	}
	key, err := keyring.GetAPIKey()
	if err != nil {
		logger.Debug("No API key in keyring", "error", err)
		return "", generator.ErrMissingAPIKey
	}
	return key, nil
}

// NewGenerator picks the generator named in config. offline forces the offline one.
func NewGenerator(cfg *config.Config, offline bool) (generator.Generator, error) {
	if offline || cfg.Generator.Provider == "offline" {
		return generator.NewOffline(), nil
	}
	key, err := ResolveAPIKey(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: set generator.api_key, %s, or run 'almanac key set'", err, APIKeyEnvVar)
	}
	gen, err := generator.NewAnthropic(generator.AnthropicConfig{
		APIKey:  key,
		BaseURL: cfg.Generator.BaseURL,
		Model:   cfg.Generator.Model,
		Timeout: cfg.Generator.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return gen, nil
}

// PipelineOptions maps config onto pipeline options, loading a custom content
// library when one is configured.
func PipelineOptions(cfg *config.Config) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	opts.Curator = cfg.CuratorOptions()
	opts.Content.ThemeMatch = cfg.Content.ThemeMatch
	opts.MaxRetries = cfg.Generator.MaxRetries
	opts.Backoff = cfg.Generator.Backoff

	if path := cfg.Content.LibraryPath; path != "" {
		f, err := os.Open(config.ExpandHome(path))
		if err != nil {
			return opts, fmt.Errorf("failed to open content library: %w", err)
		}
		defer f.Close()
		lib, err := content.LoadLibrary(f)
		if err != nil {
			return opts, err
		}
		opts.Library = lib
	}
	return opts, nil
}
