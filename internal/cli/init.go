package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/almanac/internal/backup"
	"github.com/julianstephens/almanac/internal/config"
)

const starterConfig = `# almanac configuration. Every key is optional; environment variables
# override it (ALMANAC_GENERATOR__PROVIDER=anthropic).
curation:
  min_score: 40
  viable_threshold: 65
content:
  theme_match: true
generator:
  provider: offline
  max_retries: 3
  timeout: 60s
  backoff: 1s
export:
  output_dir: .
  formats: [markdown, json, csv]
`

type InitCmd struct {
	Force bool `help:"Snapshot and delete the existing edition archive before initializing."`
}

func (c *InitCmd) Run(ctx *Context) error {
	dbPath := ctx.Store.Path()
	if c.Force {
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			snap, err := backup.NewManager(dbPath).Create()
			if err != nil {
				return fmt.Errorf("failed to snapshot existing database: %w", err)
			}
			ctx.printf("Saved snapshot of existing archive: %s\n", snap.Path)
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			ctx.printf("Deleted existing archive at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.printf("Initialized almanac storage at: %s\n", dbPath)

	cfgPath := filepath.Join(ctx.dataDir(), config.ConfigFileName)
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		if err := os.WriteFile(cfgPath, []byte(starterConfig), 0600); err != nil {
			return fmt.Errorf("failed to write starter config: %w", err)
		}
		ctx.printf("Wrote starter config to: %s\n", cfgPath)
	}
	return nil
}
