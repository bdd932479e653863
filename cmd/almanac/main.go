package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/julianstephens/almanac/internal/cli"
	"github.com/julianstephens/almanac/internal/config"
	"github.com/julianstephens/almanac/internal/constants"
	"github.com/julianstephens/almanac/internal/errors"
	"github.com/julianstephens/almanac/internal/logger"
	"github.com/julianstephens/almanac/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path"`
	Debug   bool   `help:"Mirror logs to stderr at debug level."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize almanac storage and write a starter config."`
	Generate cli.GenerateCmd `cmd:"" help:"Build a 52-week edition from a places file."`
	Plan     cli.PlanCmd     `cmd:"" help:"Show the week allocation without generating prose."`
	Editions struct {
		List   cli.EditionsListCmd   `cmd:"" help:"List stored editions."`
		Show   cli.EditionsShowCmd   `cmd:"" help:"Show an edition summary."`
		Delete cli.EditionsDeleteCmd `cmd:"" help:"Delete a stored edition."`
	} `cmd:"" help:"Manage stored editions."`
	Export   cli.ExportCmd   `cmd:"" help:"Export a stored edition."`
	Validate cli.ValidateCmd `cmd:"" help:"Re-run QA checks on a stored edition."`
	Browse   cli.BrowseCmd   `cmd:"" help:"Browse an edition in the terminal."`
	Key      struct {
		Set    cli.KeySetCmd    `cmd:"" help:"Store the generator API key in the OS keyring."`
		Delete cli.KeyDeleteCmd `cmd:"" help:"Remove the generator API key from the OS keyring."`
		Status cli.KeyStatusCmd `cmd:"" help:"Show where the API key is read from."`
	} `cmd:"" help:"Manage the generator API key."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Snapshot the edition archive."`
		List    cli.BackupListCmd    `cmd:"" help:"List archive snapshots."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Replace the archive with a snapshot."`
	} `cmd:"" help:"Manage edition archive snapshots."`
	Doctor cli.DoctorCmd `cmd:"" help:"Run environment checks."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Seasonal 52-week toddler activity calendar builder"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	if err := logger.Init(logger.Config{
		Debug:   cfg.Debug,
		DataDir: config.ExpandHome(cfg.DataDir),
		Level:   cfg.LogLevel,
	}); err != nil {
		logger.InitWriter(os.Stderr, log.WarnLevel)
		logger.Warn("File logging unavailable, logging warnings to stderr", "error", err)
	}

	store := storage.NewSQLiteStore(cfg.DatabasePath())
	defer store.Close()

	appCtx := &cli.Context{
		Config:      cfg,
		Store:       store,
		Out:         os.Stdout,
		Interactive: cli.IsTerminal(),
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}
