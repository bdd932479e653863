package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/almanac/internal/content"
	"github.com/julianstephens/almanac/internal/keyring"
)

// DoctorCmd runs environment checks.
type DoctorCmd struct{}

type check struct {
	name    string
	run     func(ctx *Context) error
	warning bool
}

var checks = []check{
	{name: "Data directory", run: checkDataDir},
	{name: "Edition archive", run: checkArchive},
	{name: "Content library", run: checkLibrary},
	{name: "Generator credentials", run: checkCredentials, warning: true},
}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.println("Running diagnostics...")
	ctx.println()

	failed := 0
	for _, c := range checks {
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.printf("%s %s: OK\n", okStyle.Render("✓"), c.name)
		case c.warning:
			ctx.printf("%s %s: WARNING\n   %v\n", warnStyle.Render("⚠"), c.name, err)
		default:
			ctx.printf("%s %s: FAIL\n   Error: %v\n", errStyle.Render("✗"), c.name, err)
			failed++
		}
	}

	ctx.println()
	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	ctx.println("All checks passed.")
	return nil
}

func checkDataDir(ctx *Context) error {
	info, err := os.Stat(ctx.dataDir())
	if err != nil {
		return fmt.Errorf("%s: %w", ctx.dataDir(), err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", ctx.dataDir())
	}
	return nil
}

func checkArchive(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	_, err := ctx.Store.ListEditions()
	return err
}

func checkLibrary(ctx *Context) error {
	opts, err := PipelineOptions(ctx.Config)
	if err != nil {
		return err
	}
	if opts.Library != nil {
		return opts.Library.Validate()
	}
	_, err = content.DefaultLibrary()
	return err
}

func checkCredentials(ctx *Context) error {
	if ctx.Config.Generator.Provider == "offline" {
		return nil
	}
	if _, err := ResolveAPIKey(ctx.Config); err != nil {
		if !keyring.IsAvailable() {
			return errors.Join(err, keyring.ErrKeyringUnavailable)
		}
		return err
	}
	return nil
}
