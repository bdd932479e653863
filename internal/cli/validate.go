package cli

import (
	"fmt"

	"github.com/julianstephens/almanac/internal/models"
	"github.com/julianstephens/almanac/internal/qa"
)

// ValidateCmd re-runs the QA checks over a stored edition.
type ValidateCmd struct {
	ID   string `arg:"" help:"Edition ID or unique prefix."`
	Save bool   `help:"Store the fresh report on the edition."`
}

func (c *ValidateCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	ed, err := ctx.Store.GetEdition(c.ID)
	if err != nil {
		return editionErr(c.ID, err)
	}

	ctx.printf("Validating %s (%d weeks)...\n", ed.Title(), len(ed.Weeks))
	report := qa.New().Validate(ed.Weeks)
	printReport(ctx, &report)

	if c.Save {
		ed.Issues = report.Issues
		if err := ctx.Store.SaveEdition(ed); err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
		ctx.println("Report saved.")
	}
	if report.HasErrors() {
		return &QAError{Errors: report.Count(models.SeverityError)}
	}
	return nil
}

// QAError is returned when a validated edition has error-severity issues.
type QAError struct {
	Errors int
}

func (e *QAError) Error() string {
	return fmt.Sprintf("edition has %d QA error(s)", e.Errors)
}

// ExitCode separates QA failures from command failures.
func (e *QAError) ExitCode() int {
	return 2
}
