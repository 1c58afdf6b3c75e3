// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runi-launcher/runi/internal/discovery"
	"github.com/runi-launcher/runi/internal/issue"
	"github.com/runi-launcher/runi/pkg/desktopentry"
)

// validateReport is the structured form of a full-index validation.
type validateReport struct {
	Apps         int                     `json:"apps" yaml:"apps"`
	Overridden   int                     `json:"overridden" yaml:"overridden"`
	Replacements []discovery.Replacement `json:"replacements" yaml:"replacements"`
	Diagnostics  []discovery.Diagnostic  `json:"diagnostics" yaml:"diagnostics"`
}

// newValidateCommand creates the `runi validate` command.
func newValidateCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	var output outputFormat

	cmd := &cobra.Command{
		Use:   "validate [file]...",
		Short: "Check desktop entries for problems",
		Long: `Parse the given .desktop files and report whether each is usable.

Without arguments the whole index is built and every skipped file, unreadable
directory and unused override patch is reported. The exit status is 1 when a
file is invalid.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return validateFiles(app, rootFlags, args)
			}
			return validateIndex(cmd.Context(), app, rootFlags, output)
		},
	}

	addOutputFlag(cmd, &output)

	return cmd
}

func validateFiles(app *App, rootFlags *rootFlagValues, paths []string) error {
	invalid := 0
	for _, path := range paths {
		a, ok, err := desktopentry.ParseEntry(path)
		switch {
		case err != nil:
			invalid++
			fmt.Fprintf(app.stdout, "%s %s\n", ErrorStyle.Render("✗"), formatErrorForDisplay(err, rootFlags.verbose))
		case !ok:
			fmt.Fprintf(app.stdout, "%s %s %s\n", WarningStyle.Render("-"), path, SubtitleStyle.Render("(hidden)"))
		default:
			fmt.Fprintf(app.stdout, "%s %s %s\n", SuccessStyle.Render("✓"), path, SubtitleStyle.Render("("+a.Name+")"))
		}
	}

	if invalid > 0 {
		return &ExitError{
			Code: 1,
			Err: newServiceError(fmt.Errorf("%d of %d desktop entries are invalid", invalid, len(paths)),
				issue.EntryInvalidId, ""),
		}
	}
	return nil
}

func validateIndex(ctx context.Context, app *App, rootFlags *rootFlagValues, output outputFormat) error {
	s, err := app.openSession(ctx, rootFlags)
	if err != nil {
		return err
	}
	res, err := app.buildIndex(ctx, s)
	if err != nil {
		return err
	}

	if output != outputText {
		report := validateReport{
			Apps:         res.Collection.Len(),
			Overridden:   res.Overridden,
			Replacements: res.Replacements,
			Diagnostics:  res.Diagnostics,
		}
		if report.Replacements == nil {
			report.Replacements = []discovery.Replacement{}
		}
		if report.Diagnostics == nil {
			report.Diagnostics = []discovery.Diagnostic{}
		}
		if err := writeStructured(app.stdout, output, report); err != nil {
			return err
		}
	} else {
		app.Diagnostics.Render(ctx, res.Diagnostics, app.stdout)
		fmt.Fprintf(app.stdout, "%d applications indexed, %d overridden by patches, %d replaced by name, %d problem(s)\n",
			res.Collection.Len(), res.Overridden, len(res.Replacements), len(res.Diagnostics))
	}

	errorsFound := 0
	for _, d := range res.Diagnostics {
		if d.Severity == discovery.SeverityError {
			errorsFound++
		}
	}
	if errorsFound > 0 {
		return &ExitError{Code: 1, Err: fmt.Errorf("%d desktop entries could not be parsed", errorsFound)}
	}
	return nil
}
