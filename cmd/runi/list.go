// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/runi-launcher/runi/internal/issue"
	"github.com/runi-launcher/runi/pkg/desktopentry"
)

type listFlagValues struct {
	output outputFormat
	paths  bool
}

// newListCommand creates the `runi list` command.
func newListCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	flags := &listFlagValues{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List indexed applications",
		Long: `List every indexed application in name order.

On a terminal each name is followed by its description. When output is
piped, one name is printed per line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, app, rootFlags, flags)
		},
	}

	addOutputFlag(cmd, &flags.output)
	cmd.Flags().BoolVar(&flags.paths, "paths", false, "include the source file of each entry")

	return cmd
}

func runList(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, flags *listFlagValues) error {
	ctx := cmd.Context()

	s, err := app.openSession(ctx, rootFlags)
	if err != nil {
		return err
	}
	res, err := app.buildIndex(ctx, s)
	if err != nil {
		return err
	}

	apps := res.Collection.Apps()
	if flags.output != outputText {
		if apps == nil {
			apps = []desktopentry.Application{}
		}
		return writeStructured(app.stdout, flags.output, apps)
	}

	if len(apps) == 0 {
		return newServiceError(fmt.Errorf("no applications found in %d data root(s)", len(s.roots.System)+1),
			issue.NoApplicationsFoundId, "")
	}

	styled := isTerminal(app.stdout)
	for _, a := range apps {
		writeAppLine(app.stdout, a, styled, flags.paths)
	}
	return nil
}

// writeAppLine prints one application. Plain output is tab separated.
func writeAppLine(w io.Writer, a desktopentry.Application, styled, withPath bool) {
	if !styled {
		if withPath {
			fmt.Fprintf(w, "%s\t%s\n", a.Name, a.SourcePath)
			return
		}
		fmt.Fprintln(w, a.Name)
		return
	}

	line := TitleStyle.Render(a.Name)
	if a.Description != "" {
		line += "  " + SubtitleStyle.Render(shorten(a.Description))
	}
	if withPath {
		line += "  " + CmdStyle.Render(a.SourcePath)
	}
	fmt.Fprintln(w, line)
}
