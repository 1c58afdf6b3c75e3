// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/runi-launcher/runi/internal/issue"
	"github.com/runi-launcher/runi/pkg/desktopentry"
)

// newShowCommand creates the `runi show` command.
func newShowCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	var output outputFormat

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show one application",
		Long:  `Show an indexed application, its command, working directory, actions and source file. The name must match exactly.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := lookupApp(cmd.Context(), app, rootFlags, args[0])
			if err != nil {
				return err
			}
			if output != outputText {
				return writeStructured(app.stdout, output, a)
			}
			writeAppDetails(app.stdout, a)
			return nil
		},
	}

	addOutputFlag(cmd, &output)

	return cmd
}

// lookupApp builds the index and returns the record named name.
func lookupApp(ctx context.Context, app *App, rootFlags *rootFlagValues, name string) (desktopentry.Application, error) {
	s, err := app.openSession(ctx, rootFlags)
	if err != nil {
		return desktopentry.Application{}, err
	}
	res, err := app.buildIndex(ctx, s)
	if err != nil {
		return desktopentry.Application{}, err
	}

	a, ok := res.Collection.Get(name)
	if !ok {
		return desktopentry.Application{}, newServiceError(fmt.Errorf("application %q not found", name),
			issue.ApplicationNotFoundId, "")
	}
	return a, nil
}

func writeAppDetails(w io.Writer, a desktopentry.Application) {
	field := func(key, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(w, "%s %s\n", CmdStyle.Render(fmt.Sprintf("%-12s", key+":")), value)
	}

	fmt.Fprintln(w, TitleStyle.Render(a.Name))
	field("Description", a.Description)
	field("Exec", a.Exec.String())
	field("Working dir", a.WorkingDir)
	field("Source", a.SourcePath)

	if len(a.Actions) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, SubtitleStyle.Render("Actions:"))
	for _, act := range a.Actions {
		fmt.Fprintf(w, "  %s  %s  %s\n", CmdStyle.Render(act.ID), act.Name, SubtitleStyle.Render(act.Exec.String()))
	}
}
