// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runi-launcher/runi/internal/issue"
	"github.com/runi-launcher/runi/pkg/desktopentry"
)

type (
	// LaunchRequest describes one process to start.
	LaunchRequest struct {
		Command desktopentry.Command
		// Dir is the working directory; empty means the current one.
		Dir string
	}

	// Launcher starts applications.
	Launcher interface {
		Launch(ctx context.Context, req LaunchRequest) error
	}

	// processLauncher starts the program as a detached child and does not wait for it.
	processLauncher struct{}

	launchFlagValues struct {
		action string
		dryRun bool
	}
)

// newLaunchCommand creates the `runi launch` command.
func newLaunchCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	flags := &launchFlagValues{}

	cmd := &cobra.Command{
		Use:   "launch <name>",
		Short: "Launch an application",
		Long: `Launch an indexed application by exact name. Field codes such as %f
and %U were already removed when the entry was indexed. The process is
started in its own session so it outlives runi.`,
		Example: `  runi launch Firefox
  runi launch Firefox --action new-private-window
  runi launch --dry-run Alacritty`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLaunch(cmd.Context(), app, rootFlags, flags, args[0])
		},
	}

	cmd.Flags().StringVar(&flags.action, "action", "", "launch the action with this ID or name instead")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "print the command line without running it")

	return cmd
}

func runLaunch(ctx context.Context, app *App, rootFlags *rootFlagValues, flags *launchFlagValues, name string) error {
	a, err := lookupApp(ctx, app, rootFlags, name)
	if err != nil {
		return err
	}

	req := LaunchRequest{Command: a.Exec, Dir: a.WorkingDir}
	if flags.action != "" {
		act, ok := a.Action(flags.action)
		if !ok {
			return newServiceError(fmt.Errorf("application %q has no action %q", a.Name, flags.action),
				issue.ActionNotFoundId, "")
		}
		req.Command = act.Exec
	}

	if flags.dryRun {
		fmt.Fprintln(app.stdout, req.Command.String())
		return nil
	}

	if err := app.Launcher.Launch(ctx, req); err != nil {
		return newServiceError(err, issue.LaunchFailedId, "")
	}
	return nil
}

// Launch implements Launcher.
func (l *processLauncher) Launch(_ context.Context, req LaunchRequest) error {
	if req.Command.IsZero() {
		return errors.New("empty command")
	}

	path, err := resolveProgram(req)
	if err != nil {
		return fmt.Errorf("launch %s: %w", req.Command.Program, err)
	}

	// Not CommandContext: the child outlives runi.
	c := exec.Command(path, req.Command.Args...) //nolint:gosec // the command comes from the user's own desktop entries
	c.Dir = req.Dir
	c.SysProcAttr = detachedProcAttr()

	if err := c.Start(); err != nil {
		return fmt.Errorf("launch %s: %w", req.Command.Program, err)
	}
	return c.Process.Release()
}

// resolveProgram finds the executable for req. A program with a path
// separator is left relative when req.Dir is set, so exec.Cmd resolves it
// against the working directory.
func resolveProgram(req LaunchRequest) (string, error) {
	program := req.Command.Program
	if req.Dir != "" && strings.ContainsRune(program, filepath.Separator) && !filepath.IsAbs(program) {
		return program, nil
	}
	return exec.LookPath(program)
}
