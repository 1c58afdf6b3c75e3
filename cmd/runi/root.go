// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/runi-launcher/runi/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlagValues holds the persistent flags shared by every subcommand.
type rootFlagValues struct {
	configPath string
	verbose    bool
	logLevel   string
}

// NewRootCommand builds the runi command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlagValues{}

	rootCmd := &cobra.Command{
		Use:   "runi",
		Short: "Find and launch desktop applications",
		Long: TitleStyle.Render("runi") + SubtitleStyle.Render(" - find and launch desktop applications") + `

runi indexes the freedesktop .desktop entries under your XDG data
directories, lets you search them by name, command or description,
and launches the one you pick.

` + SubtitleStyle.Render("Precedence:") + `
  Entries in $XDG_DATA_HOME/applications replace same-named entries
  from $XDG_DATA_DIRS. Commands can be patched per file in the config.

` + SubtitleStyle.Render("Examples:") + `
  runi list                 List every indexed application
  runi search fire          Rank applications matching "fire"
  runi show Firefox         Show one application with its actions
  runi launch Firefox       Start it
  runi config init          Create a default configuration file`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/runi/config.toml)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(
		newListCommand(app, flags),
		newSearchCommand(app, flags),
		newShowCommand(app, flags),
		newLaunchCommand(app, flags),
		newValidateCommand(app, flags),
		newConfigCommand(app, flags),
	)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// Execute builds the production App and runs the CLI. It is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}

	rootCmd := NewRootCommand(app)
	err = fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
	if err == nil {
		return
	}

	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.HasSuggestions() {
		fmt.Fprintln(os.Stderr, SubtitleStyle.Render(ae.SuggestionText()))
	}

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		if id := issue.IssueOf(err, 0); id != 0 {
			svcErr = newServiceError(err, id, "")
		}
	}
	renderServiceError(os.Stderr, svcErr, glamourStyle(os.Stderr))

	os.Exit(exitCode(err))
}
