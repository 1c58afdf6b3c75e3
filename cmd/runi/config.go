// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runi-launcher/runi/internal/config"
	"github.com/runi-launcher/runi/internal/issue"
	"github.com/runi-launcher/runi/internal/overrides"
)

// newConfigCommand creates the `runi config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage runi configuration",
		Long: `Manage runi configuration.

Configuration is stored in $XDG_CONFIG_HOME/runi/config.toml
(default ~/.config/runi/config.toml). Every setting can also be set
through a RUNI_* environment variable, e.g. RUNI_LOG_LEVEL=debug.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var showFormat string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app, rootFlags, showFormat)
		},
	}
	showCmd.Flags().StringVarP(&showFormat, "output", "o", "text", "output format: text, toml, json or yaml")
	cfgCmd.AddCommand(showCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app, rootFlags)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ResolveFilePath(config.LoadOptions{ConfigFilePath: rootFlags.configPath})
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, path)
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App, rootFlags *rootFlagValues, format string) error {
	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: rootFlags.configPath})
	if err != nil {
		return newServiceError(err, issue.ConfigLoadFailedId, "")
	}

	switch format {
	case "toml":
		data, err := config.GenerateTOML(cfg)
		if err != nil {
			return err
		}
		_, err = app.stdout.Write(data)
		return err
	case string(outputJSON), string(outputYAML):
		return writeStructured(app.stdout, outputFormat(format), cfg)
	case string(outputText):
	default:
		return fmt.Errorf("invalid output format %q (valid: text, toml, json, yaml)", format)
	}

	path, err := config.ResolveFilePath(config.LoadOptions{ConfigFilePath: rootFlags.configPath})
	if err != nil {
		return err
	}
	roots, err := config.ResolveRoots(cfg)
	if err != nil {
		return err
	}
	patches, patchErr := overrides.Load(path)

	w := app.stdout
	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)
	if fileExists(path) {
		fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("log.level"), SuccessStyle.Render(cfg.Log.Level.String()))
	fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("index.exclude"), listOrNone(cfg.Index.Exclude))
	fmt.Fprintln(w)

	writeRoots(w, roots)
	fmt.Fprintln(w)

	switch {
	case patchErr == nil:
		fmt.Fprintf(w, "%s: %d\n", CmdStyle.Render("Override patches"), patches.Len())
		for _, key := range patches.Remaining() {
			cmd, _ := patches.Lookup(key)
			fmt.Fprintf(w, "  %s -> %s\n", key, SubtitleStyle.Render(cmd.String()))
		}
	case errors.Is(patchErr, fs.ErrNotExist):
		fmt.Fprintf(w, "%s: 0\n", CmdStyle.Render("Override patches"))
	default:
		fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("Override patches"), WarningStyle.Render(patchErr.Error()))
	}

	return nil
}

// writeRoots prints the data roots, highest precedence first.
func writeRoots(w io.Writer, roots config.Roots) {
	fmt.Fprintln(w, SubtitleStyle.Render("Data roots (highest precedence first):"))
	fmt.Fprintf(w, "  %s %s\n", roots.User, SubtitleStyle.Render("(user)"))
	for i := len(roots.System) - 1; i >= 0; i-- {
		fmt.Fprintf(w, "  %s\n", roots.System[i])
	}
}

func initConfig(app *App, rootFlags *rootFlagValues) error {
	path, err := config.ResolveFilePath(config.LoadOptions{ConfigFilePath: rootFlags.configPath})
	if err != nil {
		return err
	}

	created, err := config.CreateDefaultConfig(path)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("create configuration").
			WithResource(path).
			WithSuggestion("Check that the directory is writable").
			Wrap(err).
			BuildError()
	}

	if !created {
		fmt.Fprintf(app.stdout, "%s config file already exists: %s\n", WarningStyle.Render("!"), path)
		return nil
	}
	fmt.Fprintf(app.stdout, "%s created %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func listOrNone(values []string) string {
	if len(values) == 0 {
		return SubtitleStyle.Render("(none)")
	}
	return strings.Join(values, ", ")
}
