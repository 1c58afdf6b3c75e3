// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runi-launcher/runi/internal/match"
)

type searchFlagValues struct {
	output outputFormat
	limit  int
}

// newSearchCommand creates the `runi search` command.
func newSearchCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	flags := &searchFlagValues{}

	cmd := &cobra.Command{
		Use:   "search <query>...",
		Short: "Rank applications against a query",
		Long: `Rank applications by how well their name, program or description
matches the query. Arguments are joined with spaces. Records scoring
0.05 or less are not shown.`,
		Example: `  runi search fire
  runi search -n 3 -o json text editor`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, app, rootFlags, flags, strings.Join(args, " "))
		},
	}

	addOutputFlag(cmd, &flags.output)
	cmd.Flags().IntVarP(&flags.limit, "limit", "n", 10, "maximum number of results (0 for all)")

	return cmd
}

func runSearch(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, flags *searchFlagValues, query string) error {
	ctx := cmd.Context()

	s, err := app.openSession(ctx, rootFlags)
	if err != nil {
		return err
	}
	res, err := app.buildIndex(ctx, s)
	if err != nil {
		return err
	}

	matches := match.FilterAndRank(res.Collection.Apps(), query)
	if flags.limit > 0 && len(matches) > flags.limit {
		matches = matches[:flags.limit]
	}
	s.logger.Debug("search ranked", "query", query, "results", len(matches))

	if flags.output != outputText {
		if matches == nil {
			matches = []match.Match{}
		}
		return writeStructured(app.stdout, flags.output, matches)
	}

	styled := isTerminal(app.stdout)
	for _, m := range matches {
		writeMatchLine(app.stdout, m, query, styled)
	}
	return nil
}

// writeMatchLine prints the score and name of a match.
func writeMatchLine(w io.Writer, m match.Match, query string, styled bool) {
	score := fmt.Sprintf("%.3f", m.Score)
	if !styled {
		fmt.Fprintf(w, "%s\t%s\n", score, m.App.Name)
		return
	}

	line := scoreStyle.Render(score) + highlightName(m.App.Name, query)
	if m.App.Description != "" {
		line += "  " + SubtitleStyle.Render(shorten(m.App.Description))
	}
	fmt.Fprintln(w, line)
}

// highlightName styles the characters of name matched by query.
func highlightName(name, query string) string {
	hits := match.Highlight(name, query)
	if len(hits) == 0 {
		return TitleStyle.Render(name)
	}

	var b strings.Builder
	for i, r := range name {
		if slices.Contains(hits, i) {
			b.WriteString(matchStyle.Render(string(r)))
			continue
		}
		b.WriteString(TitleStyle.Render(string(r)))
	}
	return b.String()
}
