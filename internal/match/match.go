// SPDX-License-Identifier: MPL-2.0

package match

import (
	"cmp"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/xrash/smetrics"

	"github.com/runi-launcher/runi/pkg/desktopentry"
)

const (
	// Threshold is the score a record must exceed to be kept.
	Threshold = 0.05

	// NameWeight, ProgramWeight and DescriptionWeight scale each channel.
	NameWeight        = 1.0
	ProgramWeight     = 0.5
	DescriptionWeight = 0.25

	// Jaro-Winkler prefix boost parameters.
	boostThreshold = 0.7
	prefixSize     = 4
)

// Match is a ranked record.
type Match struct {
	App   desktopentry.Application `json:"app" yaml:"app"`
	Score float64                  `json:"score" yaml:"score"`
}

// Score returns how well app matches query, in [0, 1].
func Score(app desktopentry.Application, query string) float64 {
	q := normalize(query)
	return max(
		NameWeight*similarity(normalize(app.Name), q),
		ProgramWeight*similarity(normalize(filepath.Base(app.Exec.Program)), q),
		DescriptionWeight*similarity(normalize(app.Description), q),
	)
}

// FilterAndRank scores every app, drops those at or below Threshold and
// orders the rest by score, highest first. Equal scores keep input order.
//
// A blank query skips scoring and returns every app in input order with a
// score of 1.
func FilterAndRank(apps []desktopentry.Application, query string) []Match {
	if strings.TrimSpace(query) == "" {
		all := make([]Match, len(apps))
		for i, app := range apps {
			all[i] = Match{App: app, Score: 1}
		}
		return all
	}

	var matches []Match
	for _, app := range apps {
		if s := Score(app, query); s > Threshold {
			matches = append(matches, Match{App: app, Score: s})
		}
	}
	slices.SortStableFunc(matches, func(a, b Match) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return matches
}

// Highlight returns the byte offsets in name of characters matched by query,
// for display. It returns nil when query is not a subsequence of name.
func Highlight(name, query string) []int {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil
	}
	found := fuzzy.Find(q, []string{name})
	if len(found) == 0 {
		return nil
	}
	return found[0].MatchedIndexes
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func similarity(a, b string) float64 {
	if a == "" || b == "" || a == "." {
		return 0
	}
	return smetrics.JaroWinkler(a, b, boostThreshold, prefixSize)
}
