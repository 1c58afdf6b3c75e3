// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/reflow/truncate"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	outputText outputFormat = "text"
	outputJSON outputFormat = "json"
	outputYAML outputFormat = "yaml"

	// descriptionWidth bounds descriptions in text listings.
	descriptionWidth = 60
	ellipsis         = "…"
)

type outputFormat string

// String implements pflag.Value.
func (f *outputFormat) String() string { return string(*f) }

// Set implements pflag.Value.
func (f *outputFormat) Set(v string) error {
	switch outputFormat(strings.ToLower(v)) {
	case outputText, outputJSON, outputYAML:
		*f = outputFormat(strings.ToLower(v))
		return nil
	default:
		return fmt.Errorf("must be one of text, json, yaml")
	}
}

// Type implements pflag.Value.
func (f *outputFormat) Type() string { return "format" }

// addOutputFlag registers -o/--output on cmd, defaulting to text.
func addOutputFlag(cmd *cobra.Command, f *outputFormat) {
	*f = outputText
	cmd.Flags().VarP(f, "output", "o", "output format: text, json or yaml")
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, format outputFormat, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported structured format %q", format)
	}
}

// isTerminal reports whether w is a terminal. Styling and column layout are
// only used on terminals; pipes get plain, stable text.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// glamourStyle picks the issue rendering style for w.
func glamourStyle(w io.Writer) string {
	if isTerminal(w) {
		return "dark"
	}
	return "notty"
}

// shorten truncates s to descriptionWidth cells.
func shorten(s string) string {
	return truncate.StringWithTail(s, descriptionWidth, ellipsis)
}

// fileExists reports whether path names an existing regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
