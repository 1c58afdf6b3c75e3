// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const (
	// EnvDataDirs is the XDG variable listing system data directories.
	EnvDataDirs = "XDG_DATA_DIRS"
	// EnvDataHome is the XDG variable naming the user data directory.
	EnvDataHome = "XDG_DATA_HOME"
)

// defaultDataDirs is the XDG fallback when XDG_DATA_DIRS is unset or empty.
var defaultDataDirs = []string{"/usr/local/share", "/usr/share"}

// Roots are the data directories searched for descriptors. The walker
// appends "applications" to each.
type Roots struct {
	// System is ordered lowest precedence first. Under last-writer-wins
	// merging the final entry therefore has the highest system precedence.
	System []string
	// User is the single user data directory. It outranks every system root.
	User string
}

// ResolveRoots computes the discovery roots from cfg and the XDG environment.
func ResolveRoots(cfg *Config) (Roots, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	system := cfg.Index.SystemDirs
	if len(system) == 0 {
		system = splitDataDirs(os.Getenv(EnvDataDirs))
	}
	if len(system) == 0 {
		system = defaultDataDirs
	}

	// XDG lists the most important directory first.
	ordered := slices.Clone(system)
	slices.Reverse(ordered)

	user := expandHome(cfg.Index.UserDir)
	if user == "" {
		user = os.Getenv(EnvDataHome)
		if !filepath.IsAbs(user) {
			user = ""
		}
	}
	if user == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Roots{}, fmt.Errorf("failed to get home directory: %w", err)
		}
		user = filepath.Join(home, ".local", "share")
	}

	return Roots{System: ordered, User: user}, nil
}

// splitDataDirs splits a colon-separated XDG list, dropping relative and
// empty entries as the base directory specification requires.
func splitDataDirs(value string) []string {
	var dirs []string
	for dir := range strings.SplitSeq(value, string(os.PathListSeparator)) {
		if dir == "" || !filepath.IsAbs(dir) {
			continue
		}
		dirs = append(dirs, filepath.Clean(dir))
	}
	return dirs
}

// expandHome replaces a leading "~/" with the current user's home directory.
func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}
