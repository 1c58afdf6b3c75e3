// SPDX-License-Identifier: MPL-2.0

package overrides

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/runi-launcher/runi/pkg/desktopentry"
)

// ErrFormat is the sentinel error wrapped by FormatError.
var ErrFormat = errors.New("invalid override configuration")

type (
	// Store maps descriptor paths to replacement commands.
	Store struct {
		patches map[string]desktopentry.Command
	}

	// FormatError is returned when the configuration cannot be decoded or a
	// patch is unusable. It wraps ErrFormat for errors.Is() compatibility.
	FormatError struct {
		Source string

		// Key is the patch key at fault; empty for whole-file decode errors.
		Key string

		Err error
	}

	fileLayout struct {
		Patch map[string]patchEntry `toml:"patch"`
	}

	patchEntry struct {
		Exec string `toml:"exec"`
	}
)

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s: patch %q: %v", e.Source, e.Key, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

// Is reports whether target is ErrFormat.
func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// Unwrap returns the underlying decode or exec error.
func (e *FormatError) Unwrap() error { return e.Err }

// New creates a Store from an existing mapping. Keys are normalized the same
// way as keys read from a file.
func New(patches map[string]desktopentry.Command) *Store {
	s := &Store{patches: make(map[string]desktopentry.Command, len(patches))}
	for key, cmd := range patches {
		s.patches[normalizeKey(key)] = cmd
	}
	return s
}

// Load reads patches from the TOML file at path. A missing file is reported
// with an error wrapping fs.ErrNotExist; callers usually treat that as "no
// overrides".
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read override config: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes patches from TOML data. source names the data in errors.
func Parse(data []byte, source string) (*Store, error) {
	var layout fileLayout
	if err := toml.Unmarshal(data, &layout); err != nil {
		return nil, &FormatError{Source: source, Err: err}
	}

	s := &Store{patches: make(map[string]desktopentry.Command, len(layout.Patch))}
	for _, key := range slices.Sorted(maps.Keys(layout.Patch)) {
		if strings.TrimSpace(key) == "" {
			return nil, &FormatError{Source: source, Key: key, Err: errors.New("empty path")}
		}
		cmd, err := desktopentry.ParseExec(layout.Patch[key].Exec)
		if err != nil {
			return nil, &FormatError{Source: source, Key: key, Err: err}
		}
		s.patches[normalizeKey(key)] = cmd
	}

	return s, nil
}

// Take returns and removes the patch for path.
func (s *Store) Take(path string) (desktopentry.Command, bool) {
	if s == nil {
		return desktopentry.Command{}, false
	}
	cmd, ok := s.patches[path]
	if ok {
		delete(s.patches, path)
	}
	return cmd, ok
}

// Lookup returns the patch for path without consuming it.
func (s *Store) Lookup(path string) (desktopentry.Command, bool) {
	if s == nil {
		return desktopentry.Command{}, false
	}
	cmd, ok := s.patches[path]
	return cmd, ok
}

// Len returns the number of patches not yet taken.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.patches)
}

// Remaining returns the paths of patches not yet taken, sorted.
func (s *Store) Remaining() []string {
	if s == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(s.patches))
}

// Clone returns an independent copy, so one loaded Store can seed several
// index builds.
func (s *Store) Clone() *Store {
	if s == nil {
		return &Store{patches: map[string]desktopentry.Command{}}
	}
	return &Store{patches: maps.Clone(s.patches)}
}

func normalizeKey(key string) string {
	if rest, ok := strings.CutPrefix(key, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			key = filepath.Join(home, rest)
		}
	}
	return filepath.Clean(key)
}
