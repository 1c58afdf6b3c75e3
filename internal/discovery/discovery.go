// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/runi-launcher/runi/internal/config"
	"github.com/runi-launcher/runi/internal/overrides"
	"github.com/runi-launcher/runi/pkg/desktopentry"
)

type (
	// Discovery builds application indexes from a fixed set of roots.
	// A Discovery is safe to build from repeatedly; each build works on its own
	// copy of the override store.
	Discovery struct {
		systemDirs []string
		userDir    string
		overrides  *overrides.Store
		exclude    []string
		logger     *log.Logger
		now        func() time.Time
	}

	// Option configures a Discovery instance.
	Option func(*Discovery)

	// Replacement records a same-name record replacing an earlier one.
	Replacement struct {
		Name string `json:"name" yaml:"name"`
		// Previous is the source path of the record that was replaced.
		Previous string `json:"previous" yaml:"previous"`
		// Winner is the source path of the record that replaced it.
		Winner string `json:"winner" yaml:"winner"`
	}

	// Result is the outcome of one index build.
	Result struct {
		Collection   *Collection
		Diagnostics  []Diagnostic
		Replacements []Replacement
		// Overridden counts records whose command came from an override patch.
		Overridden int
		Elapsed    time.Duration
	}
)

// WithSystemDirs sets the system data roots, lowest precedence first.
func WithSystemDirs(dirs ...string) Option {
	return func(d *Discovery) {
		d.systemDirs = append([]string(nil), dirs...)
	}
}

// WithUserDir sets the user data root. It is processed after every system root.
func WithUserDir(dir string) Option {
	return func(d *Discovery) {
		d.userDir = dir
	}
}

// WithRoots sets system and user roots from resolved configuration.
func WithRoots(roots config.Roots) Option {
	return func(d *Discovery) {
		d.systemDirs = append([]string(nil), roots.System...)
		d.userDir = roots.User
	}
}

// WithOverrides sets the override store. The store itself is never consumed;
// each build takes patches from a clone.
func WithOverrides(store *overrides.Store) Option {
	return func(d *Discovery) {
		d.overrides = store
	}
}

// WithExclude sets doublestar patterns for descriptors to ignore.
func WithExclude(patterns ...string) Option {
	return func(d *Discovery) {
		d.exclude = append([]string(nil), patterns...)
	}
}

// WithLogger sets the logger for skip, override and summary events.
func WithLogger(logger *log.Logger) Option {
	return func(d *Discovery) {
		d.logger = logger
	}
}

// New creates a Discovery. Without options it has no roots and builds an
// empty index.
func New(opts ...Option) *Discovery {
	d := &Discovery{now: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = log.New(io.Discard)
	}
	return d
}

// Roots returns the data roots in processing order: system roots as given,
// then the user root when set.
func (d *Discovery) Roots() []string {
	roots := append([]string(nil), d.systemDirs...)
	if d.userDir != "" {
		roots = append(roots, d.userDir)
	}
	return roots
}

// BuildIndex performs one full pass over every root and returns the merged
// collection. It never fails: unreadable roots and bad files only produce
// diagnostics.
func (d *Discovery) BuildIndex() Result {
	start := d.now()

	b := &builder{
		d:     d,
		store: d.overrides.Clone(),
		set:   make(map[string]desktopentry.Application),
	}
	for _, root := range d.Roots() {
		b.walkRoot(root)
	}

	for _, path := range b.store.Remaining() {
		d.logger.Warn("override patch matched no desktop entry", "path", path)
		b.diags = append(b.diags, newDiagnostic(SeverityWarning, CodeOverrideUnused, path,
			"override patch matched no desktop entry", nil))
	}

	res := Result{
		Collection:   newCollection(b.set),
		Diagnostics:  b.diags,
		Replacements: b.replacements,
		Overridden:   b.overridden,
		Elapsed:      d.now().Sub(start),
	}
	d.logger.Info("index built",
		"apps", res.Collection.Len(),
		"elapsed", res.Elapsed.Round(time.Millisecond),
		"diagnostics", len(res.Diagnostics))
	return res
}

// BuildIndex is a convenience wrapper for a single pass with a discarding
// logger: systemDirs lowest precedence first, then userDir if non-empty.
func BuildIndex(systemDirs []string, userDir string, store *overrides.Store) Result {
	return New(WithSystemDirs(systemDirs...), WithUserDir(userDir), WithOverrides(store)).BuildIndex()
}
