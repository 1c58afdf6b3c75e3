// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/runi-launcher/runi/internal/overrides"
	"github.com/runi-launcher/runi/pkg/desktopentry"
)

// builder holds the working state of a single BuildIndex pass.
type builder struct {
	d            *Discovery
	store        *overrides.Store
	set          map[string]desktopentry.Application
	diags        []Diagnostic
	replacements []Replacement
	overridden   int
}

// walkRoot visits every descriptor under <root>/applications in lexical order.
func (b *builder) walkRoot(root string) {
	logger := b.d.logger
	appsDir := filepath.Join(root, desktopentry.ApplicationsSubdir)

	// WalkDir does not follow a symlinked start directory. Walk the target
	// but report paths under appsDir so override keys still match.
	walkDir := appsDir
	if resolved, err := filepath.EvalSymlinks(appsDir); err == nil {
		walkDir = resolved
	}

	err := filepath.WalkDir(walkDir, func(path string, entry fs.DirEntry, err error) error {
		path = underRoot(walkDir, appsDir, path)
		if err != nil {
			if path == appsDir && errors.Is(err, fs.ErrNotExist) {
				logger.Debug("data root has no applications directory", "root", root)
				return filepath.SkipDir
			}
			logger.Debug("cannot read directory", "path", path, "error", err)
			b.diags = append(b.diags, newDiagnostic(SeverityWarning, CodeRootUnreadable, path,
				"directory could not be read", err))
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.IsDir() || filepath.Ext(path) != desktopentry.FileExt {
			return nil
		}
		if pattern, ok := b.excluded(appsDir, path); ok {
			logger.Debug("desktop entry excluded", "path", path, "pattern", pattern)
			return nil
		}

		b.visit(path)
		return nil
	})
	if err != nil {
		// The callback never returns an error other than SkipDir.
		logger.Debug("walk stopped", "root", root, "error", err)
	}
}

// underRoot rewrites a path below walkDir to the same path below appsDir.
func underRoot(walkDir, appsDir, path string) string {
	if walkDir == appsDir {
		return path
	}
	rel, err := filepath.Rel(walkDir, path)
	if err != nil {
		return path
	}
	return filepath.Join(appsDir, rel)
}

// visit parses one descriptor and upserts it into the working set.
func (b *builder) visit(path string) {
	logger := b.d.logger

	app, ok, err := desktopentry.ParseEntry(path)
	if err != nil {
		logger.Warn("skipping desktop entry", "path", path, "error", err)
		b.diags = append(b.diags, newDiagnostic(SeverityError, CodeEntryParseSkipped, path,
			"desktop entry could not be parsed", err))
		return
	}
	if !ok {
		logger.Debug("desktop entry is hidden", "path", path)
		return
	}

	if cmd, patched := b.store.Take(path); patched {
		app = app.WithExec(cmd)
		b.overridden++
		logger.Debug("override applied", "name", app.Name, "path", path, "exec", cmd.String())
	}

	if prev, exists := b.set[app.Name]; exists {
		logger.Info("overridden", "name", app.Name, "previous", prev.SourcePath, "by", path)
		b.replacements = append(b.replacements, Replacement{
			Name:     app.Name,
			Previous: prev.SourcePath,
			Winner:   path,
		})
	}
	b.set[app.Name] = app
}

// excluded matches path against the exclude patterns, both relative to the
// applications directory and as an absolute path.
func (b *builder) excluded(appsDir, path string) (string, bool) {
	if len(b.d.exclude) == 0 {
		return "", false
	}
	rel, err := filepath.Rel(appsDir, path)
	if err != nil {
		rel = path
	}
	for _, pattern := range b.d.exclude {
		if ok, _ := doublestar.PathMatch(pattern, rel); ok {
			return pattern, true
		}
		if ok, _ := doublestar.PathMatch(pattern, path); ok {
			return pattern, true
		}
	}
	return "", false
}
