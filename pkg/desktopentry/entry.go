// SPDX-License-Identifier: MPL-2.0

package desktopentry

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Keys read from Desktop Entry sections.
const (
	KeyName      = "Name"
	KeyExec      = "Exec"
	KeyComment   = "Comment"
	KeyPath      = "Path"
	KeyHidden    = "Hidden"
	KeyNoDisplay = "NoDisplay"
)

// ParseEntry reads the descriptor at path and extracts its launch record.
//
// ok is false with a nil error when the entry is marked Hidden or NoDisplay.
// I/O failures are returned wrapped; content problems are returned as
// *SyntaxError or *StructuralError.
func ParseEntry(path string) (app Application, ok bool, err error) {
	fh, err := os.Open(path)
	if err != nil {
		return Application{}, false, fmt.Errorf("open desktop entry: %w", err)
	}
	defer fh.Close()

	return ParseReader(fh, path)
}

// ParseReader is ParseEntry for an already opened descriptor. path is recorded
// as the record's SourcePath and used in error messages.
func ParseReader(r io.Reader, path string) (Application, bool, error) {
	f, err := Read(r)
	if err != nil {
		return Application{}, false, fmt.Errorf("%s: %w", path, err)
	}

	return FromFile(f, path)
}

// FromFile validates the sections of f and builds the launch record.
//
// Suppression flags on the primary section are checked before anything else,
// so a hidden entry is never reported as invalid. The primary section must
// appear exactly once. Sections that are neither primary nor actions are
// ignored.
func FromFile(f *File, path string) (Application, bool, error) {
	for _, s := range f.SectionsNamed(PrimarySection) {
		if s.Bool(KeyHidden) || s.Bool(KeyNoDisplay) {
			return Application{}, false, nil
		}
	}

	var (
		app     Application
		found   bool
		actions []Action
	)

	for _, s := range f.Sections() {
		switch {
		case s.Name() == PrimarySection:
			if found {
				return Application{}, false, &StructuralError{Path: path, Section: PrimarySection, Reason: "defined twice"}
			}
			name, cmd, err := launchFields(s, path)
			if err != nil {
				return Application{}, false, err
			}
			comment, _ := s.Get(KeyComment)
			workDir, _ := s.Get(KeyPath)
			app = Application{
				Name:        name,
				Description: comment,
				Exec:        cmd,
				WorkingDir:  workDir,
				SourcePath:  path,
			}
			found = true

		case strings.Contains(s.Name(), ActionSectionMarker):
			name, cmd, err := launchFields(s, path)
			if err != nil {
				return Application{}, false, err
			}
			actions = append(actions, Action{
				ID:   strings.TrimSpace(strings.TrimPrefix(s.Name(), ActionSectionMarker)),
				Name: name,
				Exec: cmd,
			})
		}
	}

	if !found {
		return Application{}, false, &StructuralError{Path: path, Section: PrimarySection, Reason: "not found"}
	}

	app.Actions = actions
	return app, true, nil
}

// launchFields extracts the required Name and Exec of a section.
func launchFields(s *Section, path string) (string, Command, error) {
	name, _ := s.Get(KeyName)
	if name == "" {
		return "", Command{}, &StructuralError{Path: path, Section: s.Name(), Reason: "has no Name"}
	}

	raw, ok := s.Get(KeyExec)
	if !ok {
		return "", Command{}, &StructuralError{Path: path, Section: s.Name(), Reason: "has no Exec"}
	}

	cmd, err := ParseExec(raw)
	if err != nil {
		return "", Command{}, &StructuralError{Path: path, Section: s.Name(), Reason: "has an invalid Exec", Cause: err}
	}

	return name, cmd, nil
}
