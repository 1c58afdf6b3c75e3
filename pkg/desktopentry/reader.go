// SPDX-License-Identifier: MPL-2.0

package desktopentry

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type (
	// File is the section/key-value view of a Desktop Entry file. Sections are
	// kept in file order and repeated section names are preserved, so callers
	// can detect duplicates.
	File struct {
		sections []*Section
	}

	// Section is one [Name] group of key/value pairs. Values are raw: escape
	// sequences are left for the consumer of each key to interpret.
	Section struct {
		name   string
		line   int
		values map[string]string
		keys   []string
	}
)

// Read parses the INI-like Desktop Entry syntax from r.
//
// Blank lines and lines starting with '#' are ignored. Whitespace around the
// '=' separator is trimmed. A repeated key within one section keeps the last
// value. Key/value lines before the first header and lines that are neither
// headers nor key/value pairs are reported as a *SyntaxError.
func Read(r io.Reader) (*File, error) {
	f := &File{}
	var current *Section

	scanner := bufio.NewScanner(r)
	// Exec lines of wrapper scripts can be long.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			continue

		case strings.HasPrefix(line, "["):
			if !strings.HasSuffix(line, "]") || len(line) < 3 {
				return nil, &SyntaxError{Line: lineNo, Text: line, Msg: "malformed section header"}
			}
			current = &Section{
				name:   line[1 : len(line)-1],
				line:   lineNo,
				values: make(map[string]string),
			}
			f.sections = append(f.sections, current)

		default:
			key, value, ok := strings.Cut(line, "=")
			key = strings.TrimSpace(key)
			if !ok || key == "" {
				return nil, &SyntaxError{Line: lineNo, Text: line, Msg: "expected key=value"}
			}
			if current == nil {
				return nil, &SyntaxError{Line: lineNo, Text: line, Msg: "key outside of any section"}
			}
			current.set(key, strings.TrimSpace(value))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read desktop entry: %w", err)
	}

	return f, nil
}

// Sections returns the sections in file order.
func (f *File) Sections() []*Section {
	return f.sections
}

// SectionsNamed returns every section whose name equals name.
func (f *File) SectionsNamed(name string) []*Section {
	var out []*Section
	for _, s := range f.sections {
		if s.name == name {
			out = append(out, s)
		}
	}
	return out
}

// Name returns the section name without brackets.
func (s *Section) Name() string { return s.name }

// Line returns the 1-based line number of the section header.
func (s *Section) Line() int { return s.line }

// Get returns the raw value stored under key.
func (s *Section) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Bool reports whether key holds the Desktop Entry boolean "true".
func (s *Section) Bool(key string) bool {
	v, _ := s.Get(key)
	return v == "true"
}

// Keys returns the keys in first-seen order.
func (s *Section) Keys() []string {
	return s.keys
}

func (s *Section) set(key, value string) {
	if _, exists := s.values[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}
