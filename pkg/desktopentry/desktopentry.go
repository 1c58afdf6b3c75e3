// SPDX-License-Identifier: MPL-2.0

package desktopentry

import (
	"slices"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

const (
	// FileExt is the extension that marks a file as an application descriptor.
	FileExt = ".desktop"
	// ApplicationsSubdir is the directory under each XDG data root holding descriptors.
	ApplicationsSubdir = "applications"

	// PrimarySection is the name of the section describing the application itself.
	PrimarySection = "Desktop Entry"
	// ActionSectionMarker is the substring identifying action sections.
	ActionSectionMarker = "Desktop Action"
)

type (
	// Command is a tokenized Exec value: a program plus its arguments.
	// Program is never empty for a Command returned by ParseExec.
	Command struct {
		Program string   `json:"program" yaml:"program"`
		Args    []string `json:"args,omitempty" yaml:"args,omitempty"`
	}

	// Action is a named sub-command of an application, e.g. "New Window".
	Action struct {
		// ID is the section suffix after "Desktop Action " (e.g. "new-window").
		ID   string  `json:"id" yaml:"id"`
		Name string  `json:"name" yaml:"name"`
		Exec Command `json:"exec" yaml:"exec"`
	}

	// Application is one indexed launch record. Values are treated as immutable;
	// use WithExec to derive a patched copy.
	Application struct {
		Name        string   `json:"name" yaml:"name"`
		Description string   `json:"description,omitempty" yaml:"description,omitempty"`
		Exec        Command  `json:"exec" yaml:"exec"`
		WorkingDir  string   `json:"working_dir,omitempty" yaml:"working_dir,omitempty"`
		Actions     []Action `json:"actions,omitempty" yaml:"actions,omitempty"`

		// SourcePath is the descriptor the record came from. It is the join key
		// for override patches and is not part of record identity.
		SourcePath string `json:"source_path" yaml:"source_path"`
	}
)

// Argv returns the program followed by its arguments.
func (c Command) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Program)
	return append(argv, c.Args...)
}

// IsZero reports whether the command has no program.
func (c Command) IsZero() bool {
	return c.Program == ""
}

// Equal reports whether two commands have the same program and arguments.
func (c Command) Equal(other Command) bool {
	return c.Program == other.Program && slices.Equal(c.Args, other.Args)
}

// String renders the command as a POSIX shell line, quoting tokens where needed.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	for _, tok := range c.Argv() {
		quoted, err := syntax.Quote(tok, syntax.LangPOSIX)
		if err != nil {
			quoted = tok
		}
		parts = append(parts, quoted)
	}
	return strings.Join(parts, " ")
}

// WithExec returns a copy of the application with its command replaced.
func (a Application) WithExec(cmd Command) Application {
	a.Exec = Command{Program: cmd.Program, Args: slices.Clone(cmd.Args)}
	a.Actions = slices.Clone(a.Actions)
	return a
}

// Action returns the action whose ID or display name equals name.
func (a Application) Action(name string) (Action, bool) {
	for _, act := range a.Actions {
		if act.ID == name || act.Name == name {
			return act, true
		}
	}
	return Action{}, false
}

// Equal reports whether two records carry the same data, source path included.
func (a Application) Equal(other Application) bool {
	return a.Name == other.Name &&
		a.Description == other.Description &&
		a.Exec.Equal(other.Exec) &&
		a.WorkingDir == other.WorkingDir &&
		a.SourcePath == other.SourcePath &&
		slices.EqualFunc(a.Actions, other.Actions, func(x, y Action) bool {
			return x.ID == y.ID && x.Name == y.Name && x.Exec.Equal(y.Exec)
		})
}
