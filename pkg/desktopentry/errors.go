// SPDX-License-Identifier: MPL-2.0

package desktopentry

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedExec is returned when an Exec value yields no program token.
	ErrMalformedExec = errors.New("malformed exec")
	// ErrStructure is the sentinel error wrapped by StructuralError.
	ErrStructure = errors.New("invalid desktop entry structure")
	// ErrSyntax is the sentinel error wrapped by SyntaxError.
	ErrSyntax = errors.New("invalid desktop entry syntax")
)

type (
	// MalformedExecError is returned when no command token can be extracted from
	// an Exec value. It wraps ErrMalformedExec for errors.Is() compatibility.
	MalformedExecError struct {
		Value string
	}

	// StructuralError is returned when an entry violates required-field or
	// section invariants. It wraps ErrStructure for errors.Is() compatibility.
	StructuralError struct {
		// Path is the descriptor file (may be empty for in-memory input).
		Path string

		// Section is the section the problem was found in.
		Section string

		// Reason is a short description such as "defined twice".
		Reason string

		// Cause is an underlying error, e.g. a MalformedExecError.
		Cause error
	}

	// SyntaxError is returned when a line cannot be read as a section header,
	// comment, or key/value pair. It wraps ErrSyntax for errors.Is() compatibility.
	SyntaxError struct {
		Line int
		Text string
		Msg  string
	}
)

// Error implements the error interface.
func (e *MalformedExecError) Error() string {
	return fmt.Sprintf("malformed exec %q: no command token", e.Value)
}

// Unwrap returns ErrMalformedExec.
func (e *MalformedExecError) Unwrap() error { return ErrMalformedExec }

// Error implements the error interface.
func (e *StructuralError) Error() string {
	msg := fmt.Sprintf("section '%s' %s", e.Section, e.Reason)
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Is reports whether target is ErrStructure.
func (e *StructuralError) Is(target error) bool { return target == ErrStructure }

// Unwrap returns the underlying cause so errors.Is can reach ErrMalformedExec.
func (e *StructuralError) Unwrap() error { return e.Cause }

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Msg, e.Text)
}

// Unwrap returns ErrSyntax.
func (e *SyntaxError) Unwrap() error { return ErrSyntax }
