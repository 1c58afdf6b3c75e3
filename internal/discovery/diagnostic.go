// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"
)

const (
	// SeverityWarning indicates a recoverable discovery warning.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a non-fatal discovery error diagnostic.
	SeverityError Severity = "error"

	// CodeEntryParseSkipped marks a descriptor that failed to parse and was skipped.
	CodeEntryParseSkipped DiagnosticCode = "entry_parse_skipped"
	// CodeRootUnreadable marks a root or subdirectory that exists but could not be read.
	CodeRootUnreadable DiagnosticCode = "root_unreadable"
	// CodeOverrideUnused marks an override patch that matched no descriptor.
	CodeOverrideUnused DiagnosticCode = "override_unused"
)

var (
	// ErrInvalidSeverity is returned when a Severity value is not recognized.
	ErrInvalidSeverity = errors.New("invalid severity")
	// ErrInvalidDiagnosticCode is returned when a DiagnosticCode value is not recognized.
	ErrInvalidDiagnosticCode = errors.New("invalid diagnostic code")
)

type (
	// Severity represents discovery diagnostic severity.
	Severity string

	// DiagnosticCode is a machine-readable diagnostic identifier.
	DiagnosticCode string

	// InvalidSeverityError is returned when a Severity value is not recognized.
	InvalidSeverityError struct {
		Value Severity
	}

	// InvalidDiagnosticCodeError is returned when a DiagnosticCode value is not recognized.
	InvalidDiagnosticCodeError struct {
		Value DiagnosticCode
	}

	// Diagnostic represents a structured discovery diagnostic that is returned
	// to callers (rather than written to stderr) for consistent rendering policy.
	Diagnostic struct {
		// Severity is the diagnostic level (warning or error).
		Severity Severity `json:"severity" yaml:"severity"`
		// Code is a machine-readable identifier (e.g., "entry_parse_skipped").
		Code DiagnosticCode `json:"code" yaml:"code"`
		// Message is the human-readable description.
		Message string `json:"message" yaml:"message"`
		// Path is the file path associated with this diagnostic (optional).
		Path string `json:"path,omitempty" yaml:"path,omitempty"`
		// Error is Cause's message, kept for serialized reports.
		Error string `json:"error,omitempty" yaml:"error,omitempty"`
		// Cause is the underlying error (optional, for programmatic inspection).
		Cause error `json:"-" yaml:"-"`
	}
)

// String returns the string representation of the Severity.
func (s Severity) String() string { return string(s) }

// IsValid returns whether the Severity is one of the defined levels.
func (s Severity) IsValid() (bool, []error) {
	switch s {
	case SeverityWarning, SeverityError:
		return true, nil
	default:
		return false, []error{&InvalidSeverityError{Value: s}}
	}
}

// Error implements the error interface.
func (e *InvalidSeverityError) Error() string {
	return fmt.Sprintf("invalid severity %q (valid: warning, error)", e.Value)
}

// Unwrap returns ErrInvalidSeverity for errors.Is() compatibility.
func (e *InvalidSeverityError) Unwrap() error { return ErrInvalidSeverity }

// UnmarshalText decodes a Severity, rejecting unknown levels.
func (s *Severity) UnmarshalText(text []byte) error {
	v := Severity(text)
	if ok, errs := v.IsValid(); !ok {
		return errs[0]
	}
	*s = v
	return nil
}

// String returns the string representation of the DiagnosticCode.
func (c DiagnosticCode) String() string { return string(c) }

// IsValid returns whether the DiagnosticCode is one of the defined codes.
func (c DiagnosticCode) IsValid() (bool, []error) {
	switch c {
	case CodeEntryParseSkipped, CodeRootUnreadable, CodeOverrideUnused:
		return true, nil
	default:
		return false, []error{&InvalidDiagnosticCodeError{Value: c}}
	}
}

// Error implements the error interface.
func (e *InvalidDiagnosticCodeError) Error() string {
	return fmt.Sprintf("invalid diagnostic code %q", e.Value)
}

// Unwrap returns ErrInvalidDiagnosticCode for errors.Is() compatibility.
func (e *InvalidDiagnosticCodeError) Unwrap() error { return ErrInvalidDiagnosticCode }

// UnmarshalText decodes a DiagnosticCode, rejecting unknown codes.
func (c *DiagnosticCode) UnmarshalText(text []byte) error {
	v := DiagnosticCode(text)
	if ok, errs := v.IsValid(); !ok {
		return errs[0]
	}
	*c = v
	return nil
}

func newDiagnostic(severity Severity, code DiagnosticCode, path, message string, cause error) Diagnostic {
	d := Diagnostic{
		Severity: severity,
		Code:     code,
		Message:  message,
		Path:     path,
		Cause:    cause,
	}
	if cause != nil {
		d.Error = cause.Error()
	}
	return d
}
