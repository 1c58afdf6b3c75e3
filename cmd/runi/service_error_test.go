// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/runi-launcher/runi/internal/issue"
)

func TestNewServiceError_PanicsOnNil(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil Err")
		}
	}()
	_ = newServiceError(nil, issue.LaunchFailedId, "")
}

func TestServiceError_Unwrap(t *testing.T) {
	t.Parallel()

	base := errors.New("boom")
	svcErr := newServiceError(base, issue.LaunchFailedId, "")

	if !errors.Is(svcErr, base) {
		t.Error("errors.Is should reach the wrapped error")
	}
	if svcErr.Error() != "boom" {
		t.Errorf("Error() = %q, want %q", svcErr.Error(), "boom")
	}
}

func TestRenderServiceError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		svcErr    *ServiceError
		wantEmpty bool
		contains  string
	}{
		{
			name:      "nil",
			svcErr:    nil,
			wantEmpty: true,
		},
		{
			name:     "styled message only",
			svcErr:   newServiceError(errors.New("x"), 0, "styled!\n"),
			contains: "styled!",
		},
		{
			name:     "issue help",
			svcErr:   newServiceError(errors.New("x"), issue.ApplicationNotFoundId, ""),
			contains: "runi search",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			renderServiceError(&buf, tt.svcErr, "notty")

			if tt.wantEmpty {
				if buf.Len() != 0 {
					t.Errorf("expected no output, got %q", buf.String())
				}
				return
			}
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("output %q does not contain %q", buf.String(), tt.contains)
			}
		})
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	plain := errors.New("plain failure")
	if got := formatErrorForDisplay(plain, false); got != "plain failure" {
		t.Errorf("formatErrorForDisplay(plain) = %q", got)
	}

	actionable := issue.NewErrorContext().
		WithOperation("load configuration").
		WithSuggestion("Run 'runi config init'").
		Wrap(errors.New("file missing")).
		BuildError()
	if got := formatErrorForDisplay(actionable, false); !strings.Contains(got, "runi config init") {
		t.Errorf("formatErrorForDisplay(actionable) = %q, want the suggestion", got)
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain", errors.New("x"), 1},
		{"exit error", &ExitError{Code: 3}, 3},
		{"wrapped exit error", fmt.Errorf("validate: %w", &ExitError{Code: 2, Err: errors.New("bad")}), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}

	if got := (&ExitError{Code: 4}).Error(); got != "exit status 4" {
		t.Errorf("Error() = %q", got)
	}
}
