// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/runi-launcher/runi/internal/issue"
)

// ServiceError is a command failure that has a remediation page in the
// issue catalog. Construct it with newServiceError; Err is never nil.
type ServiceError struct {
	Err error
	// IssueID selects the catalog page; zero renders none.
	IssueID issue.Id
	// StyledMessage, when set, is printed verbatim before the page.
	StyledMessage string
}

func newServiceError(err error, issueID issue.Id, styledMessage string) *ServiceError {
	if err == nil {
		panic("newServiceError: nil error")
	}
	return &ServiceError{Err: err, IssueID: issueID, StyledMessage: styledMessage}
}

func (e *ServiceError) Error() string { return e.Err.Error() }

func (e *ServiceError) Unwrap() error { return e.Err }

// renderServiceError writes the styled message and the glamour-rendered
// catalog page for svcErr to w. A nil svcErr writes nothing.
func renderServiceError(w io.Writer, svcErr *ServiceError, stylePath string) {
	if svcErr == nil {
		return
	}
	if svcErr.StyledMessage != "" {
		fmt.Fprint(w, svcErr.StyledMessage)
	}

	page := issue.Get(svcErr.IssueID)
	if page == nil {
		return
	}
	rendered, err := page.Render(stylePath)
	if err != nil {
		fmt.Fprintf(w, "%s cannot render help page %d: %v\n", WarningStyle.Render("warning:"), svcErr.IssueID, err)
		return
	}
	fmt.Fprint(w, rendered)
}

// formatErrorForDisplay prints ActionableErrors with their suggestions (and
// cause chain when verbose) and anything else as its message.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}
