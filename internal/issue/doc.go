// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// remediation hints. Issue is a catalog of Markdown guidance pages, rendered
// with glamour, that the CLI prints below an error when it recognizes one.
package issue
