// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for runi.
//
// The CLI is the consumer of the application index: it loads configuration,
// builds the index in the background, waits for the one-time handoff and
// then lists, searches, shows, validates or launches records.
package cmd
