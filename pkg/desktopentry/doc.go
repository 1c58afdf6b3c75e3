// SPDX-License-Identifier: MPL-2.0

// Package desktopentry parses freedesktop Desktop Entry files into launch records.
//
// File organization:
//   - desktopentry.go: Core value types (Command, Action, Application)
//   - exec.go: Exec= command-line grammar (ParseExec)
//   - reader.go: Section/key-value reader for the INI-like file syntax
//   - entry.go: Entry validation and record extraction (ParseEntry)
//   - errors.go: Sentinel and typed errors
package desktopentry
