// SPDX-License-Identifier: MPL-2.0

// Package discovery walks XDG data roots for desktop entries and merges them
// into a single name-keyed application index.
//
// Roots are processed in precedence order, lowest first, and a record whose
// name is already indexed replaces the earlier one. Within a root, files are
// visited in lexical path order, so the lexically last duplicate wins there.
// Per-file failures never abort a pass; they are logged and returned as
// Diagnostics.
//
// File organization:
//   - discovery.go: Discovery, options and BuildIndex
//   - walk.go: per-root traversal and exclusion
//   - collection.go: the sorted, read-only Collection
//   - pending.go: background builds handed off once to the caller
//   - diagnostic.go: Diagnostic, Severity and codes
package discovery
