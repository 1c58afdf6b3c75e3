// SPDX-License-Identifier: MPL-2.0

// Package overrides loads user command patches keyed by descriptor path.
//
// Patches live in the [patch."<path>"] tables of the runi config file:
//
//	[patch."/usr/share/applications/signal-desktop.desktop"]
//	exec = "signal-desktop --use-tray-icon"
//
// A Store is consumed while an index is built: each patch is removed when the
// descriptor it targets is merged, and whatever remains afterwards points at
// files that were never seen.
package overrides
