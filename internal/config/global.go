// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride replaces ConfigDir's result when non-empty. Tests set it
// instead of relying on HOME being honored.
var configDirOverride string

// SetConfigDirOverride makes ConfigDir return dir until Reset is called.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// Reset clears SetConfigDirOverride.
func Reset() {
	configDirOverride = ""
}
