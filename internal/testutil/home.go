// SPDX-License-Identifier: MPL-2.0

package testutil

import "testing"

// SetHomeDir points HOME at dir and returns a cleanup function that restores
// the original value.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    t.Cleanup(testutil.SetHomeDir(t, t.TempDir()))
//	    // Test code that resolves ~/.local/share or ~/.config...
//	}
func SetHomeDir(t testing.TB, dir string) func() {
	t.Helper()
	return MustSetenv(t, "HOME", dir)
}

// IsolateXDG clears the XDG base directory variables and points HOME at a
// fresh temporary directory, which it returns. All changes are undone when
// the test ends.
func IsolateXDG(t testing.TB) string {
	t.Helper()
	home := t.TempDir()
	t.Cleanup(SetHomeDir(t, home))
	for _, key := range []string{"XDG_DATA_DIRS", "XDG_DATA_HOME", "XDG_CONFIG_HOME"} {
		t.Cleanup(MustUnsetenv(t, key))
	}
	return home
}
