// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

// DataRoot creates an empty XDG data root with an applications directory
// and returns the root path.
func DataRoot(t testing.TB) string {
	t.Helper()
	root := t.TempDir()
	MustMkdirAll(t, filepath.Join(root, "applications"), 0o755)
	return root
}

// WriteDesktopEntry writes <root>/applications/<name> with the given
// [Desktop Entry] keys and returns the file path. Extra lines, such as action
// sections, are appended verbatim.
func WriteDesktopEntry(t testing.TB, root, name, appName, exec string, extra ...string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("[Desktop Entry]\nType=Application\n")
	if appName != "" {
		fmt.Fprintf(&b, "Name=%s\n", appName)
	}
	if exec != "" {
		fmt.Fprintf(&b, "Exec=%s\n", exec)
	}
	for _, line := range extra {
		b.WriteString(line)
		b.WriteString("\n")
	}
	path := filepath.Join(root, "applications", name)
	MustWriteFile(t, path, b.String())
	return path
}
