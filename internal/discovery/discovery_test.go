// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/runi-launcher/runi/internal/config"
	"github.com/runi-launcher/runi/internal/overrides"
	"github.com/runi-launcher/runi/internal/testutil"
	"github.com/runi-launcher/runi/pkg/desktopentry"
)

// newBufferLogger returns a debug-level logger writing plain text to a buffer.
func newBufferLogger() (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	return logger, &buf
}

func TestBuildIndex_UserRootOverridesSystemRoot(t *testing.T) {
	t.Parallel()

	system := testutil.DataRoot(t)
	user := testutil.DataRoot(t)
	testutil.WriteDesktopEntry(t, system, "a.desktop", "A", "appA --x")
	userPath := testutil.WriteDesktopEntry(t, user, "a.desktop", "A", "appA --y")

	logger, buf := newBufferLogger()
	res := New(WithSystemDirs(system), WithUserDir(user), WithLogger(logger)).BuildIndex()

	if res.Collection.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", res.Collection.Len())
	}
	app, ok := res.Collection.Get("A")
	if !ok {
		t.Fatal("record A not found")
	}
	want := desktopentry.Command{Program: "appA", Args: []string{"--y"}}
	if !app.Exec.Equal(want) {
		t.Errorf("Exec = %v, want %v", app.Exec, want)
	}
	if app.SourcePath != userPath {
		t.Errorf("SourcePath = %q, want %q", app.SourcePath, userPath)
	}

	if len(res.Replacements) != 1 || res.Replacements[0].Winner != userPath {
		t.Errorf("Replacements = %+v, want one won by %s", res.Replacements, userPath)
	}
	if !strings.Contains(buf.String(), "overridden") || !strings.Contains(buf.String(), "name=A") {
		t.Errorf("expected an 'overridden' log line for A, got:\n%s", buf.String())
	}
}

func TestBuildIndex_SystemRootOrder(t *testing.T) {
	t.Parallel()

	low := testutil.DataRoot(t)
	high := testutil.DataRoot(t)
	testutil.WriteDesktopEntry(t, low, "term.desktop", "Terminal", "xterm")
	testutil.WriteDesktopEntry(t, high, "term.desktop", "Terminal", "alacritty")

	res := BuildIndex([]string{low, high}, "", nil)

	app, _ := res.Collection.Get("Terminal")
	if app.Exec.Program != "alacritty" {
		t.Errorf("Program = %q, want alacritty from the later root", app.Exec.Program)
	}
}

func TestBuildIndex_SortedByName(t *testing.T) {
	t.Parallel()

	root := testutil.DataRoot(t)
	testutil.WriteDesktopEntry(t, root, "z.desktop", "alpha", "a")
	testutil.WriteDesktopEntry(t, root, "y.desktop", "Zeta", "z")
	testutil.WriteDesktopEntry(t, root, "sub/x.desktop", "Beta", "b")

	res := BuildIndex([]string{root}, "", nil)

	// Byte-wise ordering puts uppercase before lowercase.
	want := []string{"Beta", "Zeta", "alpha"}
	if got := res.Collection.Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestBuildIndex_FailSoft(t *testing.T) {
	t.Parallel()

	root := testutil.DataRoot(t)
	testutil.WriteDesktopEntry(t, root, "good.desktop", "Good", "good")
	bad := filepath.Join(root, "applications", "bad.desktop")
	testutil.MustWriteFile(t, bad, "[Desktop Entry]\nName=Bad\n")
	noName := filepath.Join(root, "applications", "noname.desktop")
	testutil.MustWriteFile(t, noName, "[Desktop Entry]\nExec=foo\n")
	testutil.WriteDesktopEntry(t, root, "hidden.desktop", "Hidden", "hidden", "NoDisplay=true")
	testutil.MustWriteFile(t, filepath.Join(root, "applications", "README.txt"), "not an entry")

	res := BuildIndex([]string{root}, "", nil)

	if got := res.Collection.Names(); !slices.Equal(got, []string{"Good"}) {
		t.Errorf("Names() = %v, want [Good]", got)
	}

	var skipped []string
	for _, d := range res.Diagnostics {
		if d.Code == CodeEntryParseSkipped {
			skipped = append(skipped, d.Path)
			if !errors.Is(d.Cause, desktopentry.ErrStructure) {
				t.Errorf("diagnostic cause for %s = %v, want ErrStructure", d.Path, d.Cause)
			}
		}
	}
	slices.Sort(skipped)
	if want := []string{bad, noName}; !slices.Equal(skipped, want) {
		t.Errorf("skipped = %v, want %v", skipped, want)
	}
}

func TestBuildIndex_MissingRootsAreSilent(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "does-not-exist")
	empty := t.TempDir()
	root := testutil.DataRoot(t)
	testutil.WriteDesktopEntry(t, root, "a.desktop", "A", "a")

	res := BuildIndex([]string{missing, empty}, root, nil)

	if res.Collection.Len() != 1 {
		t.Errorf("Len() = %d, want 1", res.Collection.Len())
	}
	if len(res.Diagnostics) != 0 {
		t.Errorf("Diagnostics = %+v, want none for missing roots", res.Diagnostics)
	}
}

func TestBuildIndex_UnreadableSubdirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	t.Parallel()

	root := testutil.DataRoot(t)
	testutil.WriteDesktopEntry(t, root, "a.desktop", "A", "a")
	locked := filepath.Join(root, "applications", "locked")
	testutil.MustMkdirAll(t, locked, 0o755)
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	res := BuildIndex([]string{root}, "", nil)

	if res.Collection.Len() != 1 {
		t.Errorf("Len() = %d, want 1", res.Collection.Len())
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != CodeRootUnreadable {
		t.Errorf("Diagnostics = %+v, want one %s", res.Diagnostics, CodeRootUnreadable)
	}
}

func TestBuildIndex_OverrideApplied(t *testing.T) {
	t.Parallel()

	root := testutil.DataRoot(t)
	path := testutil.WriteDesktopEntry(t, root, "signal.desktop", "Signal", "signal-desktop %U")
	testutil.WriteDesktopEntry(t, root, "other.desktop", "Other", "other")

	store := overrides.New(map[string]desktopentry.Command{
		path: {Program: "signal-desktop", Args: []string{"--use-tray-icon"}},
	})
	d := New(WithSystemDirs(root), WithOverrides(store))

	res := d.BuildIndex()

	app, _ := res.Collection.Get("Signal")
	if want := "signal-desktop --use-tray-icon"; app.Exec.String() != want {
		t.Errorf("Exec = %q, want %q", app.Exec.String(), want)
	}
	other, _ := res.Collection.Get("Other")
	if other.Exec.Program != "other" {
		t.Errorf("unpatched record changed: %v", other.Exec)
	}
	if res.Overridden != 1 {
		t.Errorf("Overridden = %d, want 1", res.Overridden)
	}
	if len(res.Diagnostics) != 0 {
		t.Errorf("Diagnostics = %+v, want none", res.Diagnostics)
	}

	// The caller's store is untouched so the next build patches again.
	if store.Len() != 1 {
		t.Errorf("store.Len() = %d after build, want 1", store.Len())
	}
	again := d.BuildIndex()
	if !res.Collection.Equal(again.Collection) {
		t.Error("second build differs from the first")
	}
}

func TestBuildIndex_UnusedOverrideWarns(t *testing.T) {
	t.Parallel()

	root := testutil.DataRoot(t)
	testutil.WriteDesktopEntry(t, root, "a.desktop", "A", "a")
	stale := filepath.Join(root, "applications", "gone.desktop")
	store := overrides.New(map[string]desktopentry.Command{stale: {Program: "gone"}})

	logger, buf := newBufferLogger()
	res := New(WithSystemDirs(root), WithOverrides(store), WithLogger(logger)).BuildIndex()

	if res.Collection.Len() != 1 {
		t.Errorf("Len() = %d, want 1", res.Collection.Len())
	}
	if len(res.Diagnostics) != 1 {
		t.Fatalf("Diagnostics = %+v, want one", res.Diagnostics)
	}
	d := res.Diagnostics[0]
	if d.Code != CodeOverrideUnused || d.Severity != SeverityWarning || d.Path != stale {
		t.Errorf("diagnostic = %+v", d)
	}
	if !strings.Contains(buf.String(), "WARN") {
		t.Errorf("expected a warning log line, got:\n%s", buf.String())
	}
}

func TestBuildIndex_Idempotent(t *testing.T) {
	t.Parallel()

	sys := testutil.DataRoot(t)
	user := testutil.DataRoot(t)
	testutil.WriteDesktopEntry(t, sys, "a.desktop", "A", "a", "Comment=first")
	testutil.WriteDesktopEntry(t, sys, "b.desktop", "B", "b")
	testutil.WriteDesktopEntry(t, user, "a.desktop", "A", "a2",
		"", "[Desktop Action new]", "Name=New", "Exec=a2 --new")

	first := BuildIndex([]string{sys}, user, nil)
	second := BuildIndex([]string{sys}, user, nil)

	if !first.Collection.Equal(second.Collection) {
		t.Errorf("builds differ:\n%v\n%v", first.Collection.Apps(), second.Collection.Apps())
	}
}

func TestBuildIndex_Exclude(t *testing.T) {
	t.Parallel()

	root := testutil.DataRoot(t)
	testutil.WriteDesktopEntry(t, root, "keep.desktop", "Keep", "keep")
	testutil.WriteDesktopEntry(t, root, "wine/notepad.desktop", "Notepad", "wine notepad")
	testutil.WriteDesktopEntry(t, root, "tool-beta.desktop", "Beta", "beta")

	res := New(WithSystemDirs(root), WithExclude("wine/**", "**/*-beta.desktop")).BuildIndex()

	if got := res.Collection.Names(); !slices.Equal(got, []string{"Keep"}) {
		t.Errorf("Names() = %v, want [Keep]", got)
	}
}

func TestDiscovery_Roots(t *testing.T) {
	t.Parallel()

	d := New(WithRoots(config.Roots{System: []string{"/usr/share", "/usr/local/share"}, User: "/home/u/.local/share"}))

	want := []string{"/usr/share", "/usr/local/share", "/home/u/.local/share"}
	if got := d.Roots(); !slices.Equal(got, want) {
		t.Errorf("Roots() = %v, want %v", got, want)
	}

	if got := New(WithSystemDirs("/a")).Roots(); !slices.Equal(got, []string{"/a"}) {
		t.Errorf("Roots() without user dir = %v", got)
	}
}

func TestStart_HandsOffOnce(t *testing.T) {
	t.Parallel()

	root := testutil.DataRoot(t)
	testutil.WriteDesktopEntry(t, root, "a.desktop", "A", "a")

	p := New(WithSystemDirs(root)).Start()
	<-p.Done()

	polled, ok := p.Poll()
	if !ok {
		t.Fatal("Poll() not ready after Done")
	}
	waited := p.Wait()
	if waited.Collection != polled.Collection {
		t.Error("Wait() and Poll() returned different collections")
	}
	if waited.Collection.Len() != 1 {
		t.Errorf("Len() = %d, want 1", waited.Collection.Len())
	}
}

func TestBuildIndex_SymlinkedApplicationsDir(t *testing.T) {
	t.Parallel()

	target := testutil.DataRoot(t)
	testutil.WriteDesktopEntry(t, target, "a.desktop", "A", "a --orig")

	root := t.TempDir()
	if err := os.Symlink(filepath.Join(target, "applications"), filepath.Join(root, "applications")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	linkedPath := filepath.Join(root, "applications", "a.desktop")
	store := overrides.New(map[string]desktopentry.Command{
		linkedPath: {Program: "a", Args: []string{"--patched"}},
	})

	res := BuildIndex([]string{root}, "", store)

	app, ok := res.Collection.Get("A")
	if !ok {
		t.Fatalf("record A not indexed through symlinked applications dir; diagnostics: %+v", res.Diagnostics)
	}
	if app.SourcePath != linkedPath {
		t.Errorf("SourcePath = %q, want %q", app.SourcePath, linkedPath)
	}
	if got := app.Exec.String(); got != "a --patched" {
		t.Errorf("Exec = %q, want the override keyed by the unresolved path", got)
	}
	if len(res.Diagnostics) != 0 {
		t.Errorf("Diagnostics = %+v, want none", res.Diagnostics)
	}
}

func TestBuildIndex_SameTierLexicalLastWins(t *testing.T) {
	t.Parallel()

	root := testutil.DataRoot(t)
	first := testutil.WriteDesktopEntry(t, root, "a.desktop", "A", "from-a")
	second := testutil.WriteDesktopEntry(t, root, "b.desktop", "A", "from-b")

	res := BuildIndex([]string{root}, "", nil)

	app, ok := res.Collection.Get("A")
	if !ok {
		t.Fatal("record A not found")
	}
	if app.Exec.Program != "from-b" || app.SourcePath != second {
		t.Errorf("winner = %s from %s, want from-b from %s", app.Exec.Program, app.SourcePath, second)
	}
	want := []Replacement{{Name: "A", Previous: first, Winner: second}}
	if !slices.Equal(res.Replacements, want) {
		t.Errorf("Replacements = %+v, want %+v", res.Replacements, want)
	}
}

func TestBuildIndex_ParseDiagnosticCarriesReason(t *testing.T) {
	t.Parallel()

	root := testutil.DataRoot(t)
	testutil.MustWriteFile(t, filepath.Join(root, "applications", "bad.desktop"), "[Desktop Entry]\nName=Bad\n")

	res := BuildIndex([]string{root}, "", nil)

	if len(res.Diagnostics) != 1 {
		t.Fatalf("Diagnostics = %+v, want one", res.Diagnostics)
	}
	d := res.Diagnostics[0]
	if d.Cause == nil || d.Error != d.Cause.Error() || !strings.Contains(d.Error, "has no Exec") {
		t.Errorf("Error = %q, Cause = %v", d.Error, d.Cause)
	}
}
