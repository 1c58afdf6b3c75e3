// SPDX-License-Identifier: MPL-2.0

package overrides

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/runi-launcher/runi/pkg/desktopentry"
)

const sampleConfig = `
[log]
level = "debug"

[patch."/usr/share/applications/signal-desktop.desktop"]
exec = "alacritty -v"

[patch."/usr/share/applications/code.desktop"]
exec = "code --ozone-platform=wayland %F"
`

func TestParse(t *testing.T) {
	t.Parallel()

	s, err := Parse([]byte(sampleConfig), "config.toml")
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}

	cmd, ok := s.Lookup("/usr/share/applications/signal-desktop.desktop")
	if !ok {
		t.Fatal("Lookup() did not find signal-desktop patch")
	}
	want := desktopentry.Command{Program: "alacritty", Args: []string{"-v"}}
	if !cmd.Equal(want) {
		t.Errorf("patch = %+v, want %+v", cmd, want)
	}

	code, _ := s.Lookup("/usr/share/applications/code.desktop")
	if !slices.Equal(code.Args, []string{"--ozone-platform=wayland"}) {
		t.Errorf("field codes should be stripped from patches, got %q", code.Args)
	}
}

func TestParse_NoPatches(t *testing.T) {
	t.Parallel()

	s, err := Parse([]byte("[log]\nlevel = \"info\"\n"), "config.toml")
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantKey string
	}{
		{name: "invalid toml", data: "[patch\nexec = 1"},
		{name: "wrong exec type", data: "[patch.\"/a.desktop\"]\nexec = 42\n"},
		{name: "empty exec", data: "[patch.\"/a.desktop\"]\nexec = \"\"\n", wantKey: "/a.desktop"},
		{name: "missing exec", data: "[patch.\"/b.desktop\"]\nname = \"x\"\n", wantKey: "/b.desktop"},
		{name: "empty key", data: "[patch.\"\"]\nexec = \"x\"\n", wantKey: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.data), "config.toml")
			if !errors.Is(err, ErrFormat) {
				t.Fatalf("Parse() error = %v, want ErrFormat", err)
			}
			var fErr *FormatError
			if !errors.As(err, &fErr) {
				t.Fatalf("error is not *FormatError: %T", err)
			}
			if fErr.Key != tt.wantKey {
				t.Errorf("FormatError.Key = %q, want %q", fErr.Key, tt.wantKey)
			}
		})
	}
}

func TestParse_MalformedExecIsWrapped(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("[patch.\"/a.desktop\"]\nexec = \"  \"\n"), "config.toml")
	if !errors.Is(err, desktopentry.ErrMalformedExec) {
		t.Errorf("Parse() error = %v, want it to wrap ErrMalformedExec", err)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load() error = %v, want fs.ErrNotExist", err)
	}
}

func TestStore_TakeConsumes(t *testing.T) {
	t.Parallel()

	s := New(map[string]desktopentry.Command{
		"/a.desktop": {Program: "a"},
		"/b.desktop": {Program: "b"},
	})

	cmd, ok := s.Take("/a.desktop")
	if !ok || cmd.Program != "a" {
		t.Fatalf("Take() = %+v, %v", cmd, ok)
	}
	if _, ok := s.Take("/a.desktop"); ok {
		t.Error("second Take() of the same path succeeded")
	}
	if _, ok := s.Take("/missing.desktop"); ok {
		t.Error("Take() of an unknown path succeeded")
	}
	if got := s.Remaining(); !slices.Equal(got, []string{"/b.desktop"}) {
		t.Errorf("Remaining() = %q, want [/b.desktop]", got)
	}
}

func TestStore_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	orig := New(map[string]desktopentry.Command{"/a.desktop": {Program: "a"}})
	clone := orig.Clone()

	if _, ok := clone.Take("/a.desktop"); !ok {
		t.Fatal("clone is missing the patch")
	}
	if orig.Len() != 1 {
		t.Errorf("taking from the clone changed the original: Len() = %d", orig.Len())
	}
}

func TestStore_NilSafe(t *testing.T) {
	t.Parallel()

	var s *Store
	if _, ok := s.Take("/x"); ok {
		t.Error("nil Store Take() succeeded")
	}
	if s.Len() != 0 || s.Remaining() != nil {
		t.Error("nil Store should be empty")
	}
	if s.Clone().Len() != 0 {
		t.Error("Clone() of nil Store should be empty")
	}
}

func TestNew_NormalizesKeys(t *testing.T) {
	t.Parallel()

	s := New(map[string]desktopentry.Command{"/usr/share//applications/./x.desktop": {Program: "x"}})
	if _, ok := s.Lookup("/usr/share/applications/x.desktop"); !ok {
		t.Errorf("Remaining() = %q, want cleaned key", s.Remaining())
	}
}
