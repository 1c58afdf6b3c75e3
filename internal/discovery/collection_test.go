// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"slices"
	"testing"

	"github.com/runi-launcher/runi/pkg/desktopentry"
)

func TestNewCollection(t *testing.T) {
	t.Parallel()

	c := NewCollection([]desktopentry.Application{
		{Name: "b", Exec: desktopentry.Command{Program: "b1"}},
		{Name: "a", Exec: desktopentry.Command{Program: "a"}},
		{Name: "b", Exec: desktopentry.Command{Program: "b2"}},
	})

	if got := c.Names(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Names() = %v", got)
	}
	b, ok := c.Get("b")
	if !ok || b.Exec.Program != "b2" {
		t.Errorf("Get(b) = %v, %v; want last record", b, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) should report false")
	}
}

func TestCollection_AppsIsCopy(t *testing.T) {
	t.Parallel()

	c := NewCollection([]desktopentry.Application{{Name: "a"}})
	apps := c.Apps()
	apps[0].Name = "mutated"

	if got := c.Names(); got[0] != "a" {
		t.Errorf("collection mutated through Apps(): %v", got)
	}
}

func TestCollection_Nil(t *testing.T) {
	t.Parallel()

	var c *Collection
	if c.Len() != 0 || c.Apps() != nil || c.Names() != nil {
		t.Error("nil collection should be empty")
	}
	if _, ok := c.Get("a"); ok {
		t.Error("Get on nil collection should report false")
	}
	if !c.Equal(NewCollection(nil)) {
		t.Error("nil collection should equal an empty one")
	}
}

func TestCollection_Equal(t *testing.T) {
	t.Parallel()

	a := NewCollection([]desktopentry.Application{{Name: "x", Exec: desktopentry.Command{Program: "x", Args: []string{"1"}}}})
	b := NewCollection([]desktopentry.Application{{Name: "x", Exec: desktopentry.Command{Program: "x", Args: []string{"1"}}}})
	c := NewCollection([]desktopentry.Application{{Name: "x", Exec: desktopentry.Command{Program: "x", Args: []string{"2"}}}})

	if !a.Equal(b) {
		t.Error("equal collections reported different")
	}
	if a.Equal(c) {
		t.Error("different collections reported equal")
	}
}
