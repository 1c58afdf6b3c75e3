// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"maps"
	"slices"
	"strings"

	"github.com/runi-launcher/runi/pkg/desktopentry"
)

// Collection is an immutable index of applications sorted ascending by name
// using byte-wise comparison. Names are unique.
type Collection struct {
	apps []desktopentry.Application
}

// newCollection sorts the working set into a Collection.
func newCollection(set map[string]desktopentry.Application) *Collection {
	apps := make([]desktopentry.Application, 0, len(set))
	for _, name := range slices.Sorted(maps.Keys(set)) {
		apps = append(apps, set[name])
	}
	return &Collection{apps: apps}
}

// NewCollection builds a Collection from apps. When several records share a
// name, the last one wins.
func NewCollection(apps []desktopentry.Application) *Collection {
	set := make(map[string]desktopentry.Application, len(apps))
	for _, app := range apps {
		set[app.Name] = app
	}
	return newCollection(set)
}

// Apps returns the records in name order. The slice is a copy.
func (c *Collection) Apps() []desktopentry.Application {
	if c == nil {
		return nil
	}
	return slices.Clone(c.apps)
}

// Len returns the number of records.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.apps)
}

// Get returns the record named name.
func (c *Collection) Get(name string) (desktopentry.Application, bool) {
	if c == nil {
		return desktopentry.Application{}, false
	}
	i, found := slices.BinarySearchFunc(c.apps, name, func(app desktopentry.Application, target string) int {
		return strings.Compare(app.Name, target)
	})
	if !found {
		return desktopentry.Application{}, false
	}
	return c.apps[i], true
}

// Names returns the record names in order.
func (c *Collection) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, len(c.apps))
	for i, app := range c.apps {
		names[i] = app.Name
	}
	return names
}

// Equal reports whether both collections hold equal records in the same order.
func (c *Collection) Equal(other *Collection) bool {
	return slices.EqualFunc(c.Apps(), other.Apps(), desktopentry.Application.Equal)
}
