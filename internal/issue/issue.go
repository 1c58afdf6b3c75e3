// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"maps"
	"slices"

	"github.com/charmbracelet/glamour"
)

type Id int

const (
	ConfigLoadFailedId Id = iota + 1
	OverridesInvalidId
	NoApplicationsFoundId
	ApplicationNotFoundId
	ActionNotFoundId
	LaunchFailedId
	EntryInvalidId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // specification pages relevant to the issue
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render formats the issue as terminal markdown using the glamour style at
// stylePath ("dark", "light", "notty" or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "\n- " + string(link)
		}
		for _, link := range i.extLinks {
			extraMd += "\n- " + string(link)
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

const (
	desktopEntrySpecLink HttpLink = "https://specifications.freedesktop.org/desktop-entry-spec/latest/"
	execKeyLink          HttpLink = "https://specifications.freedesktop.org/desktop-entry-spec/latest/exec-variables.html"
	basedirSpecLink      HttpLink = "https://specifications.freedesktop.org/basedir-spec/latest/"
)

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the runi configuration file.

## Config file location:
- $XDG_CONFIG_HOME/runi/config.toml (default ~/.config/runi/config.toml)
- or the file passed with --config

## Things you can try:
- Write a fresh default configuration:
~~~
$ runi config init
~~~

- Check the effective settings:
~~~
$ runi config show
~~~`,
		extLinks: []HttpLink{"https://toml.io/en/v1.0.0"},
	}

	overridesInvalidIssue = &Issue{
		id: OverridesInvalidId,
		mdMsg: `
# Invalid override patch!

A [patch."<path>"] table in your config file could not be used.

## Things you can try:
- Every patch needs a non-empty exec string:
~~~toml
[patch."/usr/share/applications/firefox.desktop"]
exec = "firefox --private-window"
~~~
- Quote the descriptor path, it contains dots`,
		docLinks: []HttpLink{execKeyLink},
	}

	noApplicationsFoundIssue = &Issue{
		id: NoApplicationsFoundId,
		mdMsg: `
# No applications found!

No launchable desktop entries were discovered.

## Search locations (lowest precedence first):
1. Each directory in $XDG_DATA_DIRS, suffixed with /applications
2. $XDG_DATA_HOME/applications (default ~/.local/share/applications)

## Things you can try:
- Inspect what was skipped and why:
~~~
$ runi -v list
~~~
- Set index.system_dirs or index.user_dir in your config file`,
		docLinks: []HttpLink{basedirSpecLink},
	}

	applicationNotFoundIssue = &Issue{
		id: ApplicationNotFoundId,
		mdMsg: `
# Application not found!

No indexed application has that name. Names are matched exactly.

## Things you can try:
- Search for it:
~~~
$ runi search <query>
~~~
- Check whether the entry is hidden (Hidden=true or NoDisplay=true)`,
	}

	actionNotFoundIssue = &Issue{
		id: ActionNotFoundId,
		mdMsg: `
# Action not found!

The application does not declare an action with that identifier or name.

## Things you can try:
- List the available actions:
~~~
$ runi show <name>
~~~`,
		docLinks: []HttpLink{desktopEntrySpecLink},
	}

	launchFailedIssue = &Issue{
		id: LaunchFailedId,
		mdMsg: `
# Failed to launch application!

The program named by the entry could not be started.

## Things you can try:
- Preview the resolved command line:
~~~
$ runi launch --dry-run <name>
~~~
- Check that the program is installed and on your PATH
- Fix a broken command with a [patch."<path>"] override`,
		docLinks: []HttpLink{execKeyLink},
	}

	entryInvalidIssue = &Issue{
		id: EntryInvalidId,
		mdMsg: `
# Invalid desktop entry!

The file is not a usable application descriptor.

## Things you can try:
- Make sure it has exactly one [Desktop Entry] section
- Make sure the section has non-empty Name and Exec keys`,
		docLinks: []HttpLink{desktopEntrySpecLink},
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():    configLoadFailedIssue,
		overridesInvalidIssue.Id():    overridesInvalidIssue,
		noApplicationsFoundIssue.Id(): noApplicationsFoundIssue,
		applicationNotFoundIssue.Id(): applicationNotFoundIssue,
		actionNotFoundIssue.Id():      actionNotFoundIssue,
		launchFailedIssue.Id():        launchFailedIssue,
		entryInvalidIssue.Id():        entryInvalidIssue,
	}
)

// Values returns every known issue ordered by Id.
func Values() []*Issue {
	return slices.SortedFunc(maps.Values(issues), func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
}

func Get(id Id) *Issue {
	return issues[id]
}
