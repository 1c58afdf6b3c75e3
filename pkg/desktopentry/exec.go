// SPDX-License-Identifier: MPL-2.0

package desktopentry

import "strings"

const (
	// escapedBackslash is the doubled backslash produced by Desktop Entry value
	// escaping; it collapses to a single backslash.
	escapedBackslash = `\\`

	// continuationMarker ends a token that continues into the next one. After
	// collapsing, a raw trailing `\\` is a single `\`.
	continuationMarker = `\`
)

// fieldCodes are the runtime substitution markers removed from arguments.
// No file or URL context is supplied at launch, so they have nothing to expand to.
var fieldCodes = map[string]struct{}{
	"%f": {}, "%F": {},
	"%u": {}, "%U": {},
	"%d": {}, "%D": {},
	"%n": {}, "%N": {},
	"%i": {}, "%c": {},
	"%v": {}, "%m": {},
}

// ParseExec tokenizes a raw Exec= value into a Command.
//
// The grammar is intentionally small: doubled backslashes collapse to one,
// double quotes are removed outright (no nested quoting), fields split on any
// whitespace run, and a token still ending in a backslash after collapsing
// (raw `\\`) is joined with the following tokens by single spaces. A
// continuation still open at end of input is dropped. Field codes such as %f
// and %U are removed from the arguments.
func ParseExec(raw string) (Command, error) {
	normalized := strings.ReplaceAll(raw, escapedBackslash, `\`)
	normalized = strings.ReplaceAll(normalized, `"`, "")

	tokens := splitTokens(normalized)
	if len(tokens) == 0 {
		return Command{}, &MalformedExecError{Value: raw}
	}

	cmd := Command{Program: tokens[0]}
	for _, tok := range tokens[1:] {
		if IsFieldCode(tok) {
			continue
		}
		cmd.Args = append(cmd.Args, tok)
	}

	return cmd, nil
}

// IsFieldCode reports whether tok is one of the Exec field-code placeholders.
func IsFieldCode(tok string) bool {
	_, ok := fieldCodes[tok]
	return ok
}

func splitTokens(s string) []string {
	var tokens []string
	var run []string

	for _, field := range strings.Fields(s) {
		if head, ok := strings.CutSuffix(field, continuationMarker); ok {
			run = append(run, head)
			continue
		}

		if len(run) > 0 {
			run = append(run, field)
			tokens = append(tokens, strings.Join(run, " "))
			run = run[:0]
			continue
		}

		tokens = append(tokens, field)
	}

	// Anything left in run is an unterminated continuation and is discarded.
	return tokens
}
