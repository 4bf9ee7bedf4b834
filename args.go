package run

import (
	"path/filepath"
	"strings"
)

// expandArgs expands wildcard arguments against the filesystem.
//
// An argument containing * or ? is matched against the filesystem namespace
// relative to the current working directory, unless globbing is disabled or
// the argument is quote-encased. A pattern that matches nothing is dropped
// from the argument list entirely, not passed through literally; callers that
// need a literal wildcard should quote-encase it or disable globbing.
//
// Expansion is idempotent on argument lists that contain no wildcards.
func expandArgs(args []string, globbing bool) []string {
	expanded := make([]string, 0, len(args))
	for _, arg := range args {
		if !globbing || !strings.ContainsAny(arg, "*?") || quoteEncased(arg) {
			expanded = append(expanded, arg)
			continue
		}

		matches, err := filepath.Glob(arg)
		if err != nil {
			// Malformed pattern (e.g. an unterminated character class)
			// is treated as a literal argument.
			expanded = append(expanded, arg)
			continue
		}
		expanded = append(expanded, matches...)
	}
	return expanded
}

// quoteEncased reports whether an argument is wrapped in matching single or
// double quotes, signaling that its content is intentionally literal.
func quoteEncased(arg string) bool {
	if len(arg) < 2 {
		return false
	}
	return (strings.HasPrefix(arg, `"`) && strings.HasSuffix(arg, `"`)) ||
		(strings.HasPrefix(arg, `'`) && strings.HasSuffix(arg, `'`))
}
