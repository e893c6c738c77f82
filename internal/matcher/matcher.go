// Package matcher provides the two matching primitives used by scan rules:
// case-insensitive shell globs against file names, and case-insensitive
// keyword alternation against lines of text.
package matcher

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Glob reports whether a file's base name matches a shell-style glob
// pattern (*, ?, [...]). Matching is case-insensitive and applies to the
// name only, never the full path.
func Glob(name, pattern string) bool {
	matched, err := filepath.Match(strings.ToLower(pattern), strings.ToLower(name))
	if err != nil {
		// Malformed pattern, treat as non-matching
		return false
	}
	return matched
}

// GlobAny reports whether any of the patterns matches name.
func GlobAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if Glob(name, pattern) {
			return true
		}
	}
	return false
}

// LineMatcher matches lines of text against a compiled keyword alternation.
type LineMatcher struct {
	re *regexp.Regexp
}

// Keywords compiles an ordered keyword list into a case-insensitive
// alternation (kw1|kw2|...). Keywords are regex fragments, so a keyword may
// itself contain regex syntax. Returns an error for an empty list or an
// invalid resulting expression.
func Keywords(keywords []string) (*LineMatcher, error) {
	if len(keywords) == 0 {
		return nil, fmt.Errorf("keyword list is empty")
	}

	re, err := regexp.Compile("(?i)" + strings.Join(keywords, "|"))
	if err != nil {
		return nil, fmt.Errorf("invalid keyword pattern: %w", err)
	}

	return &LineMatcher{re: re}, nil
}

// Match reports whether the line contains a match for any keyword.
// This is a substring search, not a full-line match.
func (m *LineMatcher) Match(line string) bool {
	return m.re.MatchString(line)
}

// Pattern returns the alternation source without the case-insensitivity
// prefix, for display in resolved commands.
func (m *LineMatcher) Pattern() string {
	return strings.TrimPrefix(m.re.String(), "(?i)")
}
