package scanner

import (
	"fmt"
	"strings"

	"github.com/harrison/sweep/internal/ruleset"
)

// Placeholder tokens recognized in command templates.
const (
	keywordsToken   = "KEYWORDS"
	extensionsToken = "EXTENSIONS"
	filesToken      = "FILES"
)

// ResolveCommand substitutes a section's placeholder tokens with concrete
// pattern fragments, producing the human-readable command recorded as the
// section's Example. The resolved string is documentation only; it never
// drives matching.
func ResolveCommand(s ruleset.Section) string {
	resolved := s.Command

	if len(s.Keywords) > 0 && strings.Contains(resolved, keywordsToken) {
		resolved = strings.ReplaceAll(resolved, keywordsToken, strings.Join(s.Keywords, "|"))
	}

	if len(s.Extensions) > 0 && strings.Contains(resolved, extensionsToken) {
		var fragment string
		switch {
		case strings.Contains(resolved, contentMarker):
			fragment = includeFlags(s.Extensions)
		case strings.Contains(resolved, locateMarker):
			fragment = nameClause(s.Extensions)
		}
		if fragment != "" {
			resolved = strings.ReplaceAll(resolved, extensionsToken, fragment)
		}
	}

	if len(s.Files) > 0 && strings.Contains(resolved, filesToken) {
		resolved = strings.ReplaceAll(resolved, filesToken, nameClause(s.Files))
	}

	return resolved
}

// includeFlags renders extension patterns as grep --include flags.
func includeFlags(patterns []string) string {
	flags := make([]string, 0, len(patterns))
	for _, p := range patterns {
		flags = append(flags, fmt.Sprintf("--include=%q", p))
	}
	return strings.Join(flags, " ")
}

// nameClause renders patterns as a disjunctive find -name clause:
// \( -name "a" -o -name "b" \)
func nameClause(patterns []string) string {
	names := make([]string, 0, len(patterns))
	for _, p := range patterns {
		names = append(names, fmt.Sprintf("-name %q", p))
	}
	return `\( ` + strings.Join(names, " -o ") + ` \)`
}
