// Package ruleset parses and rewrites sweep rule files. A rule file is a
// plain-text list of named sections, each describing one search:
//
//	[Section Name]
//	Command: grep -rniE "KEYWORDS" . EXTENSIONS
//	Example: (regenerated after every run, ignored on read)
//	Keywords: password, secret
//	Extensions: *.conf, *.env
//	Files: id_rsa, .bash_history
//
// Comment lines start with #. Unknown keys inside a section are ignored so
// old binaries keep working against newer rule files.
package ruleset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Key prefixes recognized inside a section. Matching is by literal prefix,
// including the trailing space.
const (
	commandPrefix    = "Command: "
	examplePrefix    = "Example: "
	keywordsPrefix   = "Keywords: "
	extensionsPrefix = "Extensions: "
	filesPrefix      = "Files: "
)

// Section is one named search rule. A section with an empty Command parses
// fine but is never executed.
type Section struct {
	// Name is the display label from the [Name] header. Uniqueness is not
	// enforced; a duplicate name overwrites the earlier one in lookups.
	Name string

	// Command is the template whose markers select the search mode and
	// whose KEYWORDS/EXTENSIONS/FILES tokens are substituted into the
	// resolved example.
	Command string

	// Keywords are case-insensitive content-search terms, in file order.
	Keywords []string

	// Extensions are glob patterns matched against file names.
	Extensions []string

	// Files are glob patterns for exact-name style matches.
	Files []string
}

// Parse reads rule-file text and returns its sections in file order.
// Malformed or unrecognized lines never change the section count.
func Parse(r io.Reader) ([]Section, error) {
	sections := make([]Section, 0)
	var current *Section

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")

		// Skip blanks and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if name, ok := sectionHeader(line); ok {
			if current != nil {
				sections = append(sections, *current)
			}
			current = &Section{Name: name}
			continue
		}

		if current == nil {
			// Content before the first header has nowhere to go
			continue
		}

		switch {
		case strings.HasPrefix(line, commandPrefix):
			current.Command = strings.TrimSpace(line[len(commandPrefix):])
		case strings.HasPrefix(line, examplePrefix):
			// Regenerated after each run, never read back
		case strings.HasPrefix(line, keywordsPrefix):
			current.Keywords = parseList(line[len(keywordsPrefix):])
		case strings.HasPrefix(line, extensionsPrefix):
			current.Extensions = parseList(line[len(extensionsPrefix):])
		case strings.HasPrefix(line, filesPrefix):
			current.Files = parseList(line[len(filesPrefix):])
		default:
			// Unknown key, ignored for forward compatibility
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ruleset: %w", err)
	}

	if current != nil {
		sections = append(sections, *current)
	}

	return sections, nil
}

// ParseFile parses the rule file at path.
func ParseFile(path string) ([]Section, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ruleset: %w", err)
	}
	defer f.Close()

	sections, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ruleset %s: %w", path, err)
	}
	return sections, nil
}

// sectionHeader reports whether line is a [Name] header and returns the name.
func sectionHeader(line string) (string, bool) {
	if len(line) >= 2 && strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
		return line[1 : len(line)-1], true
	}
	return "", false
}

// parseList splits a comma-separated value, trimming whitespace around each
// element. Empty input yields an empty list.
func parseList(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}
