package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/harrison/sweep/internal/fileutil"
	"github.com/harrison/sweep/internal/matcher"
	"github.com/harrison/sweep/internal/ruleset"
)

// Executor runs one section's search against a root directory. Results are
// collected in traversal order and never deduplicated.
type Executor struct {
	// Root is the directory every search walks.
	Root string

	// Walk carries the walk options shared by all modes.
	Walk fileutil.WalkOptions

	// MaxFileSize caps content reads in bytes; files larger than this are
	// skipped by content search and dump modes. Zero means no cap.
	MaxFileSize int64
}

// Execute classifies the section's command and runs the matching search.
// The returned error covers root-level traversal failures only; the results
// collected before the failure are still returned. Per-file errors are
// skipped silently.
func (e *Executor) Execute(section ruleset.Section) ([]string, error) {
	switch ClassifyCommand(section.Command) {
	case ModeContentSearch:
		if len(section.Keywords) == 0 {
			return nil, nil
		}
		return e.grepFiles(section.Keywords, section.Extensions)

	case ModeLocateDump:
		patterns := section.Files
		if len(patterns) == 0 {
			patterns = section.Extensions
		}
		return e.findAndDump(patterns)

	case ModeLocate:
		if len(section.Extensions) > 0 {
			return e.findByExtensions(section.Extensions)
		}
		if len(section.Files) > 0 {
			return e.findByNames(section.Files)
		}
		return nil, nil

	default:
		return nil, nil
	}
}

// grepFiles searches file contents line-by-line for the keyword alternation
// and returns "path:lineno:line" entries with 1-based line numbers. When
// extensions is non-empty only matching file names are read.
func (e *Executor) grepFiles(keywords, extensions []string) ([]string, error) {
	lineMatcher, err := matcher.Keywords(keywords)
	if err != nil {
		// Invalid keyword pattern disables the section, not the run
		return nil, err
	}

	results := make([]string, 0)
	walkErr := fileutil.WalkFiles(e.Root, e.Walk, func(path string) {
		if len(extensions) > 0 && !matcher.GlobAny(filepath.Base(path), extensions) {
			return
		}

		content, ok := e.readText(path)
		if !ok {
			return
		}

		lines := strings.Split(content, "\n")
		if len(lines) > 0 && lines[len(lines)-1] == "" {
			// A trailing newline is not an extra line
			lines = lines[:len(lines)-1]
		}
		for i, line := range lines {
			line = strings.TrimRight(line, "\r")
			if lineMatcher.Match(line) {
				results = append(results, fmt.Sprintf("%s:%d:%s", path, i+1, line))
			}
		}
	})

	return results, walkErr
}

// findByExtensions returns each file whose name matches any extension
// pattern, once per file.
func (e *Executor) findByExtensions(extensions []string) ([]string, error) {
	results := make([]string, 0)
	walkErr := fileutil.WalkFiles(e.Root, e.Walk, func(path string) {
		if matcher.GlobAny(filepath.Base(path), extensions) {
			results = append(results, path)
		}
	})
	return results, walkErr
}

// findByNames emits a file once per matching name pattern. A file matching
// several patterns appears once per pattern; this branch does not
// deduplicate.
func (e *Executor) findByNames(files []string) ([]string, error) {
	results := make([]string, 0)
	walkErr := fileutil.WalkFiles(e.Root, e.Walk, func(path string) {
		name := filepath.Base(path)
		for _, pattern := range files {
			if matcher.Glob(name, pattern) {
				results = append(results, path)
			}
		}
	})
	return results, walkErr
}

// findAndDump locates files matching any pattern and emits a "=== path ==="
// header followed by the file's content. Files whose trimmed content is
// empty are omitted.
func (e *Executor) findAndDump(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, nil
	}

	matches := make([]string, 0)
	walkErr := fileutil.WalkFiles(e.Root, e.Walk, func(path string) {
		if matcher.GlobAny(filepath.Base(path), patterns) {
			matches = append(matches, path)
		}
	})

	results := make([]string, 0)
	for _, path := range matches {
		content, ok := e.readText(path)
		if !ok || strings.TrimSpace(content) == "" {
			continue
		}
		results = append(results, fmt.Sprintf("=== %s ===", path))
		results = append(results, content)
	}

	return results, walkErr
}

// readText reads a file as text, replacing invalid UTF-8 rather than
// failing. Returns false for unreadable or size-capped files.
func (e *Executor) readText(path string) (string, bool) {
	if e.MaxFileSize > 0 {
		info, err := os.Stat(path)
		if err != nil || info.Size() > e.MaxFileSize {
			return "", false
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
	}
	return text, true
}
