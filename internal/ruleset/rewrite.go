package ruleset

import (
	"fmt"
	"os"
	"strings"

	"github.com/harrison/sweep/internal/filelock"
)

// RewriteExamples rewrites the rule file at path, replacing the Example:
// line of every section that has an entry in examples with the resolved
// command from that run. All other lines pass through verbatim. The write
// is atomic and lock-guarded, so a reader never observes a partial file.
//
// Callers run this exactly once, after a scan completes; an interrupted
// scan leaves the rule file untouched.
func RewriteExamples(path string, examples map[string]string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read ruleset: %w", err)
	}

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	rewritten := make([]string, 0, len(lines))
	currentSection := ""

	for _, raw := range lines {
		line := strings.TrimRight(raw, " \t\r")

		if name, ok := sectionHeader(line); ok {
			currentSection = name
			rewritten = append(rewritten, line)
			continue
		}

		if strings.HasPrefix(line, examplePrefix) || line == strings.TrimSpace(examplePrefix) {
			if resolved, ok := examples[currentSection]; ok {
				rewritten = append(rewritten, examplePrefix+resolved)
				continue
			}
		}

		rewritten = append(rewritten, line)
	}

	content := strings.Join(rewritten, "\n") + "\n"
	if err := filelock.LockAndWrite(path, []byte(content)); err != nil {
		return fmt.Errorf("failed to rewrite ruleset: %w", err)
	}

	return nil
}
