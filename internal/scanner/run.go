package scanner

import (
	"fmt"
	"strings"
	"time"

	"github.com/harrison/sweep/internal/report"
	"github.com/harrison/sweep/internal/ruleset"
)

// SectionOutcome summarizes one executed section.
type SectionOutcome struct {
	Name    string
	Mode    Mode
	Matches int
}

// Summary describes a completed run, for console output and the history
// store.
type Summary struct {
	Started   time.Time
	Completed time.Time
	Sections  []SectionOutcome

	// Examples maps section name to its resolved command. Owned by the
	// run; flushed into the rule file exactly once at the end.
	Examples map[string]string
}

// TotalMatches returns the match count across all sections.
func (s *Summary) TotalMatches() int {
	total := 0
	for _, outcome := range s.Sections {
		total += outcome.Matches
	}
	return total
}

// Runner executes all sections of a rule file in order against one root,
// streaming output to the report sink and rewriting the rule file's Example
// lines after the full run completes.
type Runner struct {
	Root        string
	RulesetPath string
	Executor    *Executor
	Sink        *report.Sink
}

// Run executes every section with a non-empty command, strictly in file
// order. The rule file is rewritten only after all sections complete, so an
// interrupted run leaves it byte-identical.
func (r *Runner) Run(sections []ruleset.Section) (*Summary, error) {
	summary := &Summary{
		Started:  time.Now(),
		Examples: make(map[string]string),
	}

	r.Sink.Header(r.Root, r.RulesetPath)

	for _, section := range sections {
		if section.Command == "" {
			continue
		}
		outcome := r.runSection(section, summary.Examples)
		summary.Sections = append(summary.Sections, outcome)
	}

	r.Sink.Footer()
	summary.Completed = time.Now()

	if err := ruleset.RewriteExamples(r.RulesetPath, summary.Examples); err != nil {
		return summary, fmt.Errorf("failed to update ruleset examples: %w", err)
	}
	r.Sink.Noticef("Config file updated with actual commands")

	return summary, nil
}

// runSection executes one section and writes its block to the sink.
func (r *Runner) runSection(section ruleset.Section, examples map[string]string) SectionOutcome {
	r.Sink.Section(section.Name)

	resolved := ResolveCommand(section)
	examples[section.Name] = resolved

	r.Sink.Verbosef("Command template: %s", section.Command)
	if len(section.Keywords) > 0 {
		r.Sink.Verbosef("Keywords: %s", strings.Join(section.Keywords, ", "))
	}
	if len(section.Extensions) > 0 {
		r.Sink.Verbosef("Extensions: %s", strings.Join(section.Extensions, ", "))
	}
	if len(section.Files) > 0 {
		r.Sink.Verbosef("Files: %s", strings.Join(section.Files, ", "))
	}

	r.Sink.Verbosef("\n> Running search...")

	results, err := r.Executor.Execute(section)
	if err != nil {
		// Partial results still count; the failure itself is only
		// surfaced in verbose runs
		r.Sink.Verbosef("Error during search: %v", err)
	}

	if len(results) > 0 {
		for _, result := range results {
			r.Sink.Logf("%s", result)
		}
	} else {
		r.Sink.Verbosef("No matches found")
	}

	return SectionOutcome{
		Name:    section.Name,
		Mode:    ClassifyCommand(section.Command),
		Matches: len(results),
	}
}
