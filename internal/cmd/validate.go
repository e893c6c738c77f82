package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/harrison/sweep/internal/matcher"
	"github.com/harrison/sweep/internal/ruleset"
	"github.com/harrison/sweep/internal/scanner"
	"github.com/spf13/cobra"
)

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [ruleset]",
		Short: "Validate a rule file",
		Long: `Parse a rule file and check every section for problems:
  - Sections with no command (parsed but never executed)
  - Content searches without keywords
  - Locate or dump rules without name patterns
  - Invalid keyword patterns
  - Malformed glob patterns

Exit code: 0 if clean, 1 if problems found`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := DefaultRulesetPath
			if len(args) == 1 {
				path = args[0]
			}
			return validateRuleset(path, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	return cmd
}

// validateRuleset parses the rule file and reports per-section problems.
func validateRuleset(path string, output io.Writer) error {
	sections, err := ruleset.ParseFile(path)
	if err != nil {
		return err
	}

	problems := 0
	for _, section := range sections {
		for _, problem := range checkSection(section) {
			fmt.Fprintf(output, "[%s] %s\n", section.Name, problem)
			problems++
		}
	}

	if problems > 0 {
		return fmt.Errorf("found %d problem(s) in %d section(s)", problems, len(sections))
	}

	fmt.Fprintf(output, "%s: %d section(s), no problems found\n", path, len(sections))
	return nil
}

// checkSection returns the problems found in one section.
func checkSection(section ruleset.Section) []string {
	var problems []string

	if section.Command == "" {
		problems = append(problems, "no command, section will never execute")
		return problems
	}

	switch scanner.ClassifyCommand(section.Command) {
	case scanner.ModeContentSearch:
		if len(section.Keywords) == 0 {
			problems = append(problems, "content search without keywords")
		} else if _, err := matcher.Keywords(section.Keywords); err != nil {
			problems = append(problems, fmt.Sprintf("invalid keywords: %v", err))
		}
	case scanner.ModeLocateDump:
		if len(section.Files) == 0 && len(section.Extensions) == 0 {
			problems = append(problems, "dump rule without file or extension patterns")
		}
	case scanner.ModeLocate:
		if len(section.Extensions) == 0 && len(section.Files) == 0 {
			problems = append(problems, "locate rule without extension or file patterns")
		}
	case scanner.ModeNone:
		problems = append(problems, "command has no recognized search marker, no search will run")
	}

	for _, pattern := range append(append([]string{}, section.Extensions...), section.Files...) {
		if _, err := filepath.Match(pattern, "probe"); err != nil {
			problems = append(problems, fmt.Sprintf("malformed glob pattern %q", pattern))
		}
	}

	return problems
}
