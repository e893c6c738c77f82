package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harrison/sweep/internal/config"
	"github.com/harrison/sweep/internal/fileutil"
	"github.com/harrison/sweep/internal/history"
	"github.com/harrison/sweep/internal/report"
	"github.com/harrison/sweep/internal/ruleset"
	"github.com/harrison/sweep/internal/scanner"
	"github.com/spf13/cobra"
)

// DefaultRulesetPath is the rule file used when --config is not given.
const DefaultRulesetPath = "./sweep.rules"

// NewScanCommand creates the scan command
func NewScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run every rule section against a directory tree",
		Long: `Execute each section of the rule file, in file order, against the
search root. Content searches, file locates and content dumps stream into
the report file as they complete.

Application settings are loaded from .sweep/config.yaml if present.

Examples:
  # Scan /var/www with the default rule file (quiet)
  sweep scan -r /var/www

  # Verbose mode shows resolved commands and per-section metadata
  sweep scan -r /var/www -v

  # Specify everything
  sweep scan -c audit.rules -r /home/user -o results/findings.txt`,
		Args: cobra.NoArgs,
		RunE: runScan,
	}

	cmd.Flags().StringP("config", "c", DefaultRulesetPath, "Path to the rule file")
	cmd.Flags().StringP("root", "r", "", "Root directory to search from (required)")
	cmd.Flags().StringP("output", "o", "", "Report file path (default findings_YYYYMMDD_HHMMSS.txt)")
	cmd.Flags().BoolP("verbose", "v", false, "Show commands being run and metadata")
	cmd.MarkFlagRequired("root")

	return cmd
}

// runScan implements the scan command logic
func runScan(cmd *cobra.Command, args []string) error {
	rulesetPath, _ := cmd.Flags().GetString("config")
	root, _ := cmd.Flags().GetString("root")
	output, _ := cmd.Flags().GetString("output")
	verboseFlag, _ := cmd.Flags().GetBool("verbose")

	// Preconditions: root must be an existing directory, the rule file
	// must exist. Nothing runs otherwise.
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("search root directory does not exist: %s", root)
	}
	if !info.IsDir() {
		return fmt.Errorf("search root is not a directory: %s", root)
	}
	if _, err := os.Stat(rulesetPath); err != nil {
		return fmt.Errorf("ruleset not found: %s (run 'sweep init' to create one)", rulesetPath)
	}

	settings, err := config.LoadConfigFromDir(".")
	if err != nil {
		return err
	}
	verbose := verboseFlag || settings.Verbose

	if output == "" {
		output = fmt.Sprintf("findings_%s.txt", time.Now().Format("20060102_150405"))
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	sections, err := ruleset.ParseFile(rulesetPath)
	if err != nil {
		return err
	}

	sink, err := report.Open(output, cmd.OutOrStdout(), verbose)
	if err != nil {
		return err
	}
	defer sink.Close()

	runner := &scanner.Runner{
		Root:        root,
		RulesetPath: rulesetPath,
		Executor: &scanner.Executor{
			Root:        root,
			Walk:        fileutil.WalkOptions{ExcludeDirs: settings.ExcludeDirs},
			MaxFileSize: settings.MaxFileSize,
		},
		Sink: sink,
	}

	summary, err := runner.Run(sections)
	if err != nil {
		return err
	}

	if settings.History.Enabled {
		recordHistory(sink, settings.History.DBPath, root, rulesetPath, output, summary)
	}

	sink.Summary("Results saved to: %s", output)
	return nil
}

// recordHistory persists the run summary. History is best-effort: failures
// are shown in verbose runs and otherwise ignored.
func recordHistory(sink *report.Sink, dbPath, root, rulesetPath, output string, summary *scanner.Summary) {
	store, err := history.NewStore(dbPath)
	if err != nil {
		sink.Noticef("History unavailable: %v", err)
		return
	}
	defer store.Close()

	run := &history.Run{
		Root:      root,
		Ruleset:   rulesetPath,
		Report:    output,
		Started:   summary.Started,
		Completed: summary.Completed,
	}
	for _, outcome := range summary.Sections {
		run.Sections = append(run.Sections, history.SectionResult{
			Section: outcome.Name,
			Mode:    outcome.Mode.String(),
			Matches: outcome.Matches,
		})
	}

	if err := store.RecordRun(run); err != nil {
		sink.Noticef("Failed to record scan history: %v", err)
	}
}
