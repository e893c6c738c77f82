package cmd

import (
	"fmt"
	"io"

	"github.com/harrison/sweep/internal/config"
	"github.com/harrison/sweep/internal/history"
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history subcommand
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent scans",
		Long: `List recent scans recorded in the history database, newest first.
The database location comes from .sweep/config.yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			details, _ := cmd.Flags().GetBool("details")
			return showHistory(limit, details, cmd.OutOrStdout())
		},
	}

	cmd.Flags().Int("limit", 10, "Maximum number of runs to list")
	cmd.Flags().Bool("details", false, "Show per-section match counts")

	return cmd
}

func showHistory(limit int, details bool, output io.Writer) error {
	settings, err := config.LoadConfigFromDir(".")
	if err != nil {
		return err
	}
	if !settings.History.Enabled {
		return fmt.Errorf("history is disabled in %s", config.DefaultConfigPath)
	}

	store, err := history.NewStore(settings.History.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.RecentRuns(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(output, "No scans recorded yet")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(output, "%s  %s  root=%s  matches=%d  report=%s\n",
			run.Started.Format("2006-01-02 15:04:05"), run.ID[:8], run.Root, run.Matches, run.Report)

		if !details {
			continue
		}
		results, err := store.SectionResults(run.ID)
		if err != nil {
			return err
		}
		for _, sr := range results {
			fmt.Fprintf(output, "    %-16s %-40s %d\n", sr.Mode, sr.Section, sr.Matches)
		}
	}

	return nil
}
