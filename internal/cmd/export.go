package cmd

import (
	"fmt"
	"strings"

	"github.com/harrison/sweep/internal/report"
	"github.com/spf13/cobra"
)

// NewExportCommand creates the export subcommand
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <report>",
		Short: "Render a findings report as HTML",
		Long: `Convert a findings report produced by "sweep scan" into a standalone
HTML page, with one heading per rule section.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			return exportReport(args[0], output, cmd)
		},
	}

	cmd.Flags().StringP("output", "o", "", "HTML output path (default: report path with .html extension)")

	return cmd
}

func exportReport(reportPath, output string, cmd *cobra.Command) error {
	if output == "" {
		output = strings.TrimSuffix(reportPath, ".txt") + ".html"
	}

	if err := report.ExportHTML(reportPath, output); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Report exported to %s\n", output)
	return nil
}
