// Package cmd wires the sweep CLI: scan execution, ruleset validation and
// bootstrapping, scan history, and report export.
package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for sweep
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Configuration-driven filesystem audit scanner",
		Long: `Sweep recursively scans a directory tree for files and file contents
matching the rules in a plain-text rule file: keyword content searches,
file name globs, and locate-and-dump sweeps for credential material.

Findings are appended to a report file, and each rule's Example line is
rewritten with the concrete command the rule resolved to.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewScanCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewInitCommand())
	cmd.AddCommand(NewHistoryCommand())
	cmd.AddCommand(NewExportCommand())

	return cmd
}
