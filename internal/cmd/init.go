package cmd

import (
	"fmt"
	"os"

	"github.com/harrison/sweep/internal/ruleset"
	"github.com/spf13/cobra"
)

// NewInitCommand creates the init subcommand
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter rule file",
		Long: `Write a starter rule file covering common credential sweeps. The
default path is ` + DefaultRulesetPath + `; an existing file is never
overwritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := DefaultRulesetPath
			if len(args) == 1 {
				path = args[0]
			}
			return writeStarterRuleset(path, cmd)
		},
	}

	return cmd
}

func writeStarterRuleset(path string, cmd *cobra.Command) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("refusing to overwrite existing rule file: %s", path)
	}

	if err := os.WriteFile(path, []byte(ruleset.StarterRuleset), 0644); err != nil {
		return fmt.Errorf("failed to write rule file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Starter rule file written to %s\n", path)
	return nil
}
