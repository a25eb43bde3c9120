package show

import (
	"github.com/spf13/cobra"
)

// ShowCmd is the base show command for non-interactive output.
var ShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print analytics and configuration without the TUI",
	Long: `Print analytics and configuration without the TUI.

Subcommands:
  evaluations  - Query evaluation counts for a flag once and print them as JSON
  durations    - List the duration options and the range each resolves to now
  config       - Display the effective configuration

Examples:
  flipt-analytics show evaluations -f checkout -d "4 hours"
  flipt-analytics show durations hour
  flipt-analytics show config --json`,
	// No Run function - requires a subcommand
}

func init() {
	ShowCmd.AddCommand(evaluationsCmd)
	ShowCmd.AddCommand(durationsCmd)
	ShowCmd.AddCommand(configCmd)
}
