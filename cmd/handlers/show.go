package handlers

import (
	"fmt"
	"path/filepath"

	"cadence/internal/render"
	"cadence/internal/tui"

	"github.com/spf13/cobra"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	var (
		all         bool
		days        int
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Preview an exported content plan",
		Long: `Show the days of a plan previously exported as CSV or JSON.

Examples:
  # Show the first 3 days
  cadence show content_calendar.csv

  # Show every day
  cadence show plans/startup.json --all

  # Browse the plan interactively
  cadence show content_calendar.csv -i`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := render.Load(args[0])
			if err != nil {
				return err
			}

			if interactive {
				return tui.Run(filepath.Base(args[0]), plan)
			}

			n := days
			if all {
				n = len(plan)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d days)\n", labelStyle.Render("📄 Plan:"), args[0], len(plan))
			printPreview(cmd.OutOrStdout(), plan, n)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Show every day")
	cmd.Flags().IntVarP(&days, "days", "n", previewDays, "Number of days to show")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Browse the plan in a terminal UI")

	return cmd
}
