package cmd

import (
	"github.com/spf13/cobra"
)

// dashboardCmd represents the dashboard command.
var dashboardCmd = newDashboardCmd()

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the instructor dashboard",
		Long: `Show the instructor view of the submission log: every submission with
its points and elapsed time, plus the most frequently repeated student
translations.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			subs, err := recorder.List(ctx)
			if err != nil {
				return err
			}

			ui.DisplayDashboard(ctx, subs)

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
