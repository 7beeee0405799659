package cmd

import (
	"github.com/spf13/cobra"

	"traduco.dev/pkg/traduco/internal/adapter"
)

// leaderboardCmd represents the leaderboard command.
var leaderboardCmd = newLeaderboardCmd()

func newLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Show per-user point totals, highest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			// Totals are rebuilt from the submission log so a fresh process
			// sees points awarded by earlier runs against a durable store.
			agg, err := adapter.RebuildAggregator(ctx, recorder)
			if err != nil {
				return err
			}

			ui.DisplayLeaderboard(ctx, agg.Leaderboard())

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(leaderboardCmd)
}
