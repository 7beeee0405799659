package cmd

import (
	"github.com/spf13/cobra"

	"traduco.dev/pkg/traduco/internal/controller"
)

var practiceUserFlag string

// practiceCmd represents the practice command.
var practiceCmd = newPracticeCmd()

func newPracticeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "practice",
		Short: "Start an interactive practice session",
		Long: `Open the interactive student session: enter a source text, an optional
reference translation and your translation, then evaluate in place. Each
evaluation is logged and awarded points like the evaluate command.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return controller.RunPractice(cmd.Context(), workflow, practiceUserFlag, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&practiceUserFlag, userFlagName, "u", defaultUser, "student name for points and the submission log")

	return cmd
}

func init() {
	rootCmd.AddCommand(practiceCmd)
}
