package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"traduco.dev/pkg/traduco/internal/domain"
)

var evaluateUserFlag string
var evaluateSourceFlag string
var evaluateStudentFlag string
var evaluateReferenceFlag string

// evaluateCmd represents the evaluate command.
var evaluateCmd = newEvaluateCmd()

func newEvaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate a student translation against a reference",
		Long: `Align a student translation against a reference translation, print the
annotated diff, structured feedback, lexical quality scores and the point
award, and append the submission to the log.

Text flags accept either a literal string or @path to read a file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start := time.Now()

			student, err := resolveTextArg(evaluateStudentFlag)
			if err != nil {
				return fmt.Errorf("student text: %w", err)
			}

			reference, err := resolveTextArg(evaluateReferenceFlag)
			if err != nil {
				return fmt.Errorf("reference text: %w", err)
			}

			source, err := resolveTextArg(evaluateSourceFlag)
			if err != nil {
				return fmt.Errorf("source text: %w", err)
			}

			ctx := cmd.Context()

			eval, err := workflow.Evaluate(ctx, domain.EvaluateArgs{
				User:      evaluateUserFlag,
				Source:    source,
				Student:   student,
				Reference: reference,
				Elapsed:   time.Since(start),
			})
			if err != nil {
				return err
			}

			ui.DisplayAnnotated(ctx, eval.Segments)
			ui.DisplayFeedback(ctx, eval.Feedback)
			ui.DisplayScores(ctx, eval.Scores)
			ui.DisplayPoints(ctx, eval.Points)

			return nil
		},
	}

	configureEvaluateFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
}

func configureEvaluateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&evaluateUserFlag, userFlagName, "u", defaultUser, "student name for points and the submission log")
	cmd.Flags().StringVar(&evaluateSourceFlag, "source", "", "source text being translated (literal or @file)")
	cmd.Flags().StringVarP(&evaluateStudentFlag, "student", "s", "", "student translation (literal or @file)")
	cmd.Flags().StringVarP(&evaluateReferenceFlag, "reference", "r", "", "reference translation (literal or @file; optional)")
	_ = cmd.MarkFlagRequired("student")
}

// resolveTextArg returns the flag value, reading it from a file when the
// value starts with '@'.
func resolveTextArg(value string) (string, error) {
	if !strings.HasPrefix(value, "@") {
		return value, nil
	}

	raw, err := os.ReadFile(strings.TrimPrefix(value, "@"))
	if err != nil {
		return "", err
	}

	return string(raw), nil
}
