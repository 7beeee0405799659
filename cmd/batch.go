package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"traduco.dev/pkg/traduco/internal/domain"
)

var batchParallelFlag int

// batchCmd represents the batch command.
var batchCmd = newBatchCmd()

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Evaluate a JSON-lines file of submissions",
		Long: `Evaluate every submission in a JSON-lines file, one object per line:

  {"user":"amira","source":"...","student":"...","reference":"..."}

Submissions are evaluated with up to --parallel workers; results keep the
input order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			batch, err := readBatchFile(args[0])
			if err != nil {
				return err
			}

			threads := viper.GetInt(runParallelConfigKey)

			evals, err := workflow.EvaluateBatch(cmd.Context(), batch, threads)
			if err != nil {
				return err
			}

			for i, eval := range evals {
				cmd.Printf("%s: %d points, %d feedback item(s)\n", batch[i].User, eval.Points, len(eval.Feedback))
			}

			cmd.Printf("Evaluated %d submission(s)\n", len(evals))

			return nil
		},
	}

	configureBatchFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

func configureBatchFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&batchParallelFlag, parallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of parallel evaluation workers")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), runParallelConfigKey)
}

func readBatchFile(path string) ([]domain.EvaluateArgs, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open batch file: %w", err)
	}
	defer f.Close()

	var batch []domain.EvaluateArgs

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var args domain.EvaluateArgs
		if err := json.Unmarshal([]byte(text), &args); err != nil {
			return nil, fmt.Errorf("batch file line %d: %w", line, err)
		}

		if args.User == "" {
			args.User = defaultUser
		}

		batch = append(batch, args)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}

	return batch, nil
}
