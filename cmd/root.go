// Package cmd provides the root command and CLI setup for traduco.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"traduco.dev/pkg/traduco/internal/adapter"
	"traduco.dev/pkg/traduco/internal/controller"
	"traduco.dev/pkg/traduco/internal/domain"
)

var recorder adapter.SubmissionRecorder
var aggregator adapter.PointsAggregator
var scorer adapter.Scorer
var glossary *adapter.Glossary
var workflow domain.Workflow
var ui controller.UI

// dsnFlag selects the durable submission store; empty keeps the in-memory log.
var dsnFlag string

// glossaryFlag points at the YAML idiom glossary.
var glossaryFlag string

// verboseFlag switches the file logger to debug level.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
}

// buildDependencies wires the adapters and the workflow from the current
// configuration. It runs after flag parsing so --dsn and --glossary take
// effect. A failing durable store degrades to the in-memory log so a broken
// DSN never blocks an evaluation.
func buildDependencies(ctx context.Context) {
	recorder = openRecorder(ctx)
	glossary = openGlossary()
	scorer = adapter.NewMultiScorer(adapter.LexicalScorer{})
	aggregator = adapter.NewMemoryAggregator()
	workflow = domain.NewWorkflow(scorer, recorder, aggregator, glossary)
}

func openRecorder(ctx context.Context) adapter.SubmissionRecorder {
	dsn := viper.GetString(storageDSNKey)
	if dsn == "" {
		return adapter.NewMemoryRecorder()
	}

	pg, err := adapter.OpenPostgresRecorder(ctx, dsn)
	if err != nil {
		slog.Warn("submission store unavailable, falling back to memory", "error", err)
		return adapter.NewMemoryRecorder()
	}

	return pg
}

func openGlossary() *adapter.Glossary {
	path := viper.GetString(glossaryPathKey)
	if path == "" {
		return nil
	}

	g, err := adapter.LoadGlossary(path)
	if err != nil {
		slog.Warn("glossary unavailable", "path", path, "error", err)
		return nil
	}

	return g
}

const rootLongDescription = `Traduco is an adaptive translation practice and post-editing tool.
Students submit a translation; traduco aligns it against a reference
translation, highlights unchanged, substituted, inserted and missing words,
emits structured feedback, scores the attempt with lexical quality metrics,
awards points and logs the submission for the instructor dashboard.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "traduco",
		Short: "Adaptive translation practice and post-editing tool",
		Long:  rootLongDescription,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			configureLogger("", verboseFlag)
			buildDependencies(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVar(&dsnFlag, dsnFlagName, viper.GetString(storageDSNKey),
			"Postgres DSN for the submission log (empty: keep submissions in memory)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(dsnFlagName), storageDSNKey)

	cmd.PersistentFlags().
		StringVarP(&glossaryFlag, glossaryFlagName, "g", viper.GetString(glossaryPathKey),
			"YAML glossary of idiom hints")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(glossaryFlagName), glossaryPathKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "enable debug logging")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
