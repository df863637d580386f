package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	allocatorName string
	chunkSize     int
	verbose       bool
	workloadFile  string
	pushCount     int
	plot          bool

	logger *zap.Logger
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "dynarray",
		Short:         "exercise the growable array and its allocators",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = newLogger(verbose)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&allocatorName, "allocator", "heap", "block allocator: heap, manual or arena")
	rootCmd.PersistentFlags().IntVar(&chunkSize, "chunk-size", 0, "arena chunk size in bytes (0 for default)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every allocation")

	scenarioCmd := &cobra.Command{
		Use:   "scenario",
		Short: "run the built-in growth scenario",
		Args:  cobra.NoArgs,
		RunE:  runScenario,
	}

	replayCmd := &cobra.Command{
		Use:   "replay",
		Short: "replay a YAML workload",
		Args:  cobra.NoArgs,
		RunE:  runReplay,
	}
	replayCmd.Flags().StringVarP(&workloadFile, "file", "f", "", "workload file")
	_ = replayCmd.MarkFlagRequired("file")

	growthCmd := &cobra.Command{
		Use:   "growth",
		Short: "push values and print every capacity change",
		Args:  cobra.NoArgs,
		RunE:  runGrowth,
	}
	growthCmd.Flags().IntVarP(&pushCount, "count", "n", 1000, "number of values to push")
	growthCmd.Flags().BoolVar(&plot, "plot", false, "plot capacity against length")

	rootCmd.AddCommand(scenarioCmd, replayCmd, growthCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}
