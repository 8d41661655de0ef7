package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/BoyarinO/dataroot2/pkg/config"
)

var (
	cfgFile string
	verbose bool
)

// newRootCmd represents the base command. Without a subcommand it runs a
// sweep and accepts every flag of run.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "knnsweep",
		Short: "Evaluate a brute-force KNN classifier over a range of k",
		Long: `knnsweep splits a labeled dataset into train and test parts, builds the
test-by-train Euclidean distance matrix once and reports accuracy, timing and
misclassified points for every k of the sweep.

Without --input a two-class Gaussian dataset is generated.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		// If no command is specified, default to run
		RunE: runE,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	addRunFlags(root.Flags())

	root.AddCommand(newRunCmd())
	root.AddCommand(newRunsCmd())
	return root
}

// loadConfig reads --config when given, otherwise starts from the defaults.
func loadConfig() (config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.Load(cfgFile)
}

func newLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
