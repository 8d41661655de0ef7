package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/BoyarinO/dataroot2/pkg/config"
	"github.com/BoyarinO/dataroot2/pkg/data"
	"github.com/BoyarinO/dataroot2/pkg/dataprep"
	"github.com/BoyarinO/dataroot2/pkg/loader"
	"github.com/BoyarinO/dataroot2/pkg/pipeline"
	"github.com/BoyarinO/dataroot2/pkg/report"
	"github.com/BoyarinO/dataroot2/pkg/stats"
	"github.com/BoyarinO/dataroot2/pkg/store"
	"github.com/BoyarinO/dataroot2/pkg/sweep"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a k sweep",
		Args:  cobra.NoArgs,
		RunE:  runE,
	}
	addRunFlags(cmd.Flags())
	return cmd
}

// runE is shared by the run command and the bare root command.
func runE(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyFlags(&cfg, cmd.Flags()); err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	_, err = runSweep(cmd.Context(), cfg, logger, cmd.OutOrStdout())
	return err
}

// addRunFlags registers the sweep flags on f. Defaults shown in help come
// from config.Default; only flags set on the command line override the config file.
func addRunFlags(f *pflag.FlagSet) {
	def := config.Default()

	f.Int("kmin", def.Sweep.KMin, "first k of the sweep (inclusive)")
	f.Int("kmax", def.Sweep.KMax, "end of the sweep (exclusive)")
	f.Int("kstep", def.Sweep.KStep, "increment between successive k")
	f.Int("workers", def.Sweep.Workers, "goroutines for the distance matrix (0 = GOMAXPROCS)")
	f.String("input", "", "labeled CSV file (empty = synthetic Gaussian clusters)")
	f.Int("label-column", def.Data.LabelColumn, "0-based label column, negative counts from the end")
	f.Bool("header", false, "skip the first CSV record")
	f.Int("observations", def.Data.Observations, "synthetic points per class")
	f.Float64("split", def.Data.SplitRatio, "fraction of points used for training")
	f.Uint64("seed", 0, "random seed (0 = time based)")
	f.Bool("standardize", false, "scale features to zero mean and unit variance using training statistics")
	f.Bool("allow-missing", false, "read empty, NA and NaN feature fields as missing and impute them")
	f.String("impute", def.Data.Impute, "imputation statistic for missing features: mean or median")
	f.IntSlice("columns", nil, "feature columns to keep, after the label is removed (empty = all)")
	f.Int("components", 0, "reduce features to this many principal components (0 = keep all)")
	f.String("plot-dir", "", "directory for PNG plots (empty = no plots)")
	f.String("csv", "", "write per-k results as CSV to this file")
	f.String("db", "", "SQLite file recording the run (empty = not stored)")
	f.Bool("table", def.Output.Table, "print the result table")
}

// applyFlags copies every flag set on the command line over cfg and validates the result.
func applyFlags(cfg *config.Config, f *pflag.FlagSet) error {
	var err error
	set := func(name string, apply func() error) {
		if err == nil && f.Changed(name) {
			err = apply()
		}
	}
	set("kmin", func() (e error) { cfg.Sweep.KMin, e = f.GetInt("kmin"); return })
	set("kmax", func() (e error) { cfg.Sweep.KMax, e = f.GetInt("kmax"); return })
	set("kstep", func() (e error) { cfg.Sweep.KStep, e = f.GetInt("kstep"); return })
	set("workers", func() (e error) { cfg.Sweep.Workers, e = f.GetInt("workers"); return })
	set("input", func() (e error) { cfg.Data.Input, e = f.GetString("input"); return })
	set("label-column", func() (e error) { cfg.Data.LabelColumn, e = f.GetInt("label-column"); return })
	set("header", func() (e error) { cfg.Data.Header, e = f.GetBool("header"); return })
	set("observations", func() (e error) { cfg.Data.Observations, e = f.GetInt("observations"); return })
	set("split", func() (e error) { cfg.Data.SplitRatio, e = f.GetFloat64("split"); return })
	set("seed", func() (e error) { cfg.Data.Seed, e = f.GetUint64("seed"); return })
	set("standardize", func() (e error) { cfg.Data.Standardize, e = f.GetBool("standardize"); return })
	set("allow-missing", func() (e error) { cfg.Data.AllowMissing, e = f.GetBool("allow-missing"); return })
	set("impute", func() (e error) { cfg.Data.Impute, e = f.GetString("impute"); return })
	set("columns", func() (e error) { cfg.Data.Columns, e = f.GetIntSlice("columns"); return })
	set("components", func() (e error) { cfg.Data.Components, e = f.GetInt("components"); return })
	set("plot-dir", func() (e error) { cfg.Output.PlotDir, e = f.GetString("plot-dir"); return })
	set("csv", func() (e error) { cfg.Output.CSV, e = f.GetString("csv"); return })
	set("db", func() (e error) { cfg.Output.ResultsDB, e = f.GetString("db"); return })
	set("table", func() (e error) { cfg.Output.Table, e = f.GetBool("table"); return })
	if err != nil {
		return err
	}
	return cfg.Validate()
}

// runSweep loads or generates the dataset, splits it, evaluates every k and
// hands the results to the configured sinks.
func runSweep(ctx context.Context, cfg config.Config, logger *slog.Logger, out io.Writer) ([]sweep.Result, error) {
	ks, err := cfg.KValues()
	if err != nil {
		return nil, err
	}

	seed := cfg.Data.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	logger.Debug("random source", "seed", seed)

	ds, source, err := loadDataset(ctx, cfg.Data, rng)
	if err != nil {
		return nil, err
	}
	logger.Info("dataset loaded", "source", source, "points", ds.Len(), "dim", ds.Dim(), "classes", len(ds.Classes()))

	train, test, err := loader.TrainTestSplit(ds, cfg.Data.SplitRatio, rng)
	if err != nil {
		return nil, err
	}
	prep, err := preprocessing(cfg.Data)
	if err != nil {
		return nil, err
	}
	if prep.Len() > 0 {
		if train, test, err = prep.Apply(train, test); err != nil {
			return nil, err
		}
		logger.Debug("features preprocessed", "steps", prep.Len(), "dim", train.Dim())
	}

	ev := sweep.NewEvaluator(sweep.WithLogger(logger), sweep.WithWorkers(cfg.Sweep.Workers))
	results, err := ev.Evaluate(ctx, train, test, ks)
	if err != nil {
		return nil, err
	}

	if cfg.Output.Table {
		if err := report.WriteSummary(out, results); err != nil {
			return nil, err
		}
	}
	if cfg.Output.CSV != "" {
		if err := writeCSVFile(cfg.Output.CSV, results); err != nil {
			return nil, err
		}
		logger.Info("results written", "path", cfg.Output.CSV)
	}
	if cfg.Output.PlotDir != "" {
		all := data.Dataset{X: append(append([][]float64{}, train.X...), test.X...), Y: append(append([]int{}, train.Y...), test.Y...)}
		if err := writePlots(cfg.Output.PlotDir, all, test, results); err != nil {
			return nil, err
		}
		logger.Info("plots written", "dir", cfg.Output.PlotDir)
	}
	if cfg.Output.ResultsDB != "" {
		id, err := saveRun(ctx, cfg, source, train, test, results)
		if err != nil {
			return nil, err
		}
		logger.Info("run stored", "id", id, "db", cfg.Output.ResultsDB)
	}
	return results, nil
}

// preprocessing builds the feature pipeline fitted on the training part.
// Steps run as imputer, column selector, scaler, PCA.
func preprocessing(cfg config.DataConfig) (*pipeline.Pipeline, error) {
	var steps []pipeline.Transformer
	if cfg.AllowMissing {
		strategy, err := dataprep.ParseStrategy(cfg.Impute)
		if err != nil {
			return nil, err
		}
		steps = append(steps, dataprep.NewImputer(strategy))
	}
	if len(cfg.Columns) > 0 {
		steps = append(steps, dataprep.NewColumnSelector(cfg.Columns...))
	}
	if cfg.Standardize {
		steps = append(steps, stats.NewStandardScaler())
	}
	if cfg.Components > 0 {
		steps = append(steps, dataprep.NewPCA(cfg.Components))
	}
	return pipeline.NewPipeline(steps...), nil
}

func loadDataset(ctx context.Context, cfg config.DataConfig, rng *rand.Rand) (data.Dataset, string, error) {
	if cfg.Input != "" {
		ds, err := data.LoadCSV(ctx, cfg.Input, data.CSVOptions{
			LabelColumn:  cfg.LabelColumn,
			Header:       cfg.Header,
			AllowMissing: cfg.AllowMissing,
		})
		return ds, cfg.Input, err
	}
	ds, err := data.GaussianClusters(rng, data.DefaultClusters(cfg.Observations)...)
	return ds, "synthetic", err
}

func writeCSVFile(path string, results []sweep.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteCSV(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writePlots(dir string, all, test data.Dataset, results []sweep.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := report.PlotAccuracy(results, filepath.Join(dir, "accuracy.png")); err != nil {
		return fmt.Errorf("accuracy plot: %w", err)
	}
	if all.Dim() < 2 {
		return nil
	}
	last := results[len(results)-1]
	if all.Dim() > 2 {
		var err error
		if all, test, last, err = project2D(all, test, last); err != nil {
			return fmt.Errorf("project for plotting: %w", err)
		}
	}
	if err := report.PlotDataset(all, test, filepath.Join(dir, "dataset.png")); err != nil {
		return fmt.Errorf("dataset plot: %w", err)
	}
	if err := report.PlotMisclassified(all, last, filepath.Join(dir, fmt.Sprintf("misclassified_k%d.png", last.K))); err != nil {
		return fmt.Errorf("misclassified plot: %w", err)
	}
	return nil
}

// project2D maps every point onto the first two principal components of all.
func project2D(all, test data.Dataset, r sweep.Result) (data.Dataset, data.Dataset, sweep.Result, error) {
	pca := dataprep.NewPCA(2)
	if err := pca.Fit(all.X); err != nil {
		return all, test, r, err
	}
	var err error
	if all.X, err = pca.Transform(all.X); err != nil {
		return all, test, r, err
	}
	if test.X, err = pca.Transform(test.X); err != nil {
		return all, test, r, err
	}
	if r.MisclassifiedPoints, err = pca.Transform(r.MisclassifiedPoints); err != nil {
		return all, test, r, err
	}
	return all, test, r, nil
}

func saveRun(ctx context.Context, cfg config.Config, source string, train, test data.Dataset, results []sweep.Result) (string, error) {
	st, err := store.Open(cfg.Output.ResultsDB)
	if err != nil {
		return "", err
	}
	defer st.Close()

	return st.SaveRun(ctx, store.Run{
		Source:   source,
		NumTrain: train.Len(),
		NumTest:  test.Len(),
		Dim:      train.Dim(),
		KMin:     cfg.Sweep.KMin,
		KMax:     cfg.Sweep.KMax,
		KStep:    cfg.Sweep.KStep,
	}, results)
}
