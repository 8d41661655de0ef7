package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/BoyarinO/dataroot2/pkg/store"
)

func newRunsCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "runs [run-id]",
		Short: "List stored sweep runs, or show the results of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resultsDB(dbPath, cmd.Flags().Changed("db"))
			if err != nil {
				return err
			}
			st, err := store.Open(path)
			if err != nil {
				return err
			}
			defer st.Close()

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				rows, err := st.Results(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				for _, r := range rows {
					fmt.Fprintf(out, "k=%d\taccuracy=%.2f%%\ttime=%s\tmisses=%d\n", r.K, r.Accuracy, r.Elapsed, r.Misclassified)
				}
				return nil
			}

			runs, err := st.ListRuns(cmd.Context())
			if err != nil {
				return err
			}
			for _, r := range runs {
				fmt.Fprintf(out, "%s\t%s\t%s\ttrain=%d test=%d dim=%d\tk=[%d:%d:%d]\n",
					r.ID, r.CreatedAt.Local().Format(time.DateTime), r.Source, r.NumTrain, r.NumTest, r.Dim, r.KMin, r.KMax, r.KStep)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite results file (default output.results_db of --config)")
	return cmd
}

// resultsDB picks --db when set, otherwise output.results_db of the config.
// The file must already exist; listing never creates a database.
func resultsDB(flagPath string, flagSet bool) (string, error) {
	path := flagPath
	if !flagSet {
		cfg, err := loadConfig()
		if err != nil {
			return "", err
		}
		path = cfg.Output.ResultsDB
	}
	if path == "" {
		return "", errors.New("no results database: pass --db or set output.results_db")
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("results database: %w", err)
	}
	return path, nil
}
