package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/BoyarinO/dataroot2/pkg/sweep"
)

// WriteCSV writes one record per k: k, accuracy, elapsed seconds and the
// number of misclassified test points.
func WriteCSV(w io.Writer, results []sweep.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"k", "accuracy", "elapsed_seconds", "misclassified"}); err != nil {
		return err
	}
	for _, r := range results {
		rec := []string{
			strconv.Itoa(r.K),
			strconv.FormatFloat(r.Accuracy, 'f', 6, 64),
			strconv.FormatFloat(r.Elapsed.Seconds(), 'f', 6, 64),
			strconv.Itoa(len(r.Misclassified)),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
