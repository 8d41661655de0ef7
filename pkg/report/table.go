package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/BoyarinO/dataroot2/pkg/sweep"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	bestStyle   = cellStyle.Foreground(lipgloss.Color("10"))
)

// Table renders one row per k. The row of bestK is highlighted.
func Table(results []sweep.Result, bestK int) string {
	rows := make([][]string, len(results))
	best := -1
	for i, r := range results {
		rows[i] = []string{
			strconv.Itoa(r.K),
			fmt.Sprintf("%.2f%%", r.Accuracy),
			fmt.Sprintf("%.4fs", r.Elapsed.Seconds()),
			strconv.Itoa(len(r.Misclassified)),
		}
		if r.K == bestK && best < 0 {
			best = i
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("K", "ACCURACY", "TIME", "MISSES").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == best:
				return bestStyle
			default:
				return cellStyle
			}
		})
	return t.String()
}

// WriteSummary writes the result table followed by a one-line summary.
func WriteSummary(w io.Writer, results []sweep.Result) error {
	s, err := sweep.Summarize(results)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\nbest k=%d accuracy=%.2f%% mean=%.2f%% std=%.2f\n",
		Table(results, s.BestK), s.BestK, s.BestAccuracy, s.MeanAccuracy, s.StdAccuracy)
	return err
}
