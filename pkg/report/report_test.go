package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BoyarinO/dataroot2/pkg/data"
	"github.com/BoyarinO/dataroot2/pkg/sweep"
)

func sampleResults() []sweep.Result {
	return []sweep.Result{
		{K: 1, Accuracy: 90, Elapsed: 1500 * time.Millisecond, Misclassified: []int{0, 4}, MisclassifiedPoints: [][]float64{{0, 1}, {2, 2}}},
		{K: 5, Accuracy: 95.5, Elapsed: 250 * time.Millisecond, Misclassified: []int{4}, MisclassifiedPoints: [][]float64{{2, 2}}},
	}
}

func sampleDataset() data.Dataset {
	return data.Dataset{
		X: [][]float64{{0, 1}, {1, 1}, {-2, 3}, {-1, 4}, {2, 2}},
		Y: []int{0, 0, 1, 1, 0},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResults()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"k", "accuracy", "elapsed_seconds", "misclassified"},
		{"1", "90.000000", "1.500000", "2"},
		{"5", "95.500000", "0.250000", "1"},
	}, records)
}

func TestTable(t *testing.T) {
	out := Table(sampleResults(), 5)
	for _, want := range []string{"K", "ACCURACY", "90.00%", "95.50%", "1.5000s"} {
		assert.Contains(t, out, want)
	}
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 6)
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, sampleResults()))
	assert.Contains(t, buf.String(), "best k=5 accuracy=95.50%")

	assert.Error(t, WriteSummary(&buf, nil))
}

func TestPlots(t *testing.T) {
	dir := t.TempDir()
	results := sampleResults()
	ds := sampleDataset()

	files := map[string]func(string) error{
		"accuracy.png": func(p string) error { return PlotAccuracy(results, p) },
		"dataset.svg":  func(p string) error { return PlotDataset(ds, ds.Subset([]int{1, 3}), p) },
		"miss.png":     func(p string) error { return PlotMisclassified(ds, results[1], p) },
		"nomiss.png":   func(p string) error { return PlotMisclassified(ds, sweep.Result{K: 3}, p) },
	}
	for name, plot := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, plot(path), name)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0), name)
	}
}

func TestPlotErrors(t *testing.T) {
	dir := t.TempDir()
	oneD := data.Dataset{X: [][]float64{{1}}, Y: []int{0}}

	assert.Error(t, PlotAccuracy(nil, filepath.Join(dir, "a.png")))
	assert.Error(t, PlotDataset(oneD, oneD, filepath.Join(dir, "b.png")))
	assert.Error(t, PlotMisclassified(oneD, sweep.Result{}, filepath.Join(dir, "c.png")))
}
