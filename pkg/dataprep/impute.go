package dataprep

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/BoyarinO/dataroot2/pkg/core"
)

// Strategy selects the statistic used to fill missing values.
type Strategy string

const (
	StrategyMean   Strategy = "mean"
	StrategyMedian Strategy = "median"
)

// ParseStrategy accepts "mean" or "median".
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(s); st {
	case StrategyMean, StrategyMedian:
		return st, nil
	}
	return "", fmt.Errorf("dataprep: unknown impute strategy %q", s)
}

// Imputer replaces NaN features with a per-column statistic learned from the
// data it was fitted on.
type Imputer struct {
	Strategy Strategy
	Fill     []float64
}

func NewImputer(s Strategy) *Imputer { return &Imputer{Strategy: s} }

// Fit computes the fill value of every column from its non-missing entries.
// A column with no observed value is filled with 0.
func (m *Imputer) Fit(X [][]float64) error {
	if len(X) == 0 {
		return core.WrapError("Imputer.Fit", core.ErrEmptyInput)
	}
	c := len(X[0])
	m.Fill = make([]float64, c)
	col := make([]float64, 0, len(X))
	for j := 0; j < c; j++ {
		col = col[:0]
		for i, row := range X {
			if len(row) != c {
				return core.WrapError("Imputer.Fit", fmt.Errorf("%w: row %d has %d features, want %d", core.ErrDimensionMismatch, i, len(row), c))
			}
			if !math.IsNaN(row[j]) {
				col = append(col, row[j])
			}
		}
		if len(col) == 0 {
			continue
		}

		switch m.Strategy {
		case StrategyMedian:
			m.Fill[j] = median(col)
		default:
			m.Fill[j] = stat.Mean(col, nil)
		}
	}
	return nil
}

// median sorts x in place and returns its middle value, or the mean of the
// two middle values when len(x) is even.
func median(x []float64) float64 {
	slices.Sort(x)
	n := len(x)
	if n%2 == 1 {
		return x[n/2]
	}
	return stat.Mean(x[n/2-1:n/2+1], nil)
}

// Transform returns a copy of X with every NaN replaced by its column's fill value.
func (m *Imputer) Transform(X [][]float64) ([][]float64, error) {
	if m.Fill == nil {
		return X, nil
	}
	out := make([][]float64, len(X))
	for i, row := range X {
		if len(row) != len(m.Fill) {
			return nil, core.WrapError("Imputer.Transform", fmt.Errorf("%w: row %d has %d features, want %d", core.ErrDimensionMismatch, i, len(row), len(m.Fill)))
		}
		r := slices.Clone(row)
		for j, v := range r {
			if math.IsNaN(v) {
				r[j] = m.Fill[j]
			}
		}
		out[i] = r
	}
	return out, nil
}

// Missing counts the NaN entries of X.
func Missing(X [][]float64) int {
	n := 0
	for _, row := range X {
		for _, v := range row {
			if math.IsNaN(v) {
				n++
			}
		}
	}
	return n
}
