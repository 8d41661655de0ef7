package stats

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/BoyarinO/dataroot2/pkg/core"
)

// StandardScaler rescales every column to zero mean and unit variance using
// the statistics of the data it was fitted on.
type StandardScaler struct {
	Mean []float64
	Std  []float64
	fit  bool
}

func NewStandardScaler() *StandardScaler { return &StandardScaler{} }

// Fit learns the per-column mean and population standard deviation of X.
// Constant columns get a standard deviation of 1 so they transform to 0.
func (s *StandardScaler) Fit(X [][]float64) error {
	if len(X) == 0 {
		return core.WrapError("StandardScaler.Fit", core.ErrEmptyInput)
	}
	r, c := len(X), len(X[0])
	s.Mean = make([]float64, c)
	s.Std = make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			if len(X[i]) != c {
				return core.WrapError("StandardScaler.Fit", fmt.Errorf("%w: row %d has %d features, want %d", core.ErrDimensionMismatch, i, len(X[i]), c))
			}
			col[i] = X[i][j]
		}
		s.Mean[j], s.Std[j] = stat.PopMeanStdDev(col, nil)
		if s.Std[j] == 0 {
			s.Std[j] = 1
		}
	}
	s.fit = true
	return nil
}

// Transform returns a scaled copy of X. An unfitted scaler returns X unchanged.
func (s *StandardScaler) Transform(X [][]float64) ([][]float64, error) {
	if !s.fit {
		return X, nil
	}
	c := len(s.Mean)
	Y := make([][]float64, len(X))
	for i, x := range X {
		if len(x) != c {
			return nil, core.WrapError("StandardScaler.Transform", fmt.Errorf("%w: row %d has %d features, want %d", core.ErrDimensionMismatch, i, len(x), c))
		}
		row := make([]float64, c)
		for j := 0; j < c; j++ {
			row[j] = (x[j] - s.Mean[j]) / s.Std[j]
		}
		Y[i] = row
	}
	return Y, nil
}
