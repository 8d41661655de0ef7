package dataprep

import (
	"fmt"

	"github.com/BoyarinO/dataroot2/pkg/core"
)

// ColumnSelector keeps the listed feature columns, in the listed order.
type ColumnSelector struct {
	Columns []int
}

func NewColumnSelector(cols ...int) *ColumnSelector { return &ColumnSelector{Columns: cols} }

// Fit checks that every selected column exists in X.
func (s *ColumnSelector) Fit(X [][]float64) error {
	if len(X) == 0 {
		return core.WrapError("ColumnSelector.Fit", core.ErrEmptyInput)
	}
	if len(s.Columns) == 0 {
		return core.WrapError("ColumnSelector.Fit", fmt.Errorf("%w: no columns selected", core.ErrDimensionMismatch))
	}
	for _, c := range s.Columns {
		if c < 0 || c >= len(X[0]) {
			return core.WrapError("ColumnSelector.Fit", fmt.Errorf("%w: column %d outside [0, %d)", core.ErrDimensionMismatch, c, len(X[0])))
		}
	}
	return nil
}

func (s *ColumnSelector) Transform(X [][]float64) ([][]float64, error) {
	out := make([][]float64, len(X))
	for i, row := range X {
		selected := make([]float64, len(s.Columns))
		for j, idx := range s.Columns {
			if idx < 0 || idx >= len(row) {
				return nil, core.WrapError("ColumnSelector.Transform", fmt.Errorf("%w: row %d has %d features", core.ErrDimensionMismatch, i, len(row)))
			}
			selected[j] = row[idx]
		}
		out[i] = selected
	}
	return out, nil
}
