package data

import (
	"fmt"
	"slices"

	"github.com/BoyarinO/dataroot2/pkg/core"
)

// Dataset is a set of feature vectors paired 1:1 with integer class labels.
type Dataset struct {
	X [][]float64
	Y []int
}

// Len returns the number of points.
func (d Dataset) Len() int { return len(d.X) }

// Dim returns the dimensionality of the first point, or 0 for an empty dataset.
func (d Dataset) Dim() int {
	if len(d.X) == 0 {
		return 0
	}
	return len(d.X[0])
}

// Validate checks the shape of the dataset (see ValidateShape) and that every
// coordinate is finite.
func (d Dataset) Validate() error {
	if err := d.validateShape("Dataset.Validate"); err != nil {
		return err
	}
	for i, p := range d.X {
		if c := core.NonFinite(p); c >= 0 {
			return core.WrapError("Dataset.Validate", fmt.Errorf("%w: point %d feature %d is %v", core.ErrNonFinite, i, c, p[c]))
		}
	}
	return nil
}

// ValidateShape checks that the dataset is non-empty, that every point has a
// label and that all points share one dimensionality d >= 1. NaN features
// standing for missing values pass; they must be imputed before Validate.
func (d Dataset) ValidateShape() error {
	return d.validateShape("Dataset.ValidateShape")
}

func (d Dataset) validateShape(op string) error {
	if len(d.X) == 0 {
		return core.WrapError(op, core.ErrEmptyInput)
	}
	if len(d.X) != len(d.Y) {
		return core.WrapError(op, fmt.Errorf("%w: %d points but %d labels", core.ErrDimensionMismatch, len(d.X), len(d.Y)))
	}
	dim := len(d.X[0])
	if dim == 0 {
		return core.WrapError(op, fmt.Errorf("%w: points have no features", core.ErrDimensionMismatch))
	}
	for i, p := range d.X {
		if len(p) != dim {
			return core.WrapError(op, fmt.Errorf("%w: point %d has %d features, want %d", core.ErrDimensionMismatch, i, len(p), dim))
		}
	}
	return nil
}

// Subset returns the points at idx, in that order. Point slices are shared, not copied.
func (d Dataset) Subset(idx []int) Dataset {
	out := Dataset{X: make([][]float64, len(idx)), Y: make([]int, len(idx))}
	for i, j := range idx {
		out.X[i] = d.X[j]
		out.Y[i] = d.Y[j]
	}
	return out
}

// Classes returns the distinct labels in ascending order.
func (d Dataset) Classes() []int {
	seen := make(map[int]bool)
	var out []int
	for _, y := range d.Y {
		if !seen[y] {
			seen[y] = true
			out = append(out, y)
		}
	}
	slices.Sort(out)
	return out
}
