package model

import (
	"fmt"

	"github.com/BoyarinO/dataroot2/pkg/core"
)

// Accuracy returns the percentage (0-100) of positions where predicted
// matches actual.
func Accuracy(predicted, actual []int) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, core.WrapError("Accuracy", fmt.Errorf("%w: %d predictions for %d labels", core.ErrDimensionMismatch, len(predicted), len(actual)))
	}
	if len(actual) == 0 {
		return 0, core.WrapError("Accuracy", core.ErrEmptyInput)
	}
	c := 0
	for i := range actual {
		if predicted[i] == actual[i] {
			c++
		}
	}
	return 100 * float64(c) / float64(len(actual)), nil
}

// Misclassified returns the indices where predicted differs from actual.
// Both slices must have the same length.
func Misclassified(predicted, actual []int) []int {
	var out []int
	for i := range actual {
		if predicted[i] != actual[i] {
			out = append(out, i)
		}
	}
	return out
}
