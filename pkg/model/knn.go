package model

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/BoyarinO/dataroot2/pkg/core"
	"github.com/BoyarinO/dataroot2/pkg/stats"
)

// Predict returns, for every row of dist, the majority label among the k
// nearest training points. Neighbours are ranked by distance and then by
// training index; label ties go to the smallest label.
func Predict(dist *core.Matrix, trainLabels []int, k int) ([]int, error) {
	numTest, numTrain := dist.Dims()
	if len(trainLabels) != numTrain {
		return nil, core.WrapError("Predict", fmt.Errorf("%w: %d labels for %d training points", core.ErrDimensionMismatch, len(trainLabels), numTrain))
	}
	if k < 1 || k > numTrain {
		return nil, core.WrapError("Predict", fmt.Errorf("%w: k=%d, want 1..%d", core.ErrInvalidK, k, numTrain))
	}

	out := make([]int, numTest)
	row := make([]float64, numTrain)
	order := make([]int, numTrain)
	votes := make([]int, k)
	for i := 0; i < numTest; i++ {
		nearest(dist.CopyRow(row, i), order)
		for n := range votes {
			votes[n] = trainLabels[order[n]]
		}
		out[i] = stats.Mode(votes)
	}
	return out, nil
}

// nearest fills order with the training indices sorted by ascending distance,
// equal distances ordered by index.
func nearest(row []float64, order []int) {
	for j := range order {
		order[j] = j
	}
	slices.SortFunc(order, func(a, b int) int {
		if c := cmp.Compare(row[a], row[b]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
}
