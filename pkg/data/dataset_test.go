package data

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BoyarinO/dataroot2/pkg/core"
)

func TestDatasetValidate(t *testing.T) {
	tests := []struct {
		name string
		ds   Dataset
		want error
	}{
		{
			name: "valid",
			ds:   Dataset{X: [][]float64{{0, 0}, {1, 1}}, Y: []int{0, 1}},
		},
		{
			name: "empty",
			ds:   Dataset{},
			want: core.ErrEmptyInput,
		},
		{
			name: "missing label",
			ds:   Dataset{X: [][]float64{{0, 0}, {1, 1}}, Y: []int{0}},
			want: core.ErrDimensionMismatch,
		},
		{
			name: "ragged points",
			ds:   Dataset{X: [][]float64{{0, 0}, {1}}, Y: []int{0, 1}},
			want: core.ErrDimensionMismatch,
		},
		{
			name: "zero features",
			ds:   Dataset{X: [][]float64{{}}, Y: []int{0}},
			want: core.ErrDimensionMismatch,
		},
		{
			name: "NaN feature",
			ds:   Dataset{X: [][]float64{{math.NaN()}, {0}}, Y: []int{1, 0}},
			want: core.ErrNonFinite,
		},
		{
			name: "infinite feature",
			ds:   Dataset{X: [][]float64{{0, math.Inf(1)}}, Y: []int{0}},
			want: core.ErrNonFinite,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ds.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDatasetSubsetAndClasses(t *testing.T) {
	ds := Dataset{
		X: [][]float64{{0}, {1}, {2}, {3}},
		Y: []int{2, 0, 2, 1},
	}

	sub := ds.Subset([]int{3, 0})
	assert.Equal(t, [][]float64{{3}, {0}}, sub.X)
	assert.Equal(t, []int{1, 2}, sub.Y)

	assert.Equal(t, []int{0, 1, 2}, ds.Classes())
	assert.Equal(t, 4, ds.Len())
	assert.Equal(t, 1, ds.Dim())
	assert.Equal(t, 0, Dataset{}.Dim())
}

func TestDatasetValidateShapeAllowsMissing(t *testing.T) {
	ds := Dataset{X: [][]float64{{math.NaN(), 1}, {2, 3}}, Y: []int{0, 1}}
	assert.NoError(t, ds.ValidateShape())
	assert.ErrorIs(t, ds.Validate(), core.ErrNonFinite)

	assert.ErrorIs(t, Dataset{}.ValidateShape(), core.ErrEmptyInput)
	assert.ErrorIs(t, Dataset{X: [][]float64{{1}, {1, 2}}, Y: []int{0, 1}}.ValidateShape(), core.ErrDimensionMismatch)
}
