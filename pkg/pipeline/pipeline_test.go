package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BoyarinO/dataroot2/pkg/data"
	"github.com/BoyarinO/dataroot2/pkg/stats"
)

// shift adds the first value it was fitted on to every feature.
type shift struct{ by float64 }

func (s *shift) Fit(X [][]float64) error {
	if len(X) == 0 {
		return errors.New("empty")
	}
	s.by = X[0][0]
	return nil
}

func (s *shift) Transform(X [][]float64) ([][]float64, error) {
	out := make([][]float64, len(X))
	for i, x := range X {
		out[i] = make([]float64, len(x))
		for j, v := range x {
			out[i][j] = v + s.by
		}
	}
	return out, nil
}

func TestPipelineFitsOnPreviousOutput(t *testing.T) {
	a, b := &shift{}, &shift{}
	p := NewPipeline(a, b)
	require.NoError(t, p.Fit([][]float64{{1}}))

	assert.Equal(t, 1.0, a.by)
	assert.Equal(t, 2.0, b.by)

	out, err := p.Transform([][]float64{{0}})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{3}}, out)
	assert.Equal(t, 2, p.Len())
}

func TestPipelineFitError(t *testing.T) {
	err := NewPipeline(&shift{}).Fit(nil)
	assert.Error(t, err)
}

func TestApplyStandardizesWithTrainStatistics(t *testing.T) {
	train := data.Dataset{X: [][]float64{{0, 10}, {2, 10}}, Y: []int{0, 1}}
	test := data.Dataset{X: [][]float64{{4, 12}}, Y: []int{1}}

	p := NewPipeline(stats.NewStandardScaler())
	gotTrain, gotTest, err := p.Apply(train, test)
	require.NoError(t, err)

	assert.Equal(t, [][]float64{{-1, 0}, {1, 0}}, gotTrain.X)
	assert.Equal(t, [][]float64{{3, 2}}, gotTest.X)
	assert.Equal(t, train.Y, gotTrain.Y)
	assert.Equal(t, test.Y, gotTest.Y)
}

func TestApplyWithoutSteps(t *testing.T) {
	train := data.Dataset{X: [][]float64{{1}}, Y: []int{0}}
	gotTrain, _, err := NewPipeline().Apply(train, train)
	require.NoError(t, err)
	assert.Equal(t, train, gotTrain)
}
