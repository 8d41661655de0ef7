package sweep

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BoyarinO/dataroot2/pkg/core"
)

func TestSummarize(t *testing.T) {
	results := []Result{
		{K: 1, Accuracy: 90, Elapsed: time.Second},
		{K: 5, Accuracy: 95, Elapsed: 2 * time.Second},
		{K: 9, Accuracy: 95},
		{K: 3, Accuracy: 95},
		{K: 13, Accuracy: 80},
	}

	s, err := Summarize(results)
	require.NoError(t, err)

	assert.Equal(t, 3, s.BestK, "ties go to the smallest k")
	assert.Equal(t, 95.0, s.BestAccuracy)
	assert.InDelta(t, 91.0, s.MeanAccuracy, 1e-9)
	assert.InDelta(t, 5.830951894845301, s.StdAccuracy, 1e-9)
	assert.Equal(t, 5, s.Evaluated)
	assert.InDelta(t, 3.0, s.TotalElapsed, 1e-9)
}

func TestSummarizeSingle(t *testing.T) {
	s, err := Summarize([]Result{{K: 7, Accuracy: 50}})
	require.NoError(t, err)
	assert.Equal(t, 7, s.BestK)
	assert.Equal(t, 0.0, s.StdAccuracy)
}

func TestSummarizeEmpty(t *testing.T) {
	_, err := Summarize(nil)
	assert.ErrorIs(t, err, core.ErrEmptyInput)
}
