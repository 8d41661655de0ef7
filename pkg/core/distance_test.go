package core

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomPoints(rng *rand.Rand, n, d int) [][]float64 {
	pts := make([][]float64, n)
	for i := range pts {
		pts[i] = make([]float64, d)
		for j := range pts[i] {
			pts[i][j] = rng.NormFloat64() * 3
		}
	}
	return pts
}

func TestEuclidean(t *testing.T) {
	assert.InDelta(t, 5.0, Euclidean([]float64{0, 0}, []float64{3, 4}), 1e-12)
	assert.InDelta(t, math.Sqrt(27), Euclidean([]float64{1, 2, 3}, []float64{4, 5, 6}), 1e-12)
	assert.Equal(t, 0.0, Euclidean([]float64{1.5, -2.25}, []float64{1.5, -2.25}))
}

func TestBuildDistances(t *testing.T) {
	train := [][]float64{{0, 0}, {10, 10}, {3, 4}}
	test := [][]float64{{0, 0}, {0.1, 0.1}}

	m, err := BuildDistances(train, test)
	require.NoError(t, err)

	r, c := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)

	assert.Equal(t, 0.0, m.At(0, 0))
	assert.InDelta(t, math.Sqrt(200), m.At(0, 1), 1e-12)
	assert.InDelta(t, 5.0, m.At(0, 2), 1e-12)
	assert.InDelta(t, math.Sqrt(0.02), m.At(1, 0), 1e-12)
}

func TestBuildDistancesProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	pts := randomPoints(rng, 25, 4)

	m, err := BuildDistances(pts, pts)
	require.NoError(t, err)

	for i := range pts {
		assert.Equal(t, 0.0, m.At(i, i), "distance of point %d to itself", i)
		for j := range pts {
			assert.GreaterOrEqual(t, m.At(i, j), 0.0)
			assert.Equal(t, m.At(i, j), m.At(j, i), "symmetry for (%d, %d)", i, j)
		}
	}
}

func TestBuildDistancesIdempotent(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	train := randomPoints(rng, 40, 3)
	test := randomPoints(rng, 17, 3)

	a, err := BuildDistances(train, test)
	require.NoError(t, err)
	b, err := BuildDistances(train, test)
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
}

func TestBuildDistancesParallelMatchesSerial(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	train := randomPoints(rng, 60, 5)
	test := randomPoints(rng, 23, 5)

	serial, err := BuildDistances(train, test)
	require.NoError(t, err)

	for _, workers := range []int{0, 1, 3, 8, 64} {
		par, err := BuildDistancesParallel(train, test, workers)
		require.NoError(t, err)
		assert.True(t, serial.Equal(par), "workers=%d", workers)
	}
}

func TestBuildDistancesErrors(t *testing.T) {
	tests := []struct {
		name  string
		train [][]float64
		test  [][]float64
		want  error
	}{
		{
			name:  "empty train",
			train: nil,
			test:  [][]float64{{1}},
			want:  ErrEmptyInput,
		},
		{
			name:  "empty test",
			train: [][]float64{{1}},
			test:  [][]float64{},
			want:  ErrEmptyInput,
		},
		{
			name:  "zero features",
			train: [][]float64{{}},
			test:  [][]float64{{}},
			want:  ErrDimensionMismatch,
		},
		{
			name:  "ragged train",
			train: [][]float64{{1, 2}, {1}},
			test:  [][]float64{{1, 2}},
			want:  ErrDimensionMismatch,
		},
		{
			name:  "test differs from train",
			train: [][]float64{{1, 2}},
			test:  [][]float64{{1, 2, 3}},
			want:  ErrDimensionMismatch,
		},
		{
			name:  "NaN train coordinate",
			train: [][]float64{{math.NaN()}, {0}, {100}},
			test:  [][]float64{{0.1}},
			want:  ErrNonFinite,
		},
		{
			name:  "infinite test coordinate",
			train: [][]float64{{0}},
			test:  [][]float64{{math.Inf(-1)}},
			want:  ErrNonFinite,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildDistances(tt.train, tt.test)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)

			var opErr *Error
			require.ErrorAs(t, err, &opErr)
			assert.Equal(t, "BuildDistances", opErr.Op)

			_, err = BuildDistancesParallel(tt.train, tt.test, 2)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
