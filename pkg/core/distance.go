package core

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// Euclidean returns the L2 distance between a and b. Both must have the same length.
func Euclidean(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// BuildDistances computes the Euclidean distance between every test point and
// every training point. Row i of the result belongs to test[i] and column j to
// train[j]. Every entry is recomputed on each call.
func BuildDistances(train, test [][]float64) (*Matrix, error) {
	if err := checkPoints(train, test); err != nil {
		return nil, WrapError("BuildDistances", err)
	}
	m := newMatrix(len(test), len(train))
	fillRows(m, train, test, 0, len(test))
	return m, nil
}

// BuildDistancesParallel is BuildDistances with the test rows split over a
// pool of goroutines. Rows are independent, so the result is bit-identical to
// the serial version. workers <= 0 uses GOMAXPROCS.
func BuildDistancesParallel(train, test [][]float64, workers int) (*Matrix, error) {
	if err := checkPoints(train, test); err != nil {
		return nil, WrapError("BuildDistancesParallel", err)
	}
	m := newMatrix(len(test), len(train))

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	rowsPerWorker := (len(test) + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * rowsPerWorker
		end := min(start+rowsPerWorker, len(test))
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fillRows(m, train, test, s, e)
		}(start, end)
	}
	wg.Wait()
	return m, nil
}

// fillRows writes rows [start, end) of m. Each goroutine owns a disjoint range.
func fillRows(m *Matrix, train, test [][]float64, start, end int) {
	for i := start; i < end; i++ {
		row := m.data[i*m.c : (i+1)*m.c]
		for j, p := range train {
			row[j] = Euclidean(test[i], p)
		}
	}
}

// NonFinite returns the index of the first NaN or infinite coordinate of p,
// or -1 when every coordinate is finite.
func NonFinite(p []float64) int {
	for j, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return j
		}
	}
	return -1
}

// checkPoints validates that both point sets are non-empty, share one
// dimensionality d >= 1 and hold only finite coordinates.
func checkPoints(train, test [][]float64) error {
	if len(train) == 0 {
		return fmt.Errorf("%w: no training points", ErrEmptyInput)
	}
	if len(test) == 0 {
		return fmt.Errorf("%w: no test points", ErrEmptyInput)
	}
	d := len(train[0])
	if d == 0 {
		return fmt.Errorf("%w: points have no features", ErrDimensionMismatch)
	}
	for j, p := range train {
		if len(p) != d {
			return fmt.Errorf("%w: training point %d has %d features, want %d", ErrDimensionMismatch, j, len(p), d)
		}
		if c := NonFinite(p); c >= 0 {
			return fmt.Errorf("%w: training point %d feature %d is %v", ErrNonFinite, j, c, p[c])
		}
	}
	for i, p := range test {
		if len(p) != d {
			return fmt.Errorf("%w: test point %d has %d features, want %d", ErrDimensionMismatch, i, len(p), d)
		}
		if c := NonFinite(p); c >= 0 {
			return fmt.Errorf("%w: test point %d feature %d is %v", ErrNonFinite, i, c, p[c])
		}
	}
	return nil
}
