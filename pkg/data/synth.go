package data

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// Cluster describes one class of a synthetic dataset: N points drawn from a
// multivariate normal with the given mean and row-major covariance.
type Cluster struct {
	Label int
	N     int
	Mean  []float64
	Cov   []float64
}

// DefaultClusters returns the two correlated 2-D classes used by the demo
// sweep, each with n points.
func DefaultClusters(n int) []Cluster {
	return []Cluster{
		{Label: 0, N: n, Mean: []float64{0, 0}, Cov: []float64{1, .75, .75, 1}},
		{Label: 1, N: n, Mean: []float64{-2, 3}, Cov: []float64{2, .75, .75, 2}},
	}
}

// GaussianClusters samples every cluster in order and stacks the points into
// one dataset, cluster by cluster. The same src state yields the same dataset.
func GaussianClusters(src rand.Source, clusters ...Cluster) (Dataset, error) {
	if len(clusters) == 0 {
		return Dataset{}, errors.New("data: no clusters")
	}
	d := len(clusters[0].Mean)

	var ds Dataset
	for c, cl := range clusters {
		if len(cl.Mean) != d || d == 0 {
			return Dataset{}, fmt.Errorf("data: cluster %d has dimension %d, want %d", c, len(cl.Mean), d)
		}
		if len(cl.Cov) != d*d {
			return Dataset{}, fmt.Errorf("data: cluster %d covariance has %d entries, want %d", c, len(cl.Cov), d*d)
		}
		if cl.N <= 0 {
			return Dataset{}, fmt.Errorf("data: cluster %d has %d points", c, cl.N)
		}

		sigma := mat.NewSymDense(d, append([]float64(nil), cl.Cov...))
		normal, ok := distmv.NewNormal(cl.Mean, sigma, src)
		if !ok {
			return Dataset{}, fmt.Errorf("data: cluster %d covariance is not positive definite", c)
		}
		for i := 0; i < cl.N; i++ {
			ds.X = append(ds.X, normal.Rand(nil))
			ds.Y = append(ds.Y, cl.Label)
		}
	}
	return ds, nil
}
