package dataprep

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/BoyarinO/dataroot2/pkg/core"
)

// PCA projects points onto the top K principal components of the data it
// was fitted on.
type PCA struct {
	K         int
	Means     []float64
	Explained []float64 // variance of every component, largest first

	vecs *mat.Dense // d x K
}

// NewPCA creates and returns a PCA keeping k components.
func NewPCA(k int) *PCA {
	return &PCA{K: k}
}

// Fit computes the principal directions of X.
func (p *PCA) Fit(X [][]float64) error {
	if len(X) == 0 {
		return core.WrapError("PCA.Fit", core.ErrEmptyInput)
	}
	n, d := len(X), len(X[0])
	if p.K < 1 || p.K > d || p.K > n {
		return core.WrapError("PCA.Fit", fmt.Errorf("%w: %d components from %d points of dimension %d", core.ErrDimensionMismatch, p.K, n, d))
	}

	a := mat.NewDense(n, d, nil)
	for i, row := range X {
		if len(row) != d {
			return core.WrapError("PCA.Fit", fmt.Errorf("%w: row %d has %d features, want %d", core.ErrDimensionMismatch, i, len(row), d))
		}
		a.SetRow(i, row)
	}

	var pc stat.PC
	if !pc.PrincipalComponents(a, nil) {
		return errors.New("dataprep: principal component decomposition failed")
	}
	var all mat.Dense
	pc.VectorsTo(&all)
	p.vecs = mat.DenseCopyOf(all.Slice(0, d, 0, p.K))
	p.Explained = pc.VarsTo(nil)[:p.K]

	p.Means = make([]float64, d)
	col := make([]float64, n)
	for j := range d {
		mat.Col(col, j, a)
		p.Means[j] = stat.Mean(col, nil)
	}
	return nil
}

// Transform centers X with the fitted means and returns its coordinates in
// the component basis.
func (p *PCA) Transform(X [][]float64) ([][]float64, error) {
	if p.vecs == nil {
		return nil, errors.New("dataprep: PCA is not fitted")
	}
	d := len(p.Means)
	out := make([][]float64, len(X))
	centered := make([]float64, d)
	for i, row := range X {
		if len(row) != d {
			return nil, core.WrapError("PCA.Transform", fmt.Errorf("%w: row %d has %d features, want %d", core.ErrDimensionMismatch, i, len(row), d))
		}
		for j, v := range row {
			centered[j] = v - p.Means[j]
		}
		var proj mat.VecDense
		proj.MulVec(p.vecs.T(), mat.NewVecDense(d, centered))
		out[i] = mat.Col(nil, 0, &proj)
	}
	return out, nil
}
