package core

import "fmt"

// Matrix is a dense row-major matrix of float64. Its contents cannot be
// changed once built, so one distance matrix can be shared by every k of a sweep.
type Matrix struct {
	r, c int
	data []float64
}

// newMatrix allocates a zero matrix.
func newMatrix(r, c int) *Matrix {
	return &Matrix{r: r, c: c, data: make([]float64, r*c)}
}

// Dims returns the number of rows and columns.
func (m *Matrix) Dims() (r, c int) { return m.r, m.c }

// At returns element (i, j)
func (m *Matrix) At(i, j int) float64 {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		panic(fmt.Sprintf("core: index (%d, %d) out of range for %dx%d matrix", i, j, m.r, m.c))
	}
	return m.data[i*m.c+j]
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []float64 {
	return m.CopyRow(make([]float64, m.c), i)
}

// CopyRow copies row i into dst, which must have length Cols, and returns it.
// Callers that scan every row reuse dst to avoid an allocation per row.
func (m *Matrix) CopyRow(dst []float64, i int) []float64 {
	if i < 0 || i >= m.r {
		panic(fmt.Sprintf("core: row %d out of range for %dx%d matrix", i, m.r, m.c))
	}
	if len(dst) != m.c {
		panic(fmt.Sprintf("core: destination has length %d, want %d", len(dst), m.c))
	}
	copy(dst, m.data[i*m.c:(i+1)*m.c])
	return dst
}

// Equal reports whether both matrices have the same shape and bit-identical entries.
func (m *Matrix) Equal(o *Matrix) bool {
	if m.r != o.r || m.c != o.c {
		return false
	}
	for i, v := range m.data {
		if v != o.data[i] {
			return false
		}
	}
	return true
}
