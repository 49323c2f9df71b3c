// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dense

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// decomposition is the shared workspace base of the factorizers.
// rows and cols always describe the dimensions of the source matrix,
// even when the workspace stores its transpose.
type decomposition struct {
	rows, cols int
	data       [][]float64
	computed   bool
}

func (d *decomposition) reset() {
	d.rows, d.cols = 0, 0
	d.data = nil
	d.computed = false
}

// setInPlace copies m into a fresh workspace. When transposed is true the
// workspace rows hold the columns of m, which keeps the Householder QR
// column sweeps contiguous.
func (d *decomposition) setInPlace(m mat.Matrix, transposed bool) [][]float64 {
	r, c := m.Dims()
	d.rows, d.cols = r, c

	outer, inner := r, c
	if transposed {
		outer, inner = c, r
	}
	data := make([][]float64, outer)
	buf := make([]float64, outer*inner)
	for i := range data {
		data[i], buf = buf[:inner:inner], buf[inner:]
	}

	if transposed {
		for j := 0; j < c; j++ {
			col := data[j]
			for i := 0; i < r; i++ {
				col[i] = m.At(i, j)
			}
		}
	} else {
		for i := 0; i < r; i++ {
			row := data[i]
			for j := 0; j < c; j++ {
				row[j] = m.At(i, j)
			}
		}
	}

	d.data = data
	return data
}

// IsComputed reports whether a decomposition has completed since the last reset.
func (d *decomposition) IsComputed() bool { return d.computed }

// Dims returns the dimensions of the decomposed matrix.
func (d *decomposition) Dims() (rows, cols int) { return d.rows, d.cols }

// rankOf estimates rank from a triangular diagonal: an entry counts when its
// magnitude exceeds max(m,n)·ε·max|d|, so an identity keeps full rank at any
// size and an all-zero diagonal yields zero.
func (d *decomposition) rankOf(diag []float64) int {
	largest := zero
	for _, v := range diag {
		largest = math.Max(largest, math.Abs(v))
	}
	tol := float64(max(d.rows, d.cols)) * eps * largest
	rank := 0
	for _, v := range diag {
		if math.Abs(v) > tol {
			rank++
		}
	}
	return rank
}

// denseOf assembles a row-major *mat.Dense from workspace-shaped rows.
func denseOf(x [][]float64, rows, cols int) *mat.Dense {
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		out.SetRow(i, x[i][:cols])
	}
	return out
}
