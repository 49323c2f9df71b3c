// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dense

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// LU factorizes 𝐏𝐀 = 𝐋𝐔 with a left-looking, dot-product Crout/Doolittle
// sweep and partial (row) pivoting. After Decompose the workspace holds the
// multipliers of unit-lower 𝐋 below the diagonal and 𝐔 on and above it.
type LU struct {
	decomposition
	pivot *pivot
}

// NewLU returns an LU factorizer with an empty workspace.
func NewLU() *LU { return new(LU) }

// Decompose factorizes a copy of m in place, one column at a time:
// localize the column, subtract the dot products of the already factored
// rows, pick the pivot row maximizing the absolute value (first index wins
// ties), exchange rows, then divide the sub-diagonal entries by the pivot.
//
// The sweep always completes and returns true; a singular matrix is reported
// by IsNonsingular, not here. A zero pivot skips the division and leaves the
// sub-diagonal residuals in place, so later solves propagate ±Inf/NaN.
func (lu *LU) Decompose(m mat.Matrix) bool {
	lu.reset()
	lu.pivot = nil

	data := lu.setInPlace(m, false)
	rows, cols := lu.rows, lu.cols
	lu.pivot = newPivot(rows)

	colJ := make([]float64, rows)

	for j := 0; j < cols; j++ {

		for i := 0; i < rows; i++ {
			colJ[i] = data[i][j]
		}

		// Apply previous transformations.
		// Most of the time is spent in this dot product.
		for i := 0; i < rows; i++ {
			colJ[i] -= ddot(data[i], colJ, 0, min(i, j))
			data[i][j] = colJ[i]
		}

		// Find the pivot and exchange if necessary.
		p := j
		for i := j + 1; i < rows; i++ {
			if math.Abs(colJ[i]) > math.Abs(colJ[p]) {
				p = i
			}
		}
		if p != j {
			data[j], data[p] = data[p], data[j]
			lu.pivot.change(j, p)
		}

		// Compute the multipliers, skipping the division on a zero pivot.
		if j < rows {
			if d := data[j][j]; d != zero {
				for i := j + 1; i < rows; i++ {
					data[i][j] /= d
				}
			}
		}
	}

	lu.computed = true
	return true
}

// IsNonsingular reports whether no diagonal entry of 𝐔 is exactly zero.
func (lu *LU) IsNonsingular() bool {
	if !lu.computed {
		return false
	}
	for ij := 0; ij < min(lu.rows, lu.cols); ij++ {
		if lu.data[ij][ij] == zero {
			return false
		}
	}
	return true
}

// IsSolvable reports whether the factorized matrix is square and nonsingular.
func (lu *LU) IsSolvable() bool {
	return lu.computed && lu.rows == lu.cols && lu.IsNonsingular()
}

// IsPivoted reports whether any row exchange happened during Decompose.
func (lu *LU) IsPivoted() bool {
	return lu.computed && lu.pivot.modified
}

// PivotOrder returns the effective row permutation: row i of the
// factorization corresponds to row PivotOrder()[i] of the input.
func (lu *LU) PivotOrder() []int {
	if !lu.computed {
		return nil
	}
	order := make([]int, len(lu.pivot.order))
	copy(order, lu.pivot.order)
	return order
}

// Determinant is the product of the diagonal of 𝐔 times the pivot signum.
func (lu *LU) Determinant() (float64, error) {
	if !lu.computed {
		return zero, ErrNotComputed
	}
	if lu.rows != lu.cols {
		return zero, ErrNotSquare
	}
	det := lu.pivot.signum()
	for ij := 0; ij < lu.cols; ij++ {
		det *= lu.data[ij][ij]
	}
	return det, nil
}

// Rank estimates the rank of the factorized matrix from the diagonal of 𝐔
// with a relative magnitude tolerance.
func (lu *LU) Rank() int {
	if !lu.computed {
		return 0
	}
	diag := make([]float64, min(lu.rows, lu.cols))
	for ij := range diag {
		diag[ij] = lu.data[ij][ij]
	}
	return lu.rankOf(diag)
}

// L extracts the unit-lower triangular factor.
func (lu *LU) L() (*mat.Dense, error) {
	if !lu.computed {
		return nil, ErrNotComputed
	}
	n := min(lu.rows, lu.cols)
	out := mat.NewDense(lu.rows, n, nil)
	for i := 0; i < lu.rows; i++ {
		for j := 0; j < min(i, n); j++ {
			out.Set(i, j, lu.data[i][j])
		}
		if i < n {
			out.Set(i, i, one)
		}
	}
	return out, nil
}

// U extracts the upper triangular factor.
func (lu *LU) U() (*mat.Dense, error) {
	if !lu.computed {
		return nil, ErrNotComputed
	}
	n := min(lu.rows, lu.cols)
	out := mat.NewDense(n, lu.cols, nil)
	for i := 0; i < n; i++ {
		for j := i; j < lu.cols; j++ {
			out.Set(i, j, lu.data[i][j])
		}
	}
	return out, nil
}

// Solve computes 𝐗 with 𝐀𝐗 = rhs: the right-hand side rows are permuted by
// the pivot order, forward-substituted against unit-lower 𝐋 and
// backward-substituted against 𝐔. If the factorization is singular the
// result carries ±Inf/NaN; check IsNonsingular first.
func (lu *LU) Solve(rhs mat.Matrix) (*mat.Dense, error) {
	if !lu.computed {
		return nil, ErrNotComputed
	}
	if lu.rows != lu.cols {
		return nil, ErrNotSquare
	}
	r, s := rhs.Dims()
	if r != lu.rows {
		return nil, ErrDimension
	}

	n, order := lu.rows, lu.pivot.order
	x := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, s)
		for j := 0; j < s; j++ {
			row[j] = rhs.At(order[i], j)
		}
		x[i] = row
	}

	lu.substitute(x, s)
	return denseOf(x, n, s), nil
}

// Inverse solves against a pivot-permuted identity.
func (lu *LU) Inverse() (*mat.Dense, error) {
	if !lu.computed {
		return nil, ErrNotComputed
	}
	if lu.rows != lu.cols {
		return nil, ErrNotSquare
	}

	n, order := lu.rows, lu.pivot.order
	x := make([][]float64, n)
	for i := 0; i < n; i++ {
		x[i] = make([]float64, n)
		x[i][order[i]] = one
	}

	lu.substitute(x, n)
	return denseOf(x, n, n), nil
}

// substitute runs the forward 𝐋 then backward 𝐔 sweeps in place on x,
// whose rows are already pivot-permuted.
func (lu *LU) substitute(x [][]float64, s int) {
	n := lu.rows

	// Forward substitution against unit-lower 𝐋.
	for i := 1; i < n; i++ {
		for k := 0; k < i; k++ {
			dsub(x[i], x[k], lu.data[i][k], 0, s)
		}
	}

	// Backward substitution against 𝐔 (non-unit diagonal).
	for i := n - 1; i >= 0; i-- {
		dscale(x[i], lu.data[i][i], 0, s)
		for k := 0; k < i; k++ {
			dsub(x[k], x[i], lu.data[k][i], 0, s)
		}
	}
}
