// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dense

import "gonum.org/v1/gonum/mat"

// LDL factorizes 𝐀 = 𝐋𝐃𝐋ᵀ without pivoting: unit-lower 𝐋 is stored below
// the workspace diagonal and diagonal 𝐃 on it. This is the Cholesky-role
// factorizer: it assumes SPD-like input and reports a violated assumption
// through IsSPD instead of failing, so an indefinite matrix still yields a
// (numerically fragile) factorization.
type LDL struct {
	decomposition
	spd bool
}

// NewLDL returns an LDL factorizer with an empty workspace.
func NewLDL() *LDL { return new(LDL) }

// Decompose factorizes a copy of m in place. For each index ij along the
// diagonal: a scratch row collects 𝐋[ij][j]·𝐃[j], the pivot is
// 𝐃[ij] = m[ij][ij] - 𝐋[ij]·scratch, and each entry below it becomes
// 𝐋[i][ij] = (m[i][ij] - 𝐋[i]·scratch) / 𝐃[ij].
//
// The SPD flag starts as "m is square" and is cleared permanently by any
// pivot ≤ 0; the sweep itself continues unconditionally, so a zero pivot
// propagates ±Inf/NaN into the multipliers below it.
func (ldl *LDL) Decompose(m mat.Matrix) bool {
	ldl.reset()
	ldl.spd = false

	data := ldl.setInPlace(m, false)
	diagDim := min(ldl.rows, ldl.cols)
	ldl.spd = ldl.rows == ldl.cols

	rowIJ := make([]float64, diagDim)

	for ij := 0; ij < diagDim; ij++ {
		rowI := data[ij]

		for j := 0; j < ij; j++ {
			rowIJ[j] = rowI[j] * data[j][j]
		}

		d := m.At(ij, ij) - ddot(rowI, rowIJ, 0, ij)
		rowI[ij] = d
		ldl.spd = ldl.spd && d > zero

		// Update the column below the current row.
		for i := ij + 1; i < ldl.rows; i++ {
			data[i][ij] = (m.At(i, ij) - ddot(data[i], rowIJ, 0, ij)) / d
		}
	}

	ldl.computed = true
	return true
}

// IsSPD reports whether every pivot of 𝐃 stayed strictly positive, which
// for symmetric input certifies positive definiteness.
func (ldl *LDL) IsSPD() bool {
	return ldl.computed && ldl.spd
}

// IsSolvable is an alias for IsSPD: the unpivoted sweep is only trusted as
// a solver when the input was positive definite.
func (ldl *LDL) IsSolvable() bool { return ldl.IsSPD() }

// Determinant is the product of the diagonal of 𝐃.
func (ldl *LDL) Determinant() (float64, error) {
	if !ldl.computed {
		return zero, ErrNotComputed
	}
	det := one
	for ij := 0; ij < min(ldl.rows, ldl.cols); ij++ {
		det *= ldl.data[ij][ij]
	}
	return det, nil
}

// Rank estimates the rank of the factorized matrix from the diagonal of 𝐃
// with a relative magnitude tolerance. For indefinite input the unpivoted
// sweep makes this a heuristic, not a certificate.
func (ldl *LDL) Rank() int {
	if !ldl.computed {
		return 0
	}
	diag := make([]float64, min(ldl.rows, ldl.cols))
	for ij := range diag {
		diag[ij] = ldl.data[ij][ij]
	}
	return ldl.rankOf(diag)
}

// D extracts the diagonal factor.
func (ldl *LDL) D() (*mat.Dense, error) {
	if !ldl.computed {
		return nil, ErrNotComputed
	}
	n := min(ldl.rows, ldl.cols)
	out := mat.NewDense(n, n, nil)
	for ij := 0; ij < n; ij++ {
		out.Set(ij, ij, ldl.data[ij][ij])
	}
	return out, nil
}

// L extracts the unit-lower triangular factor.
func (ldl *LDL) L() (*mat.Dense, error) {
	if !ldl.computed {
		return nil, ErrNotComputed
	}
	n := min(ldl.rows, ldl.cols)
	out := mat.NewDense(ldl.rows, n, nil)
	for i := 0; i < ldl.rows; i++ {
		for j := 0; j < min(i, n); j++ {
			out.Set(i, j, ldl.data[i][j])
		}
		if i < n {
			out.Set(i, i, one)
		}
	}
	return out, nil
}

// Solve computes 𝐗 with 𝐀𝐗 = rhs by forward substitution against unit 𝐋,
// row-wise division by 𝐃 and backward substitution against unit 𝐋ᵀ (read
// transposed from the lower buffer).
func (ldl *LDL) Solve(rhs mat.Matrix) (*mat.Dense, error) {
	if !ldl.computed {
		return nil, ErrNotComputed
	}
	if ldl.rows != ldl.cols {
		return nil, ErrNotSquare
	}
	r, s := rhs.Dims()
	if r != ldl.rows {
		return nil, ErrDimension
	}

	n := ldl.rows
	x := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, s)
		for j := 0; j < s; j++ {
			row[j] = rhs.At(i, j)
		}
		x[i] = row
	}

	ldl.substitute(x, s)
	return denseOf(x, n, s), nil
}

// Inverse solves against the identity.
func (ldl *LDL) Inverse() (*mat.Dense, error) {
	if !ldl.computed {
		return nil, ErrNotComputed
	}
	if ldl.rows != ldl.cols {
		return nil, ErrNotSquare
	}

	n := ldl.rows
	x := make([][]float64, n)
	for i := 0; i < n; i++ {
		x[i] = make([]float64, n)
		x[i][i] = one
	}

	ldl.substitute(x, n)
	return denseOf(x, n, n), nil
}

func (ldl *LDL) substitute(x [][]float64, s int) {
	n := ldl.rows

	// Forward substitution against unit-lower 𝐋.
	for i := 1; i < n; i++ {
		for k := 0; k < i; k++ {
			dsub(x[i], x[k], ldl.data[i][k], 0, s)
		}
	}

	// Row-wise division by 𝐃.
	for i := 0; i < n; i++ {
		dscale(x[i], ldl.data[i][i], 0, s)
	}

	// Backward substitution against unit-upper 𝐋ᵀ.
	for i := n - 2; i >= 0; i-- {
		for k := i + 1; k < n; k++ {
			dsub(x[i], x[k], ldl.data[k][i], 0, s)
		}
	}
}
