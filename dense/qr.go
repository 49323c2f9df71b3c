// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dense

import "gonum.org/v1/gonum/mat"

// QR factorizes an m×n matrix (m ≥ n) into 𝐀 = 𝐐𝐑 with economy-size
// orthogonal 𝐐 and upper triangular 𝐑, built from Householder reflections
// column by column.
//
// The workspace stores the input transposed, so each sweep touches one
// contiguous column. After Decompose, column k holds the k-th Householder
// vector from the diagonal down and the off-diagonal entries of 𝐑 above it;
// the diagonal of 𝐑 is kept separately in diagR with its sign negated.
type QR struct {
	decomposition
	diagR []float64
}

// NewQR returns a QR factorizer with an empty workspace.
func NewQR() *QR { return new(QR) }

// Decompose factorizes a copy of m in place. For each column k the 2-norm
// of the sub-column [k, m) is accumulated hypotenuse-style to avoid
// overflow, negated to match the sign of the pivot entry (avoiding
// cancellation), and stored as -‖·‖ in diagR. The normalized sub-column
// plus one on the pivot forms the Householder vector 𝐮, and every
// remaining column c is updated with c -= (𝐮ᵀc / 𝐮ₖ)·𝐮.
//
// A zero norm means the column already lies in the span of its
// predecessors: the reflection is skipped and diagR[k] stays zero, which is
// the rank-deficiency flag read by IsFullColumnRank.
func (qr *QR) Decompose(m mat.Matrix) bool {
	qr.reset()
	qr.diagR = nil

	data := qr.setInPlace(m, true)
	rows, cols := qr.rows, qr.cols
	qr.diagR = make([]float64, cols)

	for k := 0; k < cols; k++ {
		colK := data[k]

		nrm := dnorm(colK, k, rows)
		if nrm != zero {

			// Form the k-th Householder vector.
			if colK[k] < zero {
				nrm = -nrm
			}
			dscale(colK, nrm, k, rows)
			colK[k] += one

			// Apply the transformation to the remaining columns.
			for j := k + 1; j < cols; j++ {
				s := ddot(colK, data[j], k, rows) / colK[k]
				dsub(data[j], colK, s, k, rows)
			}
		}
		qr.diagR[k] = -nrm
	}

	qr.computed = true
	return true
}

// IsFullColumnRank reports whether no diagonal entry of 𝐑 is exactly zero.
func (qr *QR) IsFullColumnRank() bool {
	if !qr.computed {
		return false
	}
	for _, d := range qr.diagR {
		if d == zero {
			return false
		}
	}
	return true
}

// IsSolvable is an alias for IsFullColumnRank.
func (qr *QR) IsSolvable() bool { return qr.IsFullColumnRank() }

// Rank estimates the rank of the factorized matrix from the diagonal of 𝐑
// with a relative magnitude tolerance.
func (qr *QR) Rank() int {
	if !qr.computed {
		return 0
	}
	return qr.rankOf(qr.diagR)
}

// Determinant is the product of the diagonal of 𝐑.
// It only carries meaning when the factorized matrix is square.
func (qr *QR) Determinant() (float64, error) {
	if !qr.computed {
		return zero, ErrNotComputed
	}
	det := one
	for _, d := range qr.diagR {
		det *= d
	}
	return det, nil
}

// Q reconstructs the economy-size orthogonal factor by back-accumulating
// the stored reflections from the last column to the first, starting from
// the identity.
func (qr *QR) Q() (*mat.Dense, error) {
	if !qr.computed {
		return nil, ErrNotComputed
	}
	m, n := qr.rows, qr.cols

	// q[j] is the j-th column of the result.
	q := make([][]float64, n)
	for j := range q {
		q[j] = make([]float64, m)
	}

	for k := n - 1; k >= 0; k-- {
		colK := qr.data[k]
		for i := range q[k] {
			q[k][i] = zero
		}
		q[k][k] = one
		if colK[k] != zero {
			for j := k; j < n; j++ {
				s := ddot(colK, q[j], k, m) / colK[k]
				dsub(q[j], colK, s, k, m)
			}
		}
	}

	out := mat.NewDense(m, n, nil)
	for j := 0; j < n; j++ {
		for i := 0; i < m; i++ {
			out.Set(i, j, q[j][i])
		}
	}
	return out, nil
}

// R assembles the upper triangular factor from diagR and the entries the
// reflections left above the diagonal of the workspace.
func (qr *QR) R() (*mat.Dense, error) {
	if !qr.computed {
		return nil, ErrNotComputed
	}
	n := qr.cols
	out := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		out.Set(i, i, qr.diagR[i])
		for j := i + 1; j < n; j++ {
			out.Set(i, j, qr.data[j][i])
		}
	}
	return out, nil
}

// Solve computes the least-squares solution of 𝐀𝐗 ≅ rhs: 𝐘 = 𝐐ᵀ·rhs by
// successive application of the stored reflections, then back-substitution
// of 𝐑𝐗 = 𝐘. It fails when the right-hand side row count disagrees with
// the factorized matrix or when the factorization lacks full column rank.
func (qr *QR) Solve(rhs mat.Matrix) (*mat.Dense, error) {
	if !qr.computed {
		return nil, ErrNotComputed
	}
	m, n := qr.rows, qr.cols
	r, s := rhs.Dims()
	if r != m {
		return nil, ErrDimension
	}
	if !qr.IsFullColumnRank() {
		return nil, ErrRankDeficient
	}

	// Copy the right-hand side column-wise.
	y := make([][]float64, s)
	for j := range y {
		col := make([]float64, m)
		for i := 0; i < m; i++ {
			col[i] = rhs.At(i, j)
		}
		y[j] = col
	}

	// Compute 𝐘 = 𝐐ᵀ·rhs.
	for k := 0; k < n; k++ {
		colK := qr.data[k]
		for j := 0; j < s; j++ {
			v := ddot(colK, y[j], k, m) / colK[k]
			dsub(y[j], colK, v, k, m)
		}
	}

	// Solve 𝐑𝐗 = 𝐘.
	for k := n - 1; k >= 0; k-- {
		colK := qr.data[k]
		d := qr.diagR[k]
		for j := 0; j < s; j++ {
			y[j][k] /= d
			dsub(y[j], colK, y[j][k], 0, k)
		}
	}

	// The first n rows hold the solution.
	out := mat.NewDense(n, s, nil)
	for j := 0; j < s; j++ {
		for i := 0; i < n; i++ {
			out.Set(i, j, y[j][i])
		}
	}
	return out, nil
}
