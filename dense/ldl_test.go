// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dense

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestLDLReconstruction(t *testing.T) {
	a := mat.NewDense(3, 3, []float64{
		4, 2, 2,
		2, 5, 3,
		2, 3, 6,
	})

	ldl := NewLDL()
	require.True(t, ldl.Decompose(a))
	require.True(t, ldl.IsSPD())
	require.True(t, ldl.IsSolvable())

	l, err := ldl.L()
	require.NoError(t, err)
	d, err := ldl.D()
	require.NoError(t, err)

	var ld, prod mat.Dense
	ld.Mul(l, d)
	prod.Mul(&ld, l.T())
	require.True(t, mat.EqualApprox(a, &prod, 1e-10), "𝐋𝐃𝐋ᵀ = 𝐀 mismatch")
}

func TestLDLDeterminant(t *testing.T) {
	ldl := NewLDL()

	ldl.Decompose(mat.NewDense(2, 2, []float64{
		4, 2,
		2, 3,
	}))
	det, err := ldl.Determinant()
	require.NoError(t, err)
	require.InDelta(t, 8.0, det, tol)
}

func TestLDLIndefinite(t *testing.T) {
	// The unpivoted sweep completes on indefinite input: the
	// violated SPD assumption is a reported condition, not a failure.
	ldl := NewLDL()
	require.True(t, ldl.Decompose(mat.NewDense(2, 2, []float64{
		1, 2,
		2, 1,
	})))

	require.True(t, ldl.IsComputed())
	require.False(t, ldl.IsSPD())
	require.False(t, ldl.IsSolvable())

	det, err := ldl.Determinant()
	require.NoError(t, err)
	require.InDelta(t, -3.0, det, tol)
}

func TestLDLSolve(t *testing.T) {
	a := mat.NewDense(3, 3, []float64{
		4, 2, 2,
		2, 5, 3,
		2, 3, 6,
	})
	want := mat.NewDense(3, 1, []float64{1, 2, 3})
	var b mat.Dense
	b.Mul(a, want)

	ldl := NewLDL()
	ldl.Decompose(a)
	x, err := ldl.Solve(&b)
	require.NoError(t, err)
	require.True(t, mat.EqualApprox(want, x, 1e-10))

	_, err = ldl.Solve(mat.NewDense(2, 1, nil))
	require.ErrorIs(t, err, ErrDimension)
}

func TestLDLInverse(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{
		4, 2,
		2, 3,
	})

	ldl := NewLDL()
	ldl.Decompose(a)
	inv, err := ldl.Inverse()
	require.NoError(t, err)

	var prod mat.Dense
	prod.Mul(a, inv)
	require.True(t, mat.EqualApprox(eye(2), &prod, 1e-10))
}

func TestLDLRank(t *testing.T) {
	ldl := NewLDL()

	ldl.Decompose(eye(4))
	require.Equal(t, 4, ldl.Rank())

	ldl.Decompose(mat.NewDense(3, 3, nil))
	require.Equal(t, 0, ldl.Rank())
}

func TestLDLStateAndIdempotence(t *testing.T) {
	ldl := NewLDL()
	require.False(t, ldl.IsComputed())
	require.False(t, ldl.IsSPD())

	_, err := ldl.Solve(mat.NewDense(2, 1, nil))
	require.ErrorIs(t, err, ErrNotComputed)
	_, err = ldl.Determinant()
	require.ErrorIs(t, err, ErrNotComputed)

	a := mat.NewDense(2, 2, []float64{4, 2, 2, 3})
	b := mat.NewDense(2, 1, []float64{1, 1})

	ldl.Decompose(a)
	det1, _ := ldl.Determinant()
	x1, _ := ldl.Solve(b)
	ldl.Decompose(a)
	det2, _ := ldl.Determinant()
	x2, _ := ldl.Solve(b)

	require.Equal(t, det1, det2)
	require.True(t, mat.Equal(x1, x2))
}
