// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dense

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const tol = 1e-12

// permuted returns a with its rows reordered by order.
func permuted(a *mat.Dense, order []int) *mat.Dense {
	r, c := a.Dims()
	out := mat.NewDense(r, c, nil)
	for i, p := range order {
		out.SetRow(i, mat.Row(nil, p, a))
	}
	return out
}

func TestLUReconstruction(t *testing.T) {
	a := mat.NewDense(3, 3, []float64{
		2, 1, 1,
		4, -6, 0,
		-2, 7, 2,
	})

	lu := NewLU()
	require.True(t, lu.Decompose(a))
	require.True(t, lu.IsNonsingular())
	require.True(t, lu.IsSolvable())

	l, err := lu.L()
	require.NoError(t, err)
	u, err := lu.U()
	require.NoError(t, err)

	var prod mat.Dense
	prod.Mul(l, u)

	pa := permuted(a, lu.PivotOrder())
	require.True(t, mat.EqualApprox(pa, &prod, tol), "𝐏𝐀 = 𝐋𝐔 mismatch")
}

func TestLUDeterminant(t *testing.T) {
	lu := NewLU()

	lu.Decompose(mat.NewDense(3, 3, []float64{
		2, 1, 1,
		4, -6, 0,
		-2, 7, 2,
	}))
	det, err := lu.Determinant()
	require.NoError(t, err)
	require.InDelta(t, -16.0, det, tol)

	// An odd number of row exchanges must flip the sign.
	lu.Decompose(mat.NewDense(2, 2, []float64{
		0, 1,
		1, 0,
	}))
	require.True(t, lu.IsPivoted())
	det, err = lu.Determinant()
	require.NoError(t, err)
	require.InDelta(t, -1.0, det, tol)

	lu.Decompose(mat.NewDense(2, 3, nil))
	_, err = lu.Determinant()
	require.ErrorIs(t, err, ErrNotSquare)
}

func TestLUSolve(t *testing.T) {
	a := mat.NewDense(3, 3, []float64{
		4, 1, 0,
		1, 5, 2,
		0, 2, 6,
	})
	want := mat.NewDense(3, 2, []float64{
		1, -1,
		2, 0,
		3, 2,
	})
	var b mat.Dense
	b.Mul(a, want)

	lu := NewLU()
	lu.Decompose(a)
	x, err := lu.Solve(&b)
	require.NoError(t, err)
	require.True(t, mat.EqualApprox(want, x, 1e-10))

	_, err = lu.Solve(mat.NewDense(2, 1, nil))
	require.ErrorIs(t, err, ErrDimension)
}

func TestLUInverse(t *testing.T) {
	a := mat.NewDense(3, 3, []float64{
		2, 1, 1,
		4, -6, 0,
		-2, 7, 2,
	})

	lu := NewLU()
	lu.Decompose(a)
	inv, err := lu.Inverse()
	require.NoError(t, err)

	var prod mat.Dense
	prod.Mul(a, inv)
	require.True(t, mat.EqualApprox(eye(3), &prod, 1e-10))
}

func TestLUSingular(t *testing.T) {
	lu := NewLU()
	lu.Decompose(mat.NewDense(2, 2, []float64{
		1, 2,
		2, 4,
	}))

	require.False(t, lu.IsNonsingular())
	require.False(t, lu.IsSolvable())
	require.Equal(t, 1, lu.Rank())

	det, err := lu.Determinant()
	require.NoError(t, err)
	require.Equal(t, 0.0, det)

	// Solving against a singular 𝐔 completes and propagates ±Inf/NaN.
	x, err := lu.Solve(mat.NewDense(2, 1, []float64{1, 1}))
	require.NoError(t, err)
	degenerate := false
	for i := 0; i < 2; i++ {
		v := x.At(i, 0)
		degenerate = degenerate || math.IsNaN(v) || math.IsInf(v, 0)
	}
	require.True(t, degenerate, "expected Inf/NaN in singular solve, got %v", mat.Formatted(x))
}

func TestLURank(t *testing.T) {
	lu := NewLU()

	lu.Decompose(eye(4))
	require.Equal(t, 4, lu.Rank())

	lu.Decompose(mat.NewDense(3, 3, nil))
	require.Equal(t, 0, lu.Rank())
}

func TestLUStateAndIdempotence(t *testing.T) {
	lu := NewLU()
	require.False(t, lu.IsComputed())
	require.False(t, lu.IsNonsingular())

	_, err := lu.Solve(mat.NewDense(2, 1, nil))
	require.ErrorIs(t, err, ErrNotComputed)
	_, err = lu.Determinant()
	require.ErrorIs(t, err, ErrNotComputed)
	_, err = lu.Inverse()
	require.ErrorIs(t, err, ErrNotComputed)

	a := mat.NewDense(2, 2, []float64{3, 1, 1, 2})
	b := mat.NewDense(2, 1, []float64{1, 1})

	lu.Decompose(a)
	det1, _ := lu.Determinant()
	x1, _ := lu.Solve(b)

	// Re-decomposing the same input yields identical derived state.
	lu.Decompose(a)
	det2, _ := lu.Determinant()
	x2, _ := lu.Solve(b)

	require.Equal(t, det1, det2)
	require.True(t, mat.Equal(x1, x2))
}

func eye(n int) *mat.Dense {
	out := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		out.Set(i, i, 1)
	}
	return out
}
