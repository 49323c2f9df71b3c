// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kkt solves the saddle-point (Karush-Kuhn-Tucker) linear systems
// of equality-constrained quadratic programs:
//
//	⎡ 𝐐  𝐀ᵀ ⎤ ⎡𝐗⎤   ⎡𝐂⎤
//	⎣ 𝐀  ೦  ⎦ ⎣𝐋⎦ = ⎣𝐁⎦
//
// When the KKT matrix is nonsingular there is a unique optimal primal-dual
// pair (𝐗, 𝐋). When it is singular but the system is still solvable, any
// solution yields an optimal pair. When the system is not solvable, the
// program is unbounded below or infeasible.
package kkt

import "gonum.org/v1/gonum/mat"

// Input carries the blocks of a KKT system. Q (the objective Hessian,
// n×n) and C (the linear term, n×k) are mandatory; A (constraints, m×n)
// and B (constraint right-hand side, m×k) are both nil for an
// unconstrained problem.
type Input struct {
	Q, C, A, B mat.Matrix
}

// Constrained reports whether a non-empty constraint block is present.
func (in *Input) Constrained() bool {
	if in.A == nil {
		return false
	}
	r, c := in.A.Dims()
	return r > 0 && c > 0
}

// System assembles the full augmented KKT matrix [[𝐐, 𝐀ᵀ],[𝐀, ೦]],
// or just 𝐐 when unconstrained.
func (in *Input) System() *mat.Dense {
	if !in.Constrained() {
		return mat.DenseCopyOf(in.Q)
	}
	m, _ := in.A.Dims()
	var top, bottom, sys mat.Dense
	top.Augment(in.Q, in.A.T())
	bottom.Augment(in.A, mat.NewDense(m, m, nil))
	sys.Stack(&top, &bottom)
	return &sys
}

// RHS stacks the right-hand side [𝐂; 𝐁], or just 𝐂 when unconstrained.
func (in *Input) RHS() *mat.Dense {
	if !in.Constrained() {
		return mat.DenseCopyOf(in.C)
	}
	var rhs mat.Dense
	rhs.Stack(in.C, in.B)
	return &rhs
}

// check validates block presence and dimensional consistency.
// These are structural faults, reported unconditionally.
func (in *Input) check() error {
	if in.Q == nil || in.C == nil {
		return ErrMissingBlock
	}
	if (in.A == nil) != (in.B == nil) {
		return ErrLoneBlock
	}

	qr, qc := in.Q.Dims()
	cr, ck := in.C.Dims()
	if qr != qc || cr != qr {
		return ErrDimension
	}
	if in.A != nil {
		ar, ac := in.A.Dims()
		br, bk := in.B.Dims()
		if ac != qc || br != ar || bk != ck {
			return ErrDimension
		}
	}
	return nil
}

// Output carries the primal solution X (n×k), the Lagrange multipliers L
// (m×k, zero rows when unconstrained) and the Solvable verdict. X and L
// hold the last values any fallback tier computed, so they are only
// meaningful when Solvable is true.
type Output struct {
	X, L     *mat.Dense
	Solvable bool
}
