// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kkt

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/curioloop/quadprog/dense"
)

const (
	zero = 0.0
	eps  = float64(7)/3 - float64(4)/3 - 1.
)

// Solver solves KKT systems with a tiered fallback: direct elimination
// when the constraint block alone pins down the solution, a Schur
// complement reduction when 𝐐 is positive definite, and an LU of the full
// augmented system when both shortcuts degenerate.
//
// A Solver owns one Cholesky-role LDL factorizer and one LU factorizer and
// reuses them across calls, so it must not be shared between goroutines
// without external synchronization.
type Solver struct {
	cholesky *dense.LDL
	lu       *dense.LU
}

// NewSolver returns a Solver with fresh factorizer workspaces.
func NewSolver() *Solver {
	return &Solver{cholesky: dense.NewLDL(), lu: dense.NewLU()}
}

// Solve runs the fallback tiers in priority order and short-circuits on
// the first one that produces a nonsingular factorization. Structural
// faults (missing or mismatched blocks) are returned as errors; numerical
// degeneracy is absorbed into Output.Solvable, which callers must check
// before trusting X and L.
func (s *Solver) Solve(in Input) (Output, error) {
	if err := in.check(); err != nil {
		return Output{}, err
	}

	out := Output{X: &mat.Dense{}, L: &mat.Dense{}}
	tiers := []func(Input, *Output) bool{
		s.solveElimination,
		s.solveSchur,
		s.solveAugmented,
	}
	for _, tier := range tiers {
		if tier(in, &out) {
			out.Solvable = true
			break
		}
	}
	return out, nil
}

// SolveValidated runs Validate before Solve.
func (s *Solver) SolveValidated(in Input) (Output, error) {
	if err := s.Validate(in); err != nil {
		return Output{}, err
	}
	return s.Solve(in)
}

// solveElimination handles a constrained system whose 𝐀 is square and
// nonsingular: there is exactly one feasible point, so 𝐀𝐗 = 𝐁 determines
// the primal directly and 𝐀ᵀ𝐋 = 𝐂 - 𝐐𝐗 recovers the multipliers.
func (s *Solver) solveElimination(in Input, out *Output) bool {
	if !in.Constrained() {
		return false
	}
	if ar, ac := in.A.Dims(); ar != ac {
		return false
	}
	if !s.lu.Decompose(in.A) || !s.lu.IsSolvable() {
		return false
	}

	x, err := s.lu.Solve(in.B)
	if err != nil {
		return false
	}

	var qx, rhs mat.Dense
	qx.Mul(in.Q, x)
	rhs.Sub(in.C, &qx)

	s.lu.Decompose(in.A.T())
	l, err := s.lu.Solve(&rhs)
	if err != nil {
		return false
	}

	out.X, out.L = x, l
	return true
}

// solveSchur handles a positive definite 𝐐. Unconstrained systems reduce
// to 𝐐𝐗 = 𝐂. Constrained ones eliminate the primal block through the
// negated Schur complement 𝐒 = 𝐀·𝐐⁻¹·𝐀ᵀ: solve 𝐒𝐋 = 𝐀𝐐⁻¹𝐂 - 𝐁 for the
// multipliers, then back-substitute 𝐐𝐗 = 𝐂 - 𝐀ᵀ𝐋.
func (s *Solver) solveSchur(in Input, out *Output) bool {
	if !s.cholesky.Decompose(in.Q) || !s.cholesky.IsSolvable() {
		return false
	}

	if !in.Constrained() {
		x, err := s.cholesky.Solve(in.C)
		if err != nil {
			return false
		}
		out.X, out.L = x, &mat.Dense{}
		return true
	}

	invQAT, err := s.cholesky.Solve(in.A.T())
	if err != nil {
		return false
	}
	var schur mat.Dense
	schur.Mul(in.A, invQAT)
	if !s.lu.Decompose(&schur) || !s.lu.IsSolvable() {
		return false
	}

	invQC, err := s.cholesky.Solve(in.C)
	if err != nil {
		return false
	}
	var aInvQC, rhsL mat.Dense
	aInvQC.Mul(in.A, invQC)
	rhsL.Sub(&aInvQC, in.B)
	l, err := s.lu.Solve(&rhsL)
	if err != nil {
		return false
	}

	var atl, rhsX mat.Dense
	atl.Mul(in.A.T(), l)
	rhsX.Sub(in.C, &atl)
	x, err := s.cholesky.Solve(&rhsX)
	if err != nil {
		return false
	}

	out.X, out.L = x, l
	return true
}

// solveAugmented factorizes the full symmetric-indefinite augmented matrix
// and splits the combined solution into the primal and multiplier blocks
// by row range.
func (s *Solver) solveAugmented(in Input, out *Output) bool {
	if !s.lu.Decompose(in.System()) || !s.lu.IsSolvable() {
		return false
	}

	xl, err := s.lu.Solve(in.RHS())
	if err != nil {
		return false
	}

	n, _ := in.Q.Dims()
	rows, k := xl.Dims()
	out.X = mat.DenseCopyOf(xl.Slice(0, n, 0, k))
	if rows > n {
		out.L = mat.DenseCopyOf(xl.Slice(n, rows, 0, k))
	} else {
		out.L = &mat.Dense{}
	}
	return true
}

// Validate is the opt-in pre-check: blocks must be present and consistent,
// 𝐐 must be at least positive semidefinite, and 𝐀 must have full row
// rank. Unlike the degeneracy the fallback tiers absorb, a validation
// failure means the problem statement itself is invalid.
func (s *Solver) Validate(in Input) error {
	if err := in.check(); err != nil {
		return err
	}

	if !s.cholesky.Decompose(in.Q) || !s.cholesky.IsSPD() {
		// Not positive definite. Check if at least positive semidefinite.
		if err := checkSemidefinite(in.Q); err != nil {
			return err
		}
	}

	if in.A != nil {
		ar, ac := in.A.Dims()
		a := in.A
		if ar < ac {
			a = in.A.T()
		}
		s.lu.Decompose(a)
		if s.lu.Rank() != ar {
			return ErrRankDeficient
		}
	}
	return nil
}

// checkSemidefinite verifies through an eigenvalue decomposition of the
// symmetric part of q that no eigenvalue falls below -n·ε·max|λ|.
func checkSemidefinite(q mat.Matrix) error {
	n, _ := q.Dims()
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, (q.At(i, j)+q.At(j, i))/2)
		}
	}

	var eig mat.EigenSym
	if !eig.Factorize(sym, false) {
		return ErrNotSemidefinite
	}
	values := eig.Values(nil)

	largest := zero
	for _, v := range values {
		largest = math.Max(largest, math.Abs(v))
	}
	tol := float64(n) * eps * largest
	for _, v := range values {
		if v < -tol {
			return ErrNotSemidefinite
		}
	}
	return nil
}
