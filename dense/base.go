// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dense provides in-place factorizations of dense real matrices:
// 𝐋𝐔 with partial pivoting, Householder 𝐐𝐑 and an unpivoted 𝐋𝐃𝐋ᵀ.
//
// Each factorizer copies its input into a private workspace and transforms
// that workspace in place; the caller's matrix is never mutated. Queries
// (solve, inverse, determinant, rank) read off the workspace and stay valid
// until the next Decompose call. Instances are not safe for concurrent use:
// one factorizer owns exactly one workspace, so callers running decompositions
// from several goroutines need one instance per goroutine.
//
// Numerical degeneracy is never reported through errors. A singular 𝐔,
// a rank-deficient 𝐑 or an indefinite 𝐃 leave the factorization computed
// and queryable; the corresponding predicate (IsNonsingular,
// IsFullColumnRank, IsSPD) is the only reliable signal. Solving against a
// singular factorization propagates ±Inf/NaN instead of failing.
package dense

import "errors"

const (
	zero = 0.0
	one  = 1.0
	eps  = float64(7)/3 - float64(4)/3 - 1.
)

var (
	// ErrNotComputed indicates a query on a factorizer before a successful Decompose.
	ErrNotComputed = errors.New("dense: no decomposition computed")
	// ErrNotSquare indicates a square-only operation on a rectangular workspace.
	ErrNotSquare = errors.New("dense: matrix must be square")
	// ErrDimension indicates a right-hand side whose row count disagrees with the workspace.
	ErrDimension = errors.New("dense: dimensions must agree")
	// ErrRankDeficient indicates a QR solve against a factorization without full column rank.
	ErrRankDeficient = errors.New("dense: matrix is rank deficient")
)
