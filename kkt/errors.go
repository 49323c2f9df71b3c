// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kkt

import "errors"

var (
	// ErrMissingBlock indicates a nil Q or C block.
	ErrMissingBlock = errors.New("kkt: neither Q nor C may be nil")
	// ErrLoneBlock indicates that exactly one of A and B is present.
	ErrLoneBlock = errors.New("kkt: A and B must be both present or both absent")
	// ErrDimension indicates inconsistent block dimensions.
	ErrDimension = errors.New("kkt: block dimensions must agree")
	// ErrNotSemidefinite indicates a Q with an eigenvalue below the numeric tolerance.
	ErrNotSemidefinite = errors.New("kkt: Q must be positive semidefinite")
	// ErrRankDeficient indicates an A without full row rank.
	ErrRankDeficient = errors.New("kkt: A must have full row rank")
)
