// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dense

import "math"

// ddot computes the dot product of x[first:limit] and y[first:limit].
func ddot(x, y []float64, first, limit int) (dot float64) {
	if limit <= first {
		return zero
	}
	x, y = x[first:limit], y[first:limit]
	n := uint(len(x))
	if n > uint(len(y)) {
		panic("bound check error")
	}
	m := n % 5
	for i := uint(0); i < m; i++ {
		dot += x[i] * y[i]
	}
	for i := m; i < n; i += 5 {
		a := x[i : i+5 : i+5]
		b := y[i : i+5 : i+5]
		dot += a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3] + a[4]*b[4]
	}
	return dot
}

// dsub performs y[i] -= s·x[i] for i in [first, limit).
func dsub(y, x []float64, s float64, first, limit int) {
	if limit <= first || s == zero {
		return
	}
	y, x = y[first:limit], x[first:limit]
	n := uint(len(y))
	if n > uint(len(x)) {
		panic("bound check error")
	}
	m := n % 4
	for i := uint(0); i < m; i++ {
		y[i] -= s * x[i]
	}
	for i := m; i < n; i += 4 {
		a := y[i : i+4 : i+4]
		b := x[i : i+4 : i+4]
		a[0] -= s * b[0]
		a[1] -= s * b[1]
		a[2] -= s * b[2]
		a[3] -= s * b[3]
	}
}

// dnorm accumulates the Euclidean norm of x[first:limit] without
// intermediate overflow or underflow.
func dnorm(x []float64, first, limit int) (nrm float64) {
	if limit <= first {
		return zero
	}
	for _, v := range x[first:limit] {
		nrm = math.Hypot(nrm, v)
	}
	return nrm
}

// dscale performs x[i] /= d for i in [first, limit).
// Division by a zero d intentionally yields ±Inf/NaN.
func dscale(x []float64, d float64, first, limit int) {
	if limit <= first {
		return
	}
	for i := first; i < limit; i++ {
		x[i] /= d
	}
}
