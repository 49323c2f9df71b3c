// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dense

// pivot is the row permutation accumulated during LU elimination:
// an order sequence, its signum and a flag telling whether any
// exchange happened at all. It is built once per decomposition and
// read-only afterwards.
type pivot struct {
	order    []int
	sign     int
	modified bool
}

func newPivot(n int) *pivot {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return &pivot{order: order, sign: 1}
}

// change swaps entries i and j of the permutation and flips the signum.
func (p *pivot) change(i, j int) {
	if i == j {
		return
	}
	p.order[i], p.order[j] = p.order[j], p.order[i]
	p.sign = -p.sign
	p.modified = true
}

// signum is the determinant of the permutation: +1 for an even number
// of exchanges, -1 for an odd number.
func (p *pivot) signum() float64 {
	return float64(p.sign)
}
