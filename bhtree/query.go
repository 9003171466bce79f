// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bhtree

import (
	"math"
	"sync/atomic"

	"github.com/cpmech/gosph/vecd"
)

// BallNeighbors returns an upper bound on the set of body indices j
// (j != i) such that |r_ij| < max(h_i, h_j), honouring the periodic
// displacement. Callers must filter the returned list by the actual
// per-pair distance, as the contract in §4.3 requires. If more than
// maxNeighbors candidates are found, the search truncates and records
// the overflow in t.NeighborOverflow (§4.3 Failure / the
// NeighborListOverflow error class); maxNeighbors<=0 disables the cap.
func (t *Tree) BallNeighbors(i int, per vecd.Periodic, maxNeighbors int) []int {
	if t.rootIdx < 0 {
		return nil
	}
	bi := t.bodies[i]
	pos := bi.Coord()
	hi := bi.Smoothing()

	out := make([]int, 0, 64)
	overflow := false
	t.walkBall(t.rootIdx, i, pos, hi, per, maxNeighbors, &out, &overflow)
	if overflow {
		atomic.AddInt64(&t.NeighborOverflow, 1)
	}
	return out
}

func (t *Tree) walkBall(nodeIdx, i int, pos vecd.Vec, hi float64, per vecd.Periodic, maxNeighbors int, out *[]int, overflow *bool) {
	if *overflow {
		return
	}
	n := &t.nodes[nodeIdx]
	if n.mass == 0 && !n.isLeaf {
		return
	}

	// conservative sphere-sphere prune: a node's bodies lie within
	// halfEdge*sqrt(Dim) of its centre, and no body in the subtree has
	// h above n.kernelSize, so no pair with i can satisfy the ball
	// test beyond this bound.
	d := per.Displacement(pos, n.centre).Norm(t.Dim)
	nodeRadius := n.halfEdge * math.Sqrt(float64(t.Dim))
	if d-nodeRadius > hi+n.kernelSize {
		return
	}

	if n.isLeaf {
		for _, bj := range n.bodies {
			j := int(bj)
			if j == i {
				continue
			}
			bj2 := t.bodies[j]
			r := per.Displacement(pos, bj2.Coord()).Norm(t.Dim)
			hMax := hi
			if hj := bj2.Smoothing(); hj > hMax {
				hMax = hj
			}
			if r < hMax {
				if maxNeighbors > 0 && len(*out) >= maxNeighbors {
					*overflow = true
					return
				}
				*out = append(*out, j)
			}
		}
		return
	}

	for _, c := range n.children {
		if c < 0 {
			continue
		}
		t.walkBall(int(c), i, pos, hi, per, maxNeighbors, out, overflow)
	}
}
