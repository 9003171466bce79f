// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package bhtree implements the Barnes-Hut spatial tree used both for
// adaptive-kernel neighbour search and for gravitational force
// summation with an opening-angle criterion. Nodes are arena-allocated
// with stable integer indices (Design Notes §9): parent-child
// relations are indices into a flat slice, not pointers, so a rebuild
// is a sequence of appends into pre-sized slices and a parallel
// traversal only ever reads the arena.
package bhtree

import (
	"github.com/cpmech/gosph/vecd"
)

// Body is the narrow read-only view the tree needs of whatever the
// caller's particle type is. It is satisfied structurally (see
// particle.Body) so this package never imports the particle package.
type Body interface {
	Coord() vecd.Vec
	Smoothing() float64
	BodyMass() float64
	Index() int
}

// maxChildren is 2^D for D in {1,2,3}: 2, 4, 8.
func maxChildren(dim int) int {
	switch dim {
	case 1:
		return 2
	case 2:
		return 4
	default:
		return 8
	}
}

// node is one arena slot: a bounding cube (centre, half-edge), the
// aggregate mass and centre-of-mass of its subtree, the maximum
// smoothing length in its subtree (kernelSize, used to safely widen a
// ball query), the arena index of the child in each octant (or -1),
// a leaf's linked list of body indices, and a leaf flag.
type node struct {
	centre    vecd.Vec
	halfEdge  float64

	mass      float64
	com       vecd.Vec // centre of mass
	kernelSize float64 // max smoothing length over subtree

	children  [8]int32 // index into tree.nodes, or -1; only [0:maxChildren) meaningful
	isLeaf    bool
	bodies    []int32 // body indices contained directly (leaf only)
}

// Tree is the arena-backed Barnes-Hut tree over the current particle
// snapshot. It is rebuilt every step (§3 Lifecycle) from the current
// Bodies and is read-only for the remainder of the step, which is what
// makes concurrent queries against it safe without locks.
type Tree struct {
	Dim             int
	LeafParticleNum int // split threshold
	MaxLevel        int // max recursion depth

	nodes   []node
	bodies  []Body
	rootIdx int

	// NeighborOverflow counts how many BallNeighbors queries since the
	// last build found more candidates than MaxNeighbors and were truncated (§4.3
	// Failure / NeighborListOverflow in the error taxonomy). BallNeighbors
	// runs concurrently across goroutines in the parallel force loops, so
	// this is incremented with sync/atomic rather than a plain ++.
	NeighborOverflow int64
}

// New returns an empty Tree configured for dimension dim, splitting
// cells once they hold more than leafParticleNum bodies, down to
// maxLevel recursion depth.
func New(dim, leafParticleNum, maxLevel int) *Tree {
	return &Tree{Dim: dim, LeafParticleNum: leafParticleNum, MaxLevel: maxLevel}
}

// Stats is a side-channel diagnostic snapshot of the last build,
// mirroring the kind of diagnostic map the Output collaborator keeps
// for its own domain (out.Ipoints et al. in the teacher repo).
type Stats struct {
	NumNodes         int
	MaxDepthReached  int
	NeighborOverflow int64
}
