// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bhtree

import (
	"gonum.org/x/gonum/floats"

	"github.com/cpmech/gosph/vecd"
)

// Build (re)constructs the tree from scratch over bodies. This is the
// only place nodes are allocated; queries never mutate the arena.
func (t *Tree) Build(bodies []Body) {
	t.bodies = bodies
	t.NeighborOverflow = 0
	t.nodes = t.nodes[:0]
	if len(bodies) == 0 {
		t.rootIdx = -1
		return
	}

	centre, halfEdge := t.boundingCube(bodies)
	idxs := make([]int32, len(bodies))
	for i := range bodies {
		idxs[i] = int32(i)
	}
	t.rootIdx = t.buildNode(idxs, centre, halfEdge, 0)
}

// boundingCube returns a cube (equal half-edge on every axis) that
// contains every body, with a small epsilon pad so a body exactly on
// the boundary never falls outside during octant classification.
func (t *Tree) boundingCube(bodies []Body) (centre vecd.Vec, halfEdge float64) {
	min := bodies[0].Coord()
	max := min
	for _, b := range bodies[1:] {
		p := b.Coord()
		for d := 0; d < t.Dim; d++ {
			if p[d] < min[d] {
				min[d] = p[d]
			}
			if p[d] > max[d] {
				max[d] = p[d]
			}
		}
	}
	var extent float64
	for d := 0; d < t.Dim; d++ {
		c := (min[d] + max[d]) / 2
		centre[d] = c
		if e := max[d] - min[d]; e > extent {
			extent = e
		}
	}
	halfEdge = extent/2 + 1e-9
	if halfEdge == 0 {
		halfEdge = 1e-9
	}
	return
}

// octant returns the child bucket index (0..2^Dim-1) of p relative to centre.
func (t *Tree) octant(p, centre vecd.Vec) int {
	o := 0
	for d := 0; d < t.Dim; d++ {
		if p[d] >= centre[d] {
			o |= 1 << uint(d)
		}
	}
	return o
}

// childCentre returns the centre of the child cell in direction oct,
// given the parent's centre and half-edge.
func (t *Tree) childCentre(centre vecd.Vec, halfEdge float64, oct int) vecd.Vec {
	c := centre
	q := halfEdge / 2
	for d := 0; d < t.Dim; d++ {
		if oct&(1<<uint(d)) != 0 {
			c[d] += q
		} else {
			c[d] -= q
		}
	}
	return c
}

// buildNode recursively builds the subtree over idxs and returns its
// arena index. idxs is consumed (may be reordered/partitioned).
func (t *Tree) buildNode(idxs []int32, centre vecd.Vec, halfEdge float64, depth int) int {
	n := node{centre: centre, halfEdge: halfEdge}
	nodeIdx := len(t.nodes)
	t.nodes = append(t.nodes, n)
	for i := range t.nodes[nodeIdx].children {
		t.nodes[nodeIdx].children[i] = -1
	}

	if len(idxs) <= t.LeafParticleNum || depth >= t.MaxLevel {
		t.nodes[nodeIdx].isLeaf = true
		t.nodes[nodeIdx].bodies = idxs
		t.summarizeLeaf(nodeIdx)
		return nodeIdx
	}

	nc := maxChildren(t.Dim)
	buckets := make([][]int32, nc)
	for _, bi := range idxs {
		o := t.octant(t.bodies[bi].Coord(), centre)
		buckets[o] = append(buckets[o], bi)
	}

	var mass float64
	var com vecd.Vec
	var kernelSize float64
	for o := 0; o < nc; o++ {
		if len(buckets[o]) == 0 {
			continue
		}
		// a bucket identical to the parent set (all bodies coincide)
		// would recurse forever; fall back to a leaf in that case.
		if len(buckets[o]) == len(idxs) {
			t.nodes[nodeIdx].isLeaf = true
			t.nodes[nodeIdx].bodies = idxs
			t.summarizeLeaf(nodeIdx)
			return nodeIdx
		}
		childCentre := t.childCentre(centre, halfEdge, o)
		childIdx := t.buildNode(buckets[o], childCentre, halfEdge/2, depth+1)
		t.nodes[nodeIdx].children[o] = int32(childIdx)
		cm := t.nodes[childIdx].mass
		com = com.AddScaled(t.nodes[childIdx].com, cm)
		mass += cm
		if t.nodes[childIdx].kernelSize > kernelSize {
			kernelSize = t.nodes[childIdx].kernelSize
		}
	}
	if mass > 0 {
		com = com.Scale(1 / mass)
	}
	t.nodes[nodeIdx].mass = mass
	t.nodes[nodeIdx].com = com
	t.nodes[nodeIdx].kernelSize = kernelSize
	return nodeIdx
}

// summarizeLeaf computes a leaf's aggregate mass, centre of mass and
// maximum smoothing length directly from its contained bodies.
func (t *Tree) summarizeLeaf(nodeIdx int) {
	n := &t.nodes[nodeIdx]
	masses := make([]float64, len(n.bodies))
	var com vecd.Vec
	var kernelSize float64
	for i, bi := range n.bodies {
		b := t.bodies[bi]
		m := b.BodyMass()
		masses[i] = m
		com = com.AddScaled(b.Coord(), m)
		if h := b.Smoothing(); h > kernelSize {
			kernelSize = h
		}
	}
	mass := floats.Sum(masses)
	if mass > 0 {
		com = com.Scale(1 / mass)
	}
	n.mass = mass
	n.com = com
	n.kernelSize = kernelSize
}

// Stats returns a diagnostic snapshot of the tree built by the last Build call.
func (t *Tree) Stats() Stats {
	depth := t.maxDepth(t.rootIdx, 0)
	return Stats{NumNodes: len(t.nodes), MaxDepthReached: depth, NeighborOverflow: t.NeighborOverflow}
}

func (t *Tree) maxDepth(idx, depth int) int {
	if idx < 0 {
		return depth
	}
	n := &t.nodes[idx]
	if n.isLeaf {
		return depth
	}
	best := depth
	for _, c := range n.children {
		if c < 0 {
			continue
		}
		if d := t.maxDepth(int(c), depth+1); d > best {
			best = d
		}
	}
	return best
}
