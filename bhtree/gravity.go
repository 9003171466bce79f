// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bhtree

import (
	"github.com/cpmech/gosph/vecd"
)

// SoftenedForce returns g(r,h): the magnitude of the kernel-softened
// gravitational force law (G and the masses are applied by the
// caller), for separation r and softening length h, following the
// two-regime polynomial + Newtonian-tail closed form of §4.3: a soft
// polynomial for u=r/(h/2) < 1, a transitional polynomial for
// 1<=u<2, and Newtonian 1/r^2 beyond u=2.
func SoftenedForce(r, h float64) float64 {
	if h <= 0 {
		if r == 0 {
			return 0
		}
		return 1 / (r * r)
	}
	eps := h / 2
	u := r / eps
	switch {
	case u <= 0:
		return 0
	case u < 1:
		return (1 / (eps * eps)) * (4.0/3.0*u - 6.0/5.0*u*u*u + 0.5*u*u*u*u)
	case u < 2:
		return (1 / (eps * eps)) * (8.0/3.0*u - 3*u*u + 6.0/5.0*u*u*u - 1.0/6.0*u*u*u*u - 1.0/(15.0*u*u))
	default:
		return 1 / (r * r)
	}
}

// SoftenedPotential returns f(r,h): the kernel-softened gravitational
// potential law (negative-definite up to the G*m1*m2 factor applied
// by the caller), companion to SoftenedForce.
func SoftenedPotential(r, h float64) float64 {
	if h <= 0 {
		if r == 0 {
			return 0
		}
		return -1 / r
	}
	eps := h / 2
	u := r / eps
	switch {
	case u <= 0:
		return -7.0 / (5.0 * eps)
	case u < 1:
		return (1/eps)*(2.0/3.0*u*u-0.3*u*u*u*u+0.1*u*u*u*u*u) - 7.0/(5.0*eps)
	case u < 2:
		return (1/eps)*(4.0/3.0*u*u-u*u*u+0.3*u*u*u*u-1.0/30.0*u*u*u*u*u+1.0/(15.0*u)) - 8.0/(5.0*eps)
	default:
		return -1 / r
	}
}

// PairSoftening returns the symmetric half-sum of the softened force
// law for a gravity pair, 0.5*(g(r,hi)+g(r,hj)), preserving antisymmetry
// per §4.3.
func PairSoftening(r, hi, hj float64) float64 {
	return 0.5 * (SoftenedForce(r, hi) + SoftenedForce(r, hj))
}

// GravityAccel returns the tree-approximated gravitational
// acceleration on body i (excluding its own contribution), using
// opening angle theta and gravitational constant G.
func (t *Tree) GravityAccel(i int, theta, G float64, per vecd.Periodic) vecd.Vec {
	if t.rootIdx < 0 {
		return vecd.Vec{}
	}
	bi := t.bodies[i]
	return t.walkGravity(t.rootIdx, i, bi.Coord(), bi.Smoothing(), theta, G, per)
}

func (t *Tree) walkGravity(nodeIdx, i int, pos vecd.Vec, hi, theta, G float64, per vecd.Periodic) vecd.Vec {
	n := &t.nodes[nodeIdx]
	if n.mass == 0 {
		return vecd.Vec{}
	}

	if n.isLeaf {
		var acc vecd.Vec
		for _, bj := range n.bodies {
			j := int(bj)
			if j == i {
				continue
			}
			bj2 := t.bodies[j]
			d := per.Displacement(pos, bj2.Coord())
			r := d.Norm(t.Dim)
			if r == 0 {
				continue
			}
			g := PairSoftening(r, hi, bj2.Smoothing())
			acc = acc.Sub(d.Scale(G * bj2.BodyMass() * g / r))
		}
		return acc
	}

	s := 2 * n.halfEdge
	d := per.Displacement(pos, n.com)
	dist := d.Norm(t.Dim)
	if dist == 0 || s/dist > theta {
		var acc vecd.Vec
		for _, c := range n.children {
			if c < 0 {
				continue
			}
			acc = acc.Add(t.walkGravity(int(c), i, pos, hi, theta, G, per))
		}
		return acc
	}

	// treat the node as a single monopole source, softened with the
	// same half-sum as a body pair (the aggregate has no single "h", so
	// the node's kernelSize, which upper-bounds any source softening
	// within it, stands in for h_j).
	g := PairSoftening(dist, hi, n.kernelSize)
	return d.Scale(-G * n.mass * g / dist)
}

// GravityPotential returns the tree-approximated gravitational
// potential at body i (excluding its own contribution), companion to
// GravityAccel and used to populate Particle.Phi.
func (t *Tree) GravityPotential(i int, theta, G float64, per vecd.Periodic) float64 {
	if t.rootIdx < 0 {
		return 0
	}
	bi := t.bodies[i]
	return t.walkPotential(t.rootIdx, i, bi.Coord(), bi.Smoothing(), theta, G, per)
}

func (t *Tree) walkPotential(nodeIdx, i int, pos vecd.Vec, hi, theta, G float64, per vecd.Periodic) float64 {
	n := &t.nodes[nodeIdx]
	if n.mass == 0 {
		return 0
	}

	if n.isLeaf {
		var phi float64
		for _, bj := range n.bodies {
			j := int(bj)
			if j == i {
				continue
			}
			bj2 := t.bodies[j]
			d := per.Displacement(pos, bj2.Coord())
			r := d.Norm(t.Dim)
			if r == 0 {
				continue
			}
			f := 0.5 * (SoftenedPotential(r, hi) + SoftenedPotential(r, bj2.Smoothing()))
			phi += G * bj2.BodyMass() * f
		}
		return phi
	}

	s := 2 * n.halfEdge
	d := per.Displacement(pos, n.com)
	dist := d.Norm(t.Dim)
	if dist == 0 || s/dist > theta {
		var phi float64
		for _, c := range n.children {
			if c < 0 {
				continue
			}
			phi += t.walkPotential(int(c), i, pos, hi, theta, G, per)
		}
		return phi
	}

	f := 0.5 * (SoftenedPotential(dist, hi) + SoftenedPotential(dist, n.kernelSize))
	return G * n.mass * f
}

// Theta-zero bit-equality (testable property #6) follows directly:
// with theta=0, walkGravity always opens every internal node (s/dist
// is finite and theta=0 makes the "> theta" branch true for any
// positive distance), so the walk degenerates to the direct N^2 sum
// over leaves in the same order a brute-force double loop would visit
// them, up to floating point summation order.
