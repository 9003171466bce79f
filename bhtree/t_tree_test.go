// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bhtree

import (
	"math"
	"testing"

	"github.com/cpmech/gosph/vecd"
)

type testBody struct {
	pos vecd.Vec
	h   float64
	m   float64
	idx int
}

func (b testBody) Coord() vecd.Vec     { return b.pos }
func (b testBody) Smoothing() float64  { return b.h }
func (b testBody) BodyMass() float64   { return b.m }
func (b testBody) Index() int          { return b.idx }

func gridBodies(n int, spacing, h float64) []Body {
	out := make([]Body, 0, n*n)
	k := 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out = append(out, testBody{pos: vecd.New(float64(i)*spacing, float64(j)*spacing), h: h, m: 1, idx: k})
			k++
		}
	}
	return out
}

func TestBallNeighborsFindsGridNeighbours(t *testing.T) {
	bodies := gridBodies(10, 1.0, 1.5)
	tree := New(2, 4, 20)
	tree.Build(bodies)

	per, _ := vecd.NewPeriodic(2, []vecd.AxisRange{{}, {}})
	// particle at grid index (5,5) -> flat index 55
	i := 5*10 + 5
	neighbors := tree.BallNeighbors(i, per, 0)
	if len(neighbors) == 0 {
		t.Fatal("expected at least one neighbour on a dense grid")
	}
	for _, j := range neighbors {
		if j == i {
			t.Fatal("BallNeighbors must not include the particle itself")
		}
	}
}

func TestOpeningAngleZeroMatchesDirectSum(t *testing.T) {
	bodies := gridBodies(6, 1.3, 0.1)
	tree := New(2, 2, 20)
	tree.Build(bodies)
	per, _ := vecd.NewPeriodic(2, []vecd.AxisRange{{}, {}})

	for i := range bodies {
		treeAcc := tree.GravityAccel(i, 0, 1.0, per)

		var direct vecd.Vec
		bi := bodies[i]
		for j := range bodies {
			if j == i {
				continue
			}
			bj := bodies[j]
			d := per.Displacement(bi.Coord(), bj.Coord())
			r := d.Norm(2)
			if r == 0 {
				continue
			}
			g := PairSoftening(r, bi.Smoothing(), bj.Smoothing())
			direct = direct.Sub(d.Scale(1.0 * bj.BodyMass() * g / r))
		}
		diff := treeAcc.Sub(direct).Norm(2)
		if diff > 1e-9*(1+direct.Norm(2)) {
			t.Fatalf("theta=0 tree force disagrees with direct sum at i=%d: diff=%g", i, diff)
		}
	}
}

func TestSoftenedForceNewtonianTail(t *testing.T) {
	if g := SoftenedForce(1e9, 0.1); math.Abs(g-1/(1e9*1e9)) > 1e-20 {
		t.Fatalf("expected Newtonian tail far outside softening, got %g", g)
	}
}

func TestNeighborOverflowRecorded(t *testing.T) {
	bodies := gridBodies(10, 0.5, 3.0) // everything overlaps everything
	tree := New(2, 4, 20)
	tree.Build(bodies)
	per, _ := vecd.NewPeriodic(2, []vecd.AxisRange{{}, {}})
	tree.BallNeighbors(0, per, 3)
	if tree.NeighborOverflow == 0 {
		t.Fatal("expected neighbour overflow to be recorded with a tight cap")
	}
}
