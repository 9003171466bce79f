// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package riemann

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestIdenticalStatesReduceToInputs(t *testing.T) {
	s := State{U: 1.25, Rho: 0.8, P: 0.6, C: 1.1}
	res := Solve(s, s)
	chk.Scalar(t, "p*", 1e-12, res.PStar, s.P)
	chk.Scalar(t, "v*", 1e-12, res.VStar, s.U)
}

func TestIdenticalStatesZeroFlux(t *testing.T) {
	// a symmetric pair sum using p*,v* from identical states produces
	// no net flux between the two sides: p*-p_L == 0 and v*-u_L == 0.
	s := State{U: 2.0, Rho: 1.4, P: 3.3, C: 0.9}
	res := Solve(s, s)
	chk.Scalar(t, "p*-p_L", 1e-12, res.PStar-s.P, 0)
	chk.Scalar(t, "v*-u_L", 1e-12, res.VStar-s.U, 0)
}

func TestSodShockTubeStarRegion(t *testing.T) {
	// classic Sod initial left/right states projected onto the 1-D
	// axis: the star pressure must lie strictly between p_L and p_R,
	// and the star velocity must be positive (flow from high to low
	// pressure).
	left := State{U: 0, Rho: 1.0, P: 1.0, C: 1.1832159566}
	right := State{U: 0, Rho: 0.125, P: 0.1, C: 1.0583494988}
	res := Solve(left, right)
	if res.PStar <= right.P || res.PStar >= left.P {
		t.Fatalf("expected p_R < p* < p_L, got p*=%v (p_L=%v p_R=%v)", res.PStar, left.P, right.P)
	}
	if res.VStar <= 0 {
		t.Fatalf("expected v* > 0 for a left-to-right shock, got %v", res.VStar)
	}
}

func TestDegenerateZeroStateFallsBackToAverage(t *testing.T) {
	left := State{U: 0, Rho: 0, P: 0, C: 0}
	right := State{U: 0, Rho: 0, P: 0, C: 0}
	res := Solve(left, right)
	chk.Scalar(t, "p* (vacuum)", 1e-12, res.PStar, 0)
	chk.Scalar(t, "v* (vacuum)", 1e-12, res.VStar, 0)
}
