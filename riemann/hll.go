// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package riemann implements the one-dimensional HLL Riemann solver
// used by the Godunov fluid-force variants (GSPH, GDISPH) at each pair
// interaction, projected onto the unit vector joining the pair.
package riemann

import "math"

// State is a one-dimensional primitive state at a pair interface: u is
// the velocity projected onto r_hat_ij, rho the density, p the
// pressure and c the sound speed.
type State struct {
	U   float64
	Rho float64
	P   float64
	C   float64
}

// Result holds the intermediate ("star region") pressure and velocity
// the HLL solve produces.
type Result struct {
	PStar float64
	VStar float64
}

// Solve evaluates the HLL Riemann problem for left/right states L, R
// per the contract of §4.5: a Roe average provides the (u*, c*)
// estimate feeding the two outer wave speeds s_L, s_R, and the
// resulting linear system gives p* and v*.
func Solve(L, R State) Result {
	sqrtRhoL := math.Sqrt(L.Rho)
	sqrtRhoR := math.Sqrt(R.Rho)
	wSum := sqrtRhoL + sqrtRhoR

	// with both densities zero the Roe weights vanish; use the plain
	// average so the degenerate case reaches the fallback below.
	uStar, cStar := 0.5*(L.U+R.U), 0.5*(L.C+R.C)
	if wSum > 0 {
		uStar = (sqrtRhoL*L.U + sqrtRhoR*R.U) / wSum
		cStar = (sqrtRhoL*L.C + sqrtRhoR*R.C) / wSum
	}

	sL := math.Min(L.U-L.C, uStar-cStar)
	sR := math.Max(R.U+R.C, uStar+cStar)

	cLState := L.Rho * (sL - L.U)
	cRState := R.Rho * (sR - R.U)

	denom := cRState - cLState
	if denom == 0 {
		// c_L == c_R only when both waves carry zero strength (sound
		// speed or density degenerate to zero); fall back to the
		// simple average rather than dividing by zero.
		return Result{
			PStar: 0.5 * (L.P + R.P),
			VStar: 0.5 * (L.U + R.U),
		}
	}

	pStar := (L.P*cRState - R.P*cLState) / denom
	vStar := (cRState*L.U - cLState*R.U + L.P - R.P) / denom

	return Result{PStar: pStar, VStar: vStar}
}
