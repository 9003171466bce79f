// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package variant

import (
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/vecd"
)

// ArtificialViscosity returns Pi_ij for an approaching pair (§4.5),
// modulated by the Balsara switch; zero for separating pairs. avEta
// is the small-r regularisation constant in the AV denominator.
func ArtificialViscosity(pi, pj *particle.Particle, d vecd.Vec, r float64, dim int, useBalsara bool, avEta float64) float64 {
	dv := pi.Vel.Sub(pj.Vel)
	rdotv := d.Dot(dv, dim)
	if rdotv >= 0 {
		return 0
	}
	hij := 0.5 * (pi.Sml + pj.Sml)
	rhoij := 0.5 * (pi.Dens + pj.Dens)
	mu := hij * rdotv / (r*r + avEta*avEta)
	alphaij := 0.5 * (pi.Alpha + pj.Alpha)
	beta := 2 * alphaij
	cij := 0.5 * (pi.Sound + pj.Sound)
	pi_ij := (-alphaij*mu*cij + beta*mu*mu) / rhoij
	if useBalsara {
		pi_ij *= 0.5 * (pi.Balsara + pj.Balsara)
	}
	return pi_ij
}

// symmetrisedGradW returns 0.5*(gradW_i + gradW_j): the kernel
// gradient symmetrisation Godunov variants use for exact antisymmetry.
func symmetrisedGradW(sim *particle.Simulation, pi, pj *particle.Particle, d vecd.Vec, r float64) vecd.Vec {
	gi := GradWPair(sim, pi, d, r, pi.Sml)
	gj := GradWPair(sim, pj, d, r, pj.Sml)
	return gi.Add(gj).Scale(0.5)
}
