// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package variant

import (
	"math"

	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gosph/bhtree"
	"github.com/cpmech/gosph/config"
	"github.com/cpmech/gosph/kernel"
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/vecd"
)

const maxSmlIter = 10
const smlTol = 1e-4

// kernelDensity returns rho(h) = sum_j m_j W(r_ij, h) and its h-
// derivative drho/dh = sum_j m_j dW/dh(r_ij, h), evaluated with a
// single trial smoothing length h shared by both sides of the pair
// (the i-side-only formulation the smoothing-length solve uses).
func kernelDensity(sim *particle.Simulation, tree *bhtree.Tree, i int, h float64) (rho, drhodh float64, neighbors []int) {
	pi := &sim.Particles[i]
	neighbors = tree.BallNeighbors(i, sim.Periodic, 0)
	rho = pi.Mass * sim.Kernel.W(0, h) // self term
	drhodh = pi.Mass * sim.Kernel.DWDH(0, h)
	for _, j := range neighbors {
		pj := &sim.Particles[j]
		if pj.IsPointMass {
			continue
		}
		d := sim.Periodic.Displacement(pi.Pos, pj.Pos)
		r := d.Norm(sim.Dim)
		if r >= h {
			continue
		}
		rho += pj.Mass * sim.Kernel.W(r, h)
		drhodh += pj.Mass * sim.Kernel.DWDH(r, h)
	}
	return
}

// particleReach is the coarse kernel-support radius used to prune a
// pair before the more expensive gradient/density evaluation: Sml in
// isotropic mode, max(Sml, SmlZ) in anisotropic 2.5-D mode (where the
// true reach depends on direction, so the isotropic 3-D distance test
// must use the larger of the two axis lengths to stay conservative).
func particleReach(p *particle.Particle) float64 {
	if p.SmlZ > p.Sml {
		return p.SmlZ
	}
	return p.Sml
}

// WPair returns the kernel weight for particle p (smoothing length
// p.Sml, or p.Sml/p.SmlZ in anisotropic mode) at displacement d,
// distance r, dispatching to the §4.4 anisotropic kernel when
// sim.AnisotropicZ is set.
func WPair(sim *particle.Simulation, p *particle.Particle, d vecd.Vec, r, h float64) float64 {
	if sim.AnisotropicZ {
		rxy := math.Hypot(d[0], d[1])
		return sim.Kernel.WAniso(rxy, d[2], h, p.SmlZ)
	}
	return sim.Kernel.W(r, h)
}

// DWDHPair is the WPair analogue of DWDH/DWDHxyAniso.
func DWDHPair(sim *particle.Simulation, p *particle.Particle, d vecd.Vec, r, h float64) float64 {
	if sim.AnisotropicZ {
		rxy := math.Hypot(d[0], d[1])
		return sim.Kernel.DWDHxyAniso(rxy, d[2], h, p.SmlZ)
	}
	return sim.Kernel.DWDH(r, h)
}

// GradWPair returns the kernel gradient particle p (h=p.Sml, hz=p.SmlZ)
// sees at displacement d, distance r, dispatching to GradWAniso when
// sim.AnisotropicZ is set.
func GradWPair(sim *particle.Simulation, p *particle.Particle, d vecd.Vec, r, h float64) vecd.Vec {
	if sim.AnisotropicZ {
		return sim.Kernel.GradWAniso(d, h, p.SmlZ)
	}
	return sim.Kernel.GradW(d, r, h)
}

// newtonSolveH runs the shared §4.4 Newton-Raphson iteration,
// density(h)*h^deff = target, up to maxSmlIter iterations with
// tolerance smlTol on |dh|/h. On non-convergence the last h is kept
// and a warning logged once (§7 SmoothingLengthNonConvergence); both
// the isotropic and the anisotropic 2.5-D solve share this loop,
// differing only in what density() evaluates.
func newtonSolveH(density func(h float64) (rho, drhodh float64, neighbors []int), h, target, deff float64, iterative bool, particleID int) (hOut, rho, drhodh float64, neighbors []int) {
	if !iterative {
		rho, drhodh, neighbors = density(h)
		return h, rho, drhodh, neighbors
	}

	converged := false
	for iter := 0; iter < maxSmlIter; iter++ {
		rho, drhodh, neighbors = density(h)
		f := rho*math.Pow(h, deff) - target
		fprime := drhodh*math.Pow(h, deff) + rho*deff*math.Pow(h, deff-1)
		if fprime == 0 {
			break
		}
		dh := -f / fprime
		// monotone bracket: never let a single step change h by more
		// than a factor of 2 in either direction.
		if dh > h {
			dh = h
		} else if dh < -0.5*h {
			dh = -0.5 * h
		}
		hNew := h + dh
		if hNew <= 0 {
			hNew = h / 2
		}
		relChange := math.Abs(hNew-h) / h
		h = hNew
		if relChange < smlTol {
			converged = true
			break
		}
	}
	if !converged {
		io.Pfyel("variant: smoothing length did not converge for particle %d (kept h=%g)\n", particleID, h)
	}
	rho, drhodh, neighbors = density(h)
	return h, rho, drhodh, neighbors
}

// kernelDensityAniso is the anisotropic 2.5-D analogue of
// kernelDensity: rho(hxy) = sum_j m_j WAniso_j(hxy, hz_i) and its
// hxy-derivative, with the neighbour's own rxy/rz split out of the
// minimum-image displacement (components 0,1 are the xy-plane,
// component 2 is z).
func kernelDensityAniso(sim *particle.Simulation, tree *bhtree.Tree, i int, hxy float64) (rho, drhodhxy float64, neighbors []int) {
	pi := &sim.Particles[i]
	hz := pi.SmlZ
	neighbors = tree.BallNeighbors(i, sim.Periodic, 0)
	rho = pi.Mass * sim.Kernel.WAniso(0, 0, hxy, hz)
	drhodhxy = pi.Mass * sim.Kernel.DWDHxyAniso(0, 0, hxy, hz)
	for _, j := range neighbors {
		pj := &sim.Particles[j]
		if pj.IsPointMass {
			continue
		}
		d := sim.Periodic.Displacement(pi.Pos, pj.Pos)
		rxy := math.Hypot(d[0], d[1])
		rz := d[2]
		rho += pj.Mass * sim.Kernel.WAniso(rxy, rz, hxy, hz)
		drhodhxy += pj.Mass * sim.Kernel.DWDHxyAniso(rxy, rz, hxy, hz)
	}
	return
}

// SolveSmoothingLength performs the §4.4 smoothing-length solve:
// h_i satisfying rho(h_i)*h_i^deff = m_i*N_target/A_deff. In
// anisotropic 2.5-D mode (sim.AnisotropicZ) this solves for h_xy with
// h_z (Particle.SmlZ, fixed at cfg.Hz) held constant, using the
// kernel's anisotropic q = sqrt((rxy/hxy)^2+(rz/hz)^2) evaluation
// instead of the isotropic one. Returns the converged density, its
// h-derivative and the (upper bound) neighbour list gathered at the
// final trial h.
func SolveSmoothingLength(sim *particle.Simulation, tree *bhtree.Tree, i int, cfg config.Config) (rho, drhodh float64, neighbors []int) {
	pi := &sim.Particles[i]
	deff := float64(sim.Kernel.EffDim())
	Ad := kernel.NeighborNumberArea(sim.Kernel.EffDim())
	target := pi.Mass * cfg.NeighborNumber / Ad

	h := pi.Sml
	if h <= 0 {
		h = initialSml(cfg.NeighborNumber, pi.Mass, pi.Dens, Ad, deff)
	}

	if sim.AnisotropicZ {
		if pi.SmlZ <= 0 {
			pi.SmlZ = cfg.Hz
		}
		density := func(htrial float64) (float64, float64, []int) {
			return kernelDensityAniso(sim, tree, i, htrial)
		}
		h, rho, drhodh, neighbors = newtonSolveH(density, h, target, deff, cfg.IterativeSml, pi.ID)
		pi.Sml = h
		return
	}

	density := func(htrial float64) (float64, float64, []int) {
		return kernelDensity(sim, tree, i, htrial)
	}
	h, rho, drhodh, neighbors = newtonSolveH(density, h, target, deff, cfg.IterativeSml, pi.ID)
	pi.Sml = h
	return
}

// initialSml implements the "initial smoothing (first step only)"
// formula of §4.4: h_i = (N_target*m_i/(rho_i*A_deff))^(1/deff).
func initialSml(nTarget, mass, rho0, Ad, deff float64) float64 {
	if rho0 <= 0 {
		rho0 = 1
	}
	return math.Pow(nTarget*mass/(rho0*Ad), 1/deff)
}

// GradH returns f_i = 1/(1 + (h/(deff*base))*dbase/dh), the grad-h
// correction shared by all four variants; "base" is rho for
// SSPH/GSPH and q for DISPH/GDISPH.
func GradH(h, base, dbasedh float64, effDim int) float64 {
	if base == 0 {
		return 1
	}
	denom := 1 + (h/(float64(effDim)*base))*dbasedh
	if denom == 0 {
		return 1
	}
	return 1 / denom
}

// DivCurlVelocity computes div(v) and the curl magnitude at particle i
// from its neighbour list, used by the Balsara switch. dim is the
// ambient dimension (curl is only meaningful for dim>1).
func DivCurlVelocity(sim *particle.Simulation, i int, neighbors []int, dim int) (divV float64, curlMag float64) {
	pi := &sim.Particles[i]
	if pi.Dens == 0 {
		return 0, 0
	}
	var curl3 vecd.Vec
	var curl2 float64
	for _, j := range neighbors {
		pj := &sim.Particles[j]
		if pj.IsPointMass {
			continue
		}
		d := sim.Periodic.Displacement(pi.Pos, pj.Pos)
		r := d.Norm(dim)
		if r == 0 || r >= particleReach(pi) {
			continue
		}
		gw := GradWPair(sim, pi, d, r, pi.Sml)
		dv := pj.Vel.Sub(pi.Vel)
		w := pj.Mass / pi.Dens
		divV += w * dv.Dot(gw, dim)
		switch dim {
		case 2:
			curl2 += w * vecd.Cross2(dv, gw)
		case 3:
			curl3 = curl3.Add(vecd.Cross3(dv, gw).Scale(w))
		}
	}
	if dim == 2 {
		curlMag = math.Abs(curl2)
	} else {
		curlMag = curl3.Norm(3)
	}
	return
}

// Balsara returns the Balsara-switch value of §4.4; fixed at 1 in 1-D.
func Balsara(divV, curlV, sound, h float64, dim int) float64 {
	if dim == 1 {
		return 1
	}
	absDiv := math.Abs(divV)
	return absDiv / (absDiv + curlV + 1e-4*sound/h)
}

// UpdateAlpha integrates the time-dependent artificial-viscosity
// coefficient of §4.4 by one step dt and clamps to [alphaMin,alphaMax].
func UpdateAlpha(alpha, divV, sound, h, dt, alphaMin, alphaMax, epsilon float64) float64 {
	decay := -(alpha - alphaMin) * epsilon * sound / h
	source := math.Max(-divV, 0) * (alphaMax - alpha)
	alpha += (decay + source) * dt
	if alpha < alphaMin {
		alpha = alphaMin
	}
	if alpha > alphaMax {
		alpha = alphaMax
	}
	return alpha
}

// SignalVelocityMin scans particle i's neighbour pairs and returns the
// minimum h/v_sig over approaching pairs only (v_ij.r_ij<0), per §4.4;
// returns +Inf if no approaching pair is found (callers reduce across
// all particles with math.Min, so +Inf is the correct identity).
func SignalVelocityMin(sim *particle.Simulation, i int, neighbors []int, dim int) float64 {
	pi := &sim.Particles[i]
	best := math.Inf(1)
	for _, j := range neighbors {
		pj := &sim.Particles[j]
		if pj.IsPointMass {
			continue
		}
		d := sim.Periodic.Displacement(pi.Pos, pj.Pos)
		r := d.Norm(dim)
		if r == 0 {
			continue
		}
		dv := pi.Vel.Sub(pj.Vel)
		rdotv := d.Dot(dv, dim)
		if rdotv >= 0 {
			continue
		}
		rhat := d.Scale(1 / r)
		vsig := pi.Sound + pj.Sound - 3*rhat.Dot(dv, dim)
		if vsig <= 0 {
			continue
		}
		hmin := pi.Sml
		if pj.Sml < hmin {
			hmin = pj.Sml
		}
		hv := hmin / vsig
		if hv < best {
			best = hv
		}
	}
	return best
}
