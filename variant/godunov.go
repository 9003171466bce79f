// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package variant

import (
	"math"

	"github.com/cpmech/gosph/config"
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/riemann"
	"github.com/cpmech/gosph/vecd"
)

// The Godunov variants (GSPH, GDISPH) keep their gradient auxiliaries
// in the Simulation's named-vector store (Design Notes §9) rather than
// on Particle itself, since SSPH/DISPH never need them.
const (
	gradDensKey = "gradDens"
	gradPresKey = "gradPres"
	gradVelXKey = "gradVelX"
	gradVelYKey = "gradVelY"
	gradVelZKey = "gradVelZ"
)

// ensureAuxVec returns the named auxiliary vector column, (re)allocated
// to len(sim.Particles) if missing or stale. Callers must obtain every
// column they need before entering a parloop.Range body: the map
// itself is never touched concurrently, only the returned slices,
// indexed at each goroutine's own particle index.
func ensureAuxVec(sim *particle.Simulation, key string) []vecd.Vec {
	n := len(sim.Particles)
	v, ok := sim.AuxVecs[key]
	if !ok || len(v) != n {
		v = make([]vecd.Vec, n)
		sim.AuxVecs[key] = v
	}
	return v
}

// computeGradients returns the standard SPH difference-form estimator
// grad(A)_i = sum_j (m_j/rho_j)(A_j-A_i) gradW_ij for density, pressure
// and each velocity component at particle i, over its neighbour list.
func computeGradients(sim *particle.Simulation, i int, neighbors []int, dim int) (gradDens, gradPres, gradVx, gradVy, gradVz vecd.Vec) {
	pi := &sim.Particles[i]
	for _, j := range neighbors {
		pj := &sim.Particles[j]
		if pj.IsPointMass || pj.Dens == 0 {
			continue
		}
		d := sim.Periodic.Displacement(pi.Pos, pj.Pos)
		r := d.Norm(dim)
		if r == 0 || r >= particleReach(pi) {
			continue
		}
		gw := GradWPair(sim, pi, d, r, pi.Sml)
		w := pj.Mass / pj.Dens
		gradDens = gradDens.AddScaled(gw, w*(pj.Dens-pi.Dens))
		gradPres = gradPres.AddScaled(gw, w*(pj.Pres-pi.Pres))
		gradVx = gradVx.AddScaled(gw, w*(pj.Vel[0]-pi.Vel[0]))
		gradVy = gradVy.AddScaled(gw, w*(pj.Vel[1]-pi.Vel[1]))
		gradVz = gradVz.AddScaled(gw, w*(pj.Vel[2]-pi.Vel[2]))
	}
	return
}

// vanLeerLimit bounds a linearly extrapolated delta by the van Leer
// limiter against the raw one-sided delta between the two particle
// values: it never lets the reconstruction overshoot or change sign
// relative to the un-reconstructed difference.
func vanLeerLimit(extrapolated, raw float64) float64 {
	if raw == 0 {
		return 0
	}
	r := extrapolated / raw
	if r <= 0 {
		return 0
	}
	phi := 2 * r / (1 + r)
	return phi * raw
}

// reconstructedState builds the one-sided primitive state of particle
// p projected onto rhat, at the interface offset dx from p's own
// position. When cfg.UseMUSCL is set, rho/pres/u are linearly
// extrapolated using p's stored gradients and van-Leer limited against
// the raw one-sided difference to the companion particle's state;
// otherwise the reconstruction is first-order (p's own values).
func reconstructedState(cfg config.Config, p *particle.Particle, dx, rhat vecd.Vec, dim int,
	gradDens, gradPres, gradVx, gradVy, gradVz vecd.Vec, otherDens, otherPres float64, otherVel vecd.Vec) riemann.State {

	rho := p.Dens
	pres := p.Pres
	u := p.Vel.Dot(rhat, dim)
	if cfg.UseMUSCL {
		rho += vanLeerLimit(gradDens.Dot(dx, dim), otherDens-p.Dens)
		pres += vanLeerLimit(gradPres.Dot(dx, dim), otherPres-p.Pres)

		dv := vecd.Vec{gradVx.Dot(dx, dim), gradVy.Dot(dx, dim), gradVz.Dot(dx, dim)}
		extrapU := dv.Dot(rhat, dim)
		rawU := otherVel.Dot(rhat, dim) - u
		u += vanLeerLimit(extrapU, rawU)
	}
	if rho <= 0 {
		rho = p.Dens
	}
	if pres <= 0 {
		pres = p.Pres
	}
	c := p.Sound
	if rho > 0 && pres > 0 {
		c = math.Sqrt(cfg.Gamma * pres / rho)
	}
	return riemann.State{U: u, Rho: rho, P: pres, C: c}
}
