// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package variant

import (
	"math"

	"github.com/cpmech/gosph/bhtree"
	"github.com/cpmech/gosph/config"
	"github.com/cpmech/gosph/parloop"
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/vecd"
)

func init() {
	register("DISPH", func() Pair { return Pair{Pre: &disphPre{}, Force: &disphForce{}} })
}

// energyDensity returns q(h) = sum_j m_j u_j W(r_ij,h) and its
// h-derivative, the DISPH analogue of kernelDensity.
func energyDensity(sim *particle.Simulation, neighbors []int, i int, h float64) (q, dqdh float64) {
	pi := &sim.Particles[i]
	var zero vecd.Vec
	q = pi.Mass * pi.Ene * WPair(sim, pi, zero, 0, h)
	dqdh = pi.Mass * pi.Ene * DWDHPair(sim, pi, zero, 0, h)
	for _, j := range neighbors {
		pj := &sim.Particles[j]
		if pj.IsPointMass {
			continue
		}
		d := sim.Periodic.Displacement(pi.Pos, pj.Pos)
		r := d.Norm(sim.Dim)
		if r >= particleReach(pi) {
			continue
		}
		q += pj.Mass * pj.Ene * WPair(sim, pi, d, r, h)
		dqdh += pj.Mass * pj.Ene * DWDHPair(sim, pi, d, r, h)
	}
	return
}

// disphPre implements the volume-element (density-independent)
// pre-interaction of §4.4: h is solved from the same kernel-weighted
// mass sum as SSPH, but grad-h and pressure are driven by the
// kernel-weighted energy density q = sum_j m_j u_j W_ij instead of rho.
type disphPre struct{}

func (disphPre) Run(sim *particle.Simulation, tree *bhtree.Tree, cfg config.Config) error {
	n := len(sim.Particles)
	vsigPartials := make([]float64, n)
	// see ssphPre.Run: effDim feeds only the grad-h correction, dim is
	// the ambient dimension every geometric helper below uses.
	effDim := sim.Kernel.EffDim()
	dim := sim.Dim

	parloop.Range(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			pi := &sim.Particles[i]
			if pi.IsPointMass {
				vsigPartials[i] = math.Inf(1)
				continue
			}
			rho, _, neighbors := SolveSmoothingLength(sim, tree, i, cfg)
			pi.Dens = rho
			pi.Neighbor = len(neighbors)
			if rho > 0 {
				pi.Volume = pi.Mass / rho
			}

			q, dqdh := energyDensity(sim, neighbors, i, pi.Sml)
			pi.Q = q
			pi.GradH = GradH(pi.Sml, q, dqdh, effDim)
			pi.Pres = (cfg.Gamma - 1) * q
			if rho > 0 {
				pi.Sound = math.Sqrt(cfg.Gamma * pi.Pres / rho)
			}

			divV, curlV := DivCurlVelocity(sim, i, neighbors, dim)
			if cfg.UseBalsaraSwitch {
				pi.Balsara = Balsara(divV, curlV, pi.Sound, pi.Sml, dim)
			} else {
				pi.Balsara = 1
			}
			if cfg.UseTimeDependentAV && sim.Dt > 0 {
				pi.Alpha = UpdateAlpha(pi.Alpha, divV, pi.Sound, pi.Sml, sim.Dt, cfg.AlphaMin, cfg.AlphaMax, cfg.Epsilon)
			} else {
				pi.Alpha = cfg.AlphaMax
			}

			vsigPartials[i] = SignalVelocityMin(sim, i, neighbors, dim)
		}
	})

	best := math.Inf(1)
	for _, v := range vsigPartials {
		if v < best {
			best = v
		}
	}
	sim.HPerVsigMin = best
	return nil
}

// disphForce implements the volume-element (density-independent)
// fluid force of §4.5: identical structure to ssphForce but with the
// p*f/rho^2 factors replaced by p*f/V^2, eliminating the spurious
// surface tension error at contact discontinuities.
type disphForce struct{}

func (disphForce) Run(sim *particle.Simulation, tree *bhtree.Tree, cfg config.Config) error {
	n := len(sim.Particles)
	dim := sim.Dim

	parloop.Range(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			pi := &sim.Particles[i]
			if pi.IsPointMass {
				continue
			}
			neighbors := tree.BallNeighbors(i, sim.Periodic, cfg.MaxNeighbors)

			var accAccum vecd.Vec
			var dene float64

			piOverV2 := 0.0
			if pi.Volume > 0 {
				piOverV2 = pi.Pres * pi.GradH / (pi.Volume * pi.Volume)
			}

			for _, j := range neighbors {
				pj := &sim.Particles[j]
				if pj.IsPointMass {
					continue
				}
				d := sim.Periodic.Displacement(pi.Pos, pj.Pos)
				r := d.Norm(dim)
				hmax := particleReach(pi)
				if particleReach(pj) > hmax {
					hmax = particleReach(pj)
				}
				if r == 0 || r >= hmax {
					continue
				}
				gi := GradWPair(sim, pi, d, r, pi.Sml)
				gj := GradWPair(sim, pj, d, r, pj.Sml)

				pjOverV2 := 0.0
				if pj.Volume > 0 {
					pjOverV2 = pj.Pres * pj.GradH / (pj.Volume * pj.Volume)
				}

				avPi := ArtificialViscosity(pi, pj, d, r, dim, cfg.UseBalsaraSwitch, cfg.AVEta)

				fI := gi.Scale(piOverV2 + 0.5*avPi)
				fJ := gj.Scale(pjOverV2 + 0.5*avPi)
				pairForce := fI.Add(fJ)
				accAccum = accAccum.Sub(pairForce.Scale(pj.Mass))

				vij := pi.Vel.Sub(pj.Vel)
				dene += pj.Mass * (piOverV2 + 0.5*avPi) * vij.Dot(gi, dim)
			}

			pi.Acc = accAccum
			pi.DEne = dene
		}
	})
	return nil
}
