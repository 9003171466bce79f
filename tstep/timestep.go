// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tstep implements the global timestep control of §4.7: a
// single Delta-t is taken as the minimum, over all particles, of the
// sound-speed, force and signal-velocity CFL criteria, then clamped
// to the configured [DtMin, DtMax] band.
package tstep

import (
	"math"

	"github.com/cpmech/gosph/config"
	"github.com/cpmech/gosph/parloop"
	"github.com/cpmech/gosph/particle"
)

// Compute returns the global Delta-t for the next step, per §4.7:
//
//	dt = min_i { cflSound*h_i/c_i, cflForce*sqrt(h_i/|a_i|), cflEnergy*(h/v_sig)_global }
//
// sim.HPerVsigMin must already hold the minimum h/v_sig produced by
// the pre-interaction pass for this step (§4.4's signal-velocity
// scan); this function does not recompute it. The result is clamped
// to [cfg.DtMin, cfg.DtMax].
func Compute(sim *particle.Simulation, cfg config.Config) float64 {
	n := len(sim.Particles)
	if n == 0 {
		return cfg.DtMin
	}

	perParticle := parloop.MinFloat64(n, func(i int) float64 {
		pi := &sim.Particles[i]
		if pi.IsPointMass {
			return math.Inf(1)
		}
		best := math.Inf(1)
		if pi.Sound > 0 {
			best = cfg.CflSound * pi.Sml / pi.Sound
		}
		if a := pi.Acc.Norm(sim.Dim); a > 0 {
			if dtForce := cfg.CflForce * math.Sqrt(pi.Sml/a); dtForce < best {
				best = dtForce
			}
		}
		return best
	})

	dt := perParticle
	if !math.IsInf(sim.HPerVsigMin, 1) {
		if dtSig := cfg.CflEnergy * sim.HPerVsigMin; dtSig < dt {
			dt = dtSig
		}
	}

	if math.IsInf(dt, 1) {
		dt = cfg.DtMax
	}
	if cfg.DtMax > 0 && dt > cfg.DtMax {
		dt = cfg.DtMax
	}
	if dt < cfg.DtMin {
		dt = cfg.DtMin
	}
	return dt
}
