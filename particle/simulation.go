// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particle

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gosph/kernel"
	"github.com/cpmech/gosph/vecd"
)

// NamedScalars and NamedVectors back the auxiliary named-field store
// described in the Design Notes: a mapping name -> flat column,
// created once at start and never reshaped into a per-particle
// dictionary. GSPH/GDISPH use this for quantities that are not part
// of the permanent Particle layout (e.g. a scratch gradient column
// used only transiently by a reconstruction routine).
type NamedScalars map[string][]float64
type NamedVectors map[string][]vecd.Vec

// Simulation is the shared, mutable state threaded through one step of
// the pipeline: the particle array plus the handful of references
// every module needs (kernel, periodic domain, tree) and the global
// scalars a step produces (time, dt, the CFL-driving h/v_sig minimum).
type Simulation struct {
	Particles []Particle // contiguous, mutable-length particle array

	T            float64 // global simulation time
	Dt           float64 // current step size
	HPerVsigMin  float64 // min over all pairs of h/|v_sig|, drives the signal-velocity CFL term

	Dim    int            // ambient/compile-time dimension, 1..3
	Kernel kernel.Kernel  // shared kernel, constructed once
	Periodic vecd.Periodic // shared periodic-domain descriptor

	Aux      NamedScalars // GSPH/GDISPH scalar auxiliaries, keyed by name
	AuxVecs  NamedVectors // GSPH/GDISPH vector auxiliaries, keyed by name

	// AnisotropicZ is set when two_and_half_sim mode is active: 3-D
	// positions combined with a D=2 kernel normalisation and a z-axis
	// smoothing length (Particle.SmlZ) held fixed while h_xy is solved.
	AnisotropicZ bool
}

// NewSimulation builds an empty Simulation for the given ambient
// dimension, kernel and periodic domain.
func NewSimulation(dim int, k kernel.Kernel, per vecd.Periodic) (*Simulation, error) {
	if dim < 1 || dim > 3 {
		return nil, chk.Err("particle: dimension must be 1, 2 or 3; got %d", dim)
	}
	return &Simulation{
		Dim:      dim,
		Kernel:   k,
		Periodic: per,
		Aux:      make(NamedScalars),
		AuxVecs:  make(NamedVectors),
	}, nil
}

// TotalMass returns sum_i m_i, used by the conservation tests in the
// solver package (testable property #2).
func (s *Simulation) TotalMass() float64 {
	var m float64
	for i := range s.Particles {
		m += s.Particles[i].Mass
	}
	return m
}

// TotalMomentum returns sum_i m_i v_i (testable property #1).
func (s *Simulation) TotalMomentum() vecd.Vec {
	var p vecd.Vec
	for i := range s.Particles {
		pi := &s.Particles[i]
		p = p.AddScaled(pi.Vel, pi.Mass)
	}
	return p
}

// Bodies returns a Body adapter for every particle, suitable for
// handing to bhtree.Build.
func (s *Simulation) Bodies() []Body {
	b := make([]Body, len(s.Particles))
	for i := range s.Particles {
		b[i] = NewBody(&s.Particles[i], i)
	}
	return b
}
