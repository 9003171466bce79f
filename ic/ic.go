// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ic implements the Initial Conditions external interface of
// §6: loading an ordered collection of particles (pos, vel, mass,
// dens, pres, ene, sml?, id) and filling in the defaults the spec
// names (sml from the initial-smoothing formula, alpha=alphaMax).
// Generating scenarios is explicitly out of core scope (§1); this
// package only consumes the contract's wire format, the same
// load-then-default split config.Load uses for the configuration
// record.
package ic

import (
	"encoding/json"
	"math"
	"os"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gosph/config"
	"github.com/cpmech/gosph/kernel"
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/snapshot"
	"github.com/cpmech/gosph/vecd"
)

// Entry is one particle record as it appears in an initial-conditions
// file: a plain JSON array of these, in particle-array order.
type Entry struct {
	ID   int       `json:"id"`
	Pos  []float64 `json:"pos"`
	Vel  []float64 `json:"vel"`
	Mass float64   `json:"mass"`
	Dens float64   `json:"dens"`
	Pres float64   `json:"pres"`
	Ene  float64   `json:"ene"`
	Sml  float64   `json:"sml,omitempty"`  // 0 means "derive from the initial-smoothing formula"
	SmlZ float64   `json:"smlZ,omitempty"` // 2.5-D mode only; 0 means "derive from cfg.Hz"

	IsPointMass    bool `json:"isPointMass,omitempty"`
	PointMassFixed bool `json:"pointMassFixed,omitempty"`
	IsWall         bool `json:"isWall,omitempty"`
}

// Load reads a JSON initial-conditions file and builds a ready-to-run
// Simulation: the kernel and periodic domain are constructed from cfg,
// and any particle missing sml gets it from §4.4's initial-smoothing
// formula, h_i = (N_target*m_i/(rho_i*A_deff))^(1/deff).
func Load(path string, cfg config.Config) (*particle.Simulation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, chk.Err("ic: cannot read %q: %v", path, err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, chk.Err("ic: cannot parse %q: %v", path, err)
	}
	if len(entries) == 0 {
		return nil, chk.Err("ic: %q contains no particles", path)
	}

	k, err := kernel.New(cfg.Kernel, cfg.EffDim())
	if err != nil {
		return nil, err
	}
	per, err := cfg.BuildPeriodic()
	if err != nil {
		return nil, err
	}
	sim, err := particle.NewSimulation(cfg.Dim, k, per)
	if err != nil {
		return nil, err
	}
	sim.AnisotropicZ = cfg.TwoAndHalfSim || cfg.Anisotropic

	Ad := kernel.NeighborNumberArea(cfg.EffDim())
	deff := float64(cfg.EffDim())

	particles := make([]particle.Particle, len(entries))
	for i, e := range entries {
		if len(e.Pos) < cfg.Dim || len(e.Vel) < cfg.Dim {
			return nil, chk.Err("ic: particle %d: pos/vel must have at least %d components", e.ID, cfg.Dim)
		}
		p := particle.Particle{
			ID:             e.ID,
			Pos:            vecd.New(e.Pos...),
			Vel:            vecd.New(e.Vel...),
			Mass:           e.Mass,
			Dens:           e.Dens,
			Pres:           e.Pres,
			Ene:            e.Ene,
			Sml:            e.Sml,
			SmlZ:           e.SmlZ,
			Alpha:          cfg.AlphaMax,
			IsPointMass:    e.IsPointMass,
			PointMassFixed: e.PointMassFixed,
			IsWall:         e.IsWall,
		}
		if p.Sml <= 0 {
			rho0 := p.Dens
			if rho0 <= 0 {
				rho0 = 1
			}
			p.Sml = initialSml(cfg.NeighborNumber, p.Mass, rho0, Ad, deff)
		}
		if sim.AnisotropicZ && p.SmlZ <= 0 {
			p.SmlZ = cfg.Hz
		}
		particles[i] = p
	}
	sim.Particles = particles
	return sim, nil
}

// FromCheckpoint rebuilds a ready-to-run Simulation from a loaded
// snapshot.Checkpoint: the checkpoint's own particle array and config
// are authoritative, but the kernel/periodic/tree references they
// don't carry (§6: "the core loads a checkpoint by replacing its
// state") are rebuilt fresh from cfg, same as a cold Load.
func FromCheckpoint(cp snapshot.Checkpoint, cfg config.Config) (*particle.Simulation, error) {
	k, err := kernel.New(cfg.Kernel, cfg.EffDim())
	if err != nil {
		return nil, err
	}
	per, err := cfg.BuildPeriodic()
	if err != nil {
		return nil, err
	}
	sim, err := particle.NewSimulation(cfg.Dim, k, per)
	if err != nil {
		return nil, err
	}
	sim.AnisotropicZ = cfg.TwoAndHalfSim || cfg.Anisotropic
	sim.T = cp.T
	sim.Dt = cp.Dt
	sim.Particles = cp.Particles
	if sim.AnisotropicZ {
		for i := range sim.Particles {
			if sim.Particles[i].SmlZ <= 0 {
				sim.Particles[i].SmlZ = cfg.Hz
			}
		}
	}
	return sim, nil
}

// initialSml mirrors variant.initialSml (kept duplicated rather than
// exported across packages, since the two call sites want it at
// different points of the pipeline: once here before the first tree
// build, once inside the smoothing-length solve itself when a restart
// loses a particle's Sml).
func initialSml(nTarget, mass, rho0, Ad, deff float64) float64 {
	if rho0 <= 0 {
		rho0 = 1
	}
	return math.Pow(nTarget*mass/(rho0*Ad), 1/deff)
}
