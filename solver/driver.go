// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solver implements the §4.8 predictor-corrector driver: the
// loop that rebuilds the tree, runs the chosen variant's
// pre-interaction and fluid-force passes, adds gravity, recomputes the
// timestep and corrects the predicted state, stitching together every
// other package in the module. Grounded on fem.Solver's allocator-
// registry shape for "the thing that owns the time loop" (the teacher
// keeps one Solver interface with a single concrete stepper registered
// under one name; this driver is that single stepper, since the spec
// names exactly one integration scheme).
package solver

import (
	"math"

	"github.com/cpmech/gosph/bhtree"
	"github.com/cpmech/gosph/config"
	"github.com/cpmech/gosph/gravity"
	"github.com/cpmech/gosph/parloop"
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/snapshot"
	"github.com/cpmech/gosph/tstep"
	"github.com/cpmech/gosph/variant"
	"github.com/cpmech/gosph/vecd"
)

// Hook is the optional heating/cooling collaborator of §4.8 step 6:
// additive to DEne only, never touches Acc or any other field.
type Hook interface {
	Apply(sim *particle.Simulation)
}

// Driver owns the tree, the chosen variant pair and the mutable
// per-run counters (step count, checkpoint path) threaded through
// every call to RunStep.
type Driver struct {
	Sim     *particle.Simulation
	Tree    *bhtree.Tree
	Variant variant.Pair
	Config  config.Config
	Heating Hook // optional; nil disables the hook

	StepCount int

	// CheckpointPath, if set, receives a dump of the run whenever
	// RunStep detects a Fatal condition (§7: "the driver may persist a
	// checkpoint before propagating a Fatal").
	CheckpointPath string

	started bool
	origVel []vecd.Vec
	origEne []float64
}

// New validates cfg against sim's compile-time dimension (§7
// DimensionMismatch) and resolves the configured SPHType to its
// (PreInteraction, FluidForce) pair (§7 ConfigError), returning a
// Driver ready for repeated RunStep calls.
func New(sim *particle.Simulation, cfg config.Config) (*Driver, error) {
	if sim.Dim != cfg.Dim {
		return nil, newError(DimensionMismatch, "compiled dimension %d does not match config dimension %d", sim.Dim, cfg.Dim)
	}
	if err := cfg.Validate(); err != nil {
		return nil, newError(ConfigError, "%v", err)
	}
	pair, err := variant.New(cfg.SPHType)
	if err != nil {
		return nil, newError(ConfigError, "%v", err)
	}
	// §4.4 2.5-D mode: 3-D positions, D=2 kernel normalisation, and a
	// z-axis smoothing length (particle.SmlZ) held fixed at cfg.Hz.
	sim.AnisotropicZ = cfg.TwoAndHalfSim || cfg.Anisotropic
	tree := bhtree.New(sim.Dim, cfg.LeafParticleNumber, cfg.MaxLevel)
	return &Driver{Sim: sim, Tree: tree, Variant: pair, Config: cfg}, nil
}

// evaluate rebuilds the tree over the current positions and runs
// pre-interaction, fluid force, gravity and the optional heating hook,
// in the order §4.8 lists (steps 1, 3, 4, 5, 6).
func (d *Driver) evaluate() error {
	d.Tree.Build(d.Sim.Bodies())
	if err := d.Variant.Pre.Run(d.Sim, d.Tree, d.Config); err != nil {
		return err
	}
	if err := d.Variant.Force.Run(d.Sim, d.Tree, d.Config); err != nil {
		return err
	}
	gravity.Apply(d.Sim, d.Tree, d.Config)
	if d.Heating != nil {
		d.Heating.Apply(d.Sim)
	}
	return nil
}

// RunStep advances the simulation by exactly one kick-drift-kick
// predictor-corrector step (§4.8), returning a propagation-worthy
// *Error only for the Fatal class (NaN/inf in a conserved field); any
// other recoverable condition (non-convergent h, neighbour overflow,
// an energy floor clamp) is handled where it was detected and never
// surfaces here.
func (d *Driver) RunStep() error {
	sim := d.Sim
	cfg := d.Config
	n := len(sim.Particles)

	if !d.started {
		if err := d.evaluate(); err != nil {
			return err
		}
		sim.Dt = tstep.Compute(sim, cfg)
		d.started = true
		d.origVel = make([]vecd.Vec, n)
		d.origEne = make([]float64, n)
	}
	if len(d.origVel) != n {
		d.origVel = make([]vecd.Vec, n)
		d.origEne = make([]float64, n)
	}

	dt := sim.Dt

	// predict: half-kick to vel_p/ene_p, drift positions by the
	// current (pre-kick) velocity, then substitute the predicted state
	// into Vel/Ene so the upcoming force evaluation sees it (§4.8 step
	// 2); the pre-predict values are saved in origVel/origEne for the
	// correction step.
	parloop.Range(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			p := &sim.Particles[i]
			d.origVel[i] = p.Vel
			d.origEne[i] = p.Ene

			p.VelP = p.Vel.AddScaled(p.Acc, 0.5*dt)
			p.EneP = p.Ene + 0.5*p.DEne*dt
			if p.EneP < cfg.EnergyFloor {
				p.EneP = cfg.EnergyFloor
			}
			if !(p.IsPointMass && p.PointMassFixed) {
				p.Pos = p.Pos.AddScaled(p.Vel, dt)
			}
			p.Vel = p.VelP
			p.Ene = p.EneP
		}
	})

	if err := d.evaluate(); err != nil {
		return err
	}

	newDt := tstep.Compute(sim, cfg)

	// correct (§4.8 step 8): full kick from the predicted mid-state
	// using the newly evaluated acceleration/energy rate.
	parloop.Range(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			p := &sim.Particles[i]
			p.Vel = p.VelP.AddScaled(p.Acc, 0.5*dt)
			p.Ene = p.EneP + 0.5*p.DEne*dt
			if p.Ene < cfg.EnergyFloor {
				p.Ene = cfg.EnergyFloor
				p.EneFloored = true
			} else {
				p.EneFloored = false
			}
		}
	})

	if err := d.checkFinite(); err != nil {
		d.dumpOnFatal()
		return err
	}

	sim.T += dt
	sim.Dt = newDt
	d.StepCount++
	return nil
}

// checkFinite scans every conserved field for NaN/inf (§7 Fatal).
func (d *Driver) checkFinite() error {
	for i := range d.Sim.Particles {
		p := &d.Sim.Particles[i]
		vals := []float64{p.Mass, p.Dens, p.Ene, p.Pres, p.Pos[0], p.Pos[1], p.Pos[2], p.Vel[0], p.Vel[1], p.Vel[2]}
		for _, v := range vals {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return newError(Fatal, "non-finite value in particle %d's conserved state at t=%g", p.ID, d.Sim.T)
			}
		}
	}
	return nil
}

// dumpOnFatal best-effort persists a checkpoint before a Fatal error
// propagates out of RunStep, per §7's driver policy. Failures to write
// the dump are intentionally swallowed: the original Fatal error is
// what the caller needs to see.
func (d *Driver) dumpOnFatal() {
	if d.CheckpointPath == "" {
		return
	}
	_ = snapshot.SaveCheckpoint(d.Sim, d.StepCount, d.Config, d.CheckpointPath)
}

// Run advances the simulation from its current time up to cfg.EndTime,
// invoking onSnapshot every time at least cfg.OutputInterval of
// simulation time has elapsed since the last call (§4.8 step 9: "hand
// the snapshot to the Output collaborator as per schedule"). onSnapshot
// may be nil to run without producing any output.
func (d *Driver) Run(onSnapshot func(sim *particle.Simulation, step int)) error {
	nextOutput := d.Sim.T
	for d.Sim.T < d.Config.EndTime {
		if err := d.RunStep(); err != nil {
			return err
		}
		if onSnapshot != nil && d.Sim.T+1e-12 >= nextOutput {
			onSnapshot(d.Sim, d.StepCount)
			nextOutput += d.Config.OutputInterval
		}
	}
	return nil
}
