// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gravity

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gosph/bhtree"
	"github.com/cpmech/gosph/config"
	"github.com/cpmech/gosph/kernel"
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/vecd"
)

func twoBodySim(t *testing.T) *particle.Simulation {
	t.Helper()
	k, err := kernel.New("CubicSpline", 3)
	if err != nil {
		t.Fatal(err)
	}
	per, err := vecd.NewPeriodic(3, []vecd.AxisRange{{}, {}, {}})
	if err != nil {
		t.Fatal(err)
	}
	sim, err := particle.NewSimulation(3, k, per)
	if err != nil {
		t.Fatal(err)
	}
	sim.Particles = []particle.Particle{
		{ID: 0, Pos: vecd.New(0, 0, 0), Mass: 1, Sml: 0.1},
		{ID: 1, Pos: vecd.New(1, 0, 0), Mass: 1, Sml: 0.1},
	}
	return sim
}

func TestApplyIsNoOpWhenGravityDisabled(t *testing.T) {
	sim := twoBodySim(t)
	tree := bhtree.New(sim.Dim, 8, 32)
	tree.Build(sim.Bodies())

	cfg := config.Default()
	cfg.UseGravity = false

	Apply(sim, tree, cfg)
	chk.Vector(t, "acc0", 1e-12, sim.Particles[0].Acc[:sim.Dim], []float64{0, 0, 0})
}

func TestApplyPullsTwoBodiesTogether(t *testing.T) {
	sim := twoBodySim(t)
	tree := bhtree.New(sim.Dim, 8, 32)
	tree.Build(sim.Bodies())

	cfg := config.Default()
	cfg.UseGravity = true
	cfg.G = 1.0
	cfg.Theta = 0.5

	Apply(sim, tree, cfg)

	// particle 0 sits to the left of particle 1: gravity must pull it
	// in the +x direction, and vice versa, by symmetry.
	if sim.Particles[0].Acc[0] <= 0 {
		t.Fatalf("expected particle 0 to accelerate toward +x, got acc=%v", sim.Particles[0].Acc)
	}
	if sim.Particles[1].Acc[0] >= 0 {
		t.Fatalf("expected particle 1 to accelerate toward -x, got acc=%v", sim.Particles[1].Acc)
	}
	if sim.Particles[0].Phi >= 0 || sim.Particles[1].Phi >= 0 {
		t.Fatalf("expected negative gravitational potential, got phi0=%g phi1=%g", sim.Particles[0].Phi, sim.Particles[1].Phi)
	}
}

func TestApplySkipsAccelerationForPointMasses(t *testing.T) {
	sim := twoBodySim(t)
	sim.Particles[1].IsPointMass = true
	tree := bhtree.New(sim.Dim, 8, 32)
	tree.Build(sim.Bodies())

	cfg := config.Default()
	cfg.UseGravity = true
	cfg.G = 1.0
	cfg.Theta = 0.5

	Apply(sim, tree, cfg)

	chk.Vector(t, "acc1", 1e-12, sim.Particles[1].Acc[:sim.Dim], []float64{0, 0, 0})
	if sim.Particles[0].Acc[0] <= 0 {
		t.Fatalf("expected particle 0 to still feel the point mass's pull, got acc=%v", sim.Particles[0].Acc)
	}
}
