// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package variant

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gosph/bhtree"
	"github.com/cpmech/gosph/config"
	"github.com/cpmech/gosph/kernel"
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/vecd"
)

func TestAllFourVariantsRegistered(t *testing.T) {
	for _, name := range []string{"SSPH", "DISPH", "GSPH", "GDISPH"} {
		if _, err := New(name); err != nil {
			t.Fatalf("variant %q: %v", name, err)
		}
	}
}

func TestNewUnknownVariant(t *testing.T) {
	if _, err := New("RSPH"); err == nil {
		t.Fatal("expected an error for an unregistered variant name")
	}
}

func TestGradHIdentityWhenDerivativeZero(t *testing.T) {
	f := GradH(0.1, 1.0, 0, 3)
	chk.Scalar(t, "gradH", 1e-12, f, 1.0)
}

func TestBalsaraFixedAtOneIn1D(t *testing.T) {
	b := Balsara(5.0, 3.0, 1.0, 0.1, 1)
	chk.Scalar(t, "balsara(1D)", 1e-12, b, 1.0)
}

// twoParticleSim builds a minimal two-particle simulation (a near/far
// pair well inside each other's compact support) and its tree, ready
// for a variant's Pre+Force pair.
func twoParticleSim(t *testing.T, sphType string) (*particle.Simulation, *bhtree.Tree, config.Config) {
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
		{Pos: vecd.New(0, 0, 0), Vel: vecd.New(0.1, 0, 0), Mass: 1.0, Dens: 1.0, Ene: 1.0, Sml: 0.5, ID: 0},
		{Pos: vecd.New(0.2, 0, 0), Vel: vecd.New(-0.1, 0, 0), Mass: 1.0, Dens: 1.0, Ene: 1.0, Sml: 0.5, ID: 1},
	}
	tree := bhtree.New(3, 8, 16)
	tree.Build(sim.Bodies())

	cfg := config.Default()
	cfg.SPHType = sphType
	cfg.NeighborNumber = 1
	cfg.IterativeSml = false
	cfg.MaxNeighbors = 16
	return sim, tree, cfg
}

// checkPairwiseAntisymmetry runs a variant's Pre+Force pair on the
// two-particle fixture and checks testable property #5: the momentum
// contributions cancel to machine precision.
func checkPairwiseAntisymmetry(t *testing.T, sphType string) {
	t.Helper()
	sim, tree, cfg := twoParticleSim(t, sphType)
	pair, err := New(sphType)
	if err != nil {
		t.Fatal(err)
	}
	if err := pair.Pre.Run(sim, tree, cfg); err != nil {
		t.Fatal(err)
	}
	if err := pair.Force.Run(sim, tree, cfg); err != nil {
		t.Fatal(err)
	}
	p0 := sim.Particles[0]
	p1 := sim.Particles[1]
	total := p0.Acc.Scale(p0.Mass).Add(p1.Acc.Scale(p1.Mass))
	chk.Scalar(t, sphType+": sum m*a x", 1e-9, total[0], 0)
	chk.Scalar(t, sphType+": sum m*a y", 1e-9, total[1], 0)
	chk.Scalar(t, sphType+": sum m*a z", 1e-9, total[2], 0)
}

func TestPairwiseAntisymmetrySSPH(t *testing.T)   { checkPairwiseAntisymmetry(t, "SSPH") }
func TestPairwiseAntisymmetryDISPH(t *testing.T)  { checkPairwiseAntisymmetry(t, "DISPH") }
func TestPairwiseAntisymmetryGSPH(t *testing.T)   { checkPairwiseAntisymmetry(t, "GSPH") }
func TestPairwiseAntisymmetryGDISPH(t *testing.T) { checkPairwiseAntisymmetry(t, "GDISPH") }
