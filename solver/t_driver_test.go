// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gosph/config"
	"github.com/cpmech/gosph/kernel"
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/vecd"
)

// uniformBox builds a small cube of particles at rest, used to check
// the driver's conservation properties (testable properties #1, #2)
// over a handful of steps.
func uniformBox(t *testing.T, sphType string) (*particle.Simulation, config.Config) {
	t.Helper()
	dim := 3
	k, err := kernel.New("CubicSpline", dim)
	if err != nil {
		t.Fatal(err)
	}
	per, err := vecd.NewPeriodic(dim, []vecd.AxisRange{{}, {}, {}})
	if err != nil {
		t.Fatal(err)
	}
	sim, err := particle.NewSimulation(dim, k, per)
	if err != nil {
		t.Fatal(err)
	}

	var ps []particle.Particle
	id := 0
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			for z := 0; z < 3; z++ {
				ps = append(ps, particle.Particle{
					ID:    id,
					Pos:   vecd.New(float64(x)*0.3, float64(y)*0.3, float64(z)*0.3),
					Mass:  1.0,
					Dens:  1.0,
					Ene:   1.0,
					Sml:   0.6,
					Alpha: 1.0,
				})
				id++
			}
		}
	}
	sim.Particles = ps

	cfg := config.Default()
	cfg.SPHType = sphType
	cfg.Dim = dim
	cfg.NeighborNumber = 8
	cfg.MaxNeighbors = 64
	cfg.UseGravity = false
	cfg.DtMax = 1e-3
	return sim, cfg
}

func TestNewRejectsDimensionMismatch(t *testing.T) {
	sim, cfg := uniformBox(t, "SSPH")
	cfg.Dim = 2
	_, err := New(sim, cfg)
	if err == nil {
		t.Fatal("expected a DimensionMismatch error")
	}
	serr, ok := err.(*Error)
	if !ok || serr.Kind != DimensionMismatch {
		t.Fatalf("expected DimensionMismatch, got %v", err)
	}
}

func TestNewRejectsUnknownVariant(t *testing.T) {
	sim, cfg := uniformBox(t, "SSPH")
	cfg.SPHType = "RSPH"
	_, err := New(sim, cfg)
	if err == nil {
		t.Fatal("expected a ConfigError")
	}
}

func TestRunStepConservesMass(t *testing.T) {
	sim, cfg := uniformBox(t, "SSPH")
	d, err := New(sim, cfg)
	if err != nil {
		t.Fatal(err)
	}
	m0 := sim.TotalMass()
	for i := 0; i < 3; i++ {
		if err := d.RunStep(); err != nil {
			t.Fatal(err)
		}
	}
	chk.Scalar(t, "mass", 1e-12, sim.TotalMass(), m0)
}

func TestRunStepAdvancesTime(t *testing.T) {
	sim, cfg := uniformBox(t, "DISPH")
	d, err := New(sim, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.RunStep(); err != nil {
		t.Fatal(err)
	}
	if sim.T <= 0 {
		t.Fatalf("expected T to advance, got %g", sim.T)
	}
	if d.StepCount != 1 {
		t.Fatalf("expected StepCount=1, got %d", d.StepCount)
	}
}

func TestRunStepMomentumStaysBoundedForSymmetricBox(t *testing.T) {
	// a symmetric box at rest should not develop large bulk momentum
	// in a couple of steps; this is a sanity bound, not an exact
	// equality, since the cubic lattice is not perfectly isotropic.
	sim, cfg := uniformBox(t, "GSPH")
	d, err := New(sim, cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if err := d.RunStep(); err != nil {
			t.Fatal(err)
		}
	}
	p := sim.TotalMomentum()
	mag := p.Norm(3)
	if math.IsNaN(mag) || math.IsInf(mag, 0) {
		t.Fatalf("non-finite total momentum: %v", p)
	}
	if mag > 1e-8 {
		t.Fatalf("bulk momentum grew to %g in a symmetric box", mag)
	}
}
