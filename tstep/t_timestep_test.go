// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tstep

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gosph/config"
	"github.com/cpmech/gosph/kernel"
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/vecd"
)

func twoParticleSim(t *testing.T) *particle.Simulation {
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
		{Sml: 0.1, Sound: 1.0, Acc: vecd.New(2, 0, 0)},
		{Sml: 0.2, Sound: 2.0, Acc: vecd.New(0, 0, 0)},
	}
	return sim
}

func TestComputeTakesMinimumAcrossCriteria(t *testing.T) {
	sim := twoParticleSim(t)
	sim.HPerVsigMin = math.Inf(1)
	cfg := config.Default()
	cfg.CflSound = 0.3
	cfg.CflForce = 0.3
	cfg.CflEnergy = 0.3
	cfg.DtMin = 0
	cfg.DtMax = 1e9

	dt := Compute(sim, cfg)

	dtSound0 := cfg.CflSound * 0.1 / 1.0
	dtForce0 := cfg.CflForce * math.Sqrt(0.1/2.0)
	dtSound1 := cfg.CflSound * 0.2 / 2.0
	expected := math.Min(math.Min(dtSound0, dtForce0), dtSound1)
	chk.Scalar(t, "dt", 1e-12, dt, expected)
}

func TestComputeHonoursSignalVelocityCriterion(t *testing.T) {
	sim := twoParticleSim(t)
	sim.HPerVsigMin = 1e-6 // far tighter than any sound/force criterion
	cfg := config.Default()
	cfg.CflEnergy = 0.5

	dt := Compute(sim, cfg)
	chk.Scalar(t, "dt", 1e-12, dt, 0.5*1e-6)
}

func TestComputeClampsToDtMax(t *testing.T) {
	sim, err := particle.NewSimulation(3, mustKernel(t), mustPeriodic(t))
	if err != nil {
		t.Fatal(err)
	}
	sim.Particles = []particle.Particle{{Sml: 0.1, Sound: 0, Acc: vecd.New(0, 0, 0)}}
	sim.HPerVsigMin = math.Inf(1)
	cfg := config.Default()
	cfg.DtMax = 0.05

	dt := Compute(sim, cfg)
	chk.Scalar(t, "dt", 1e-12, dt, 0.05)
}

func mustKernel(t *testing.T) kernel.Kernel {
	t.Helper()
	k, err := kernel.New("CubicSpline", 3)
	if err != nil {
		t.Fatal(err)
	}
	return k
}

func mustPeriodic(t *testing.T) vecd.Periodic {
	t.Helper()
	per, err := vecd.NewPeriodic(3, []vecd.AxisRange{{}, {}, {}})
	if err != nil {
		t.Fatal(err)
	}
	return per
}
